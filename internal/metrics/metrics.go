package metrics

import (
	"sync"
	"time"
)

type backendStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about storage and upload activity,
// and forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu              sync.Mutex
	stats           map[string]*backendStats
	fallbacks       int
	uploadsAccepted int
	uploadsRejected int
	otel            *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*backendStats),
		otel:  otel,
	}
}

// RecordStoreAttempt counts one call against a storage backend and keeps its latency.
func (r *Recorder) RecordStoreAttempt(backend, operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(backend)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreAttempt(backend, operation, duration, err)
	}
}

// RecordStoreFallback counts a downgrade from one backend to another.
func (r *Recorder) RecordStoreFallback(from, to string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.fallbacks++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordFallback(from, to)
	}
}

// RecordUpload counts an accepted or rejected photo upload.
func (r *Recorder) RecordUpload(size int64, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if err != nil {
		r.uploadsRejected++
	} else {
		r.uploadsAccepted++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordUpload(size, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the stats recorded for one backend.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

// Snapshot returns a copy of the current stats for the backend.
func (r *Recorder) Snapshot(backend string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[backend]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// StoreCalls returns the total attempts recorded for a backend.
func (r *Recorder) StoreCalls(backend string) int {
	return r.Snapshot(backend).Calls
}

// StoreErrors returns the failed attempts recorded for a backend.
func (r *Recorder) StoreErrors(backend string) int {
	return r.Snapshot(backend).Errors
}

// Fallbacks returns how many storage downgrades were recorded.
func (r *Recorder) Fallbacks() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fallbacks
}

// Uploads returns accepted and rejected upload counts.
func (r *Recorder) Uploads() (accepted, rejected int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uploadsAccepted, r.uploadsRejected
}

func (r *Recorder) ensureStatsLocked(backend string) *backendStats {
	stats, ok := r.stats[backend]
	if !ok {
		stats = &backendStats{}
		r.stats[backend] = stats
	}
	return stats
}
