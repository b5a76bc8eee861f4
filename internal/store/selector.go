package store

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
	"github.com/preston-bernstein/sunday-game-service/internal/logging"
	"github.com/preston-bernstein/sunday-game-service/internal/metrics"
)

// State is the selector's view of the primary (document) backend.
type State int32

const (
	// StateAvailable routes calls to the primary backend first.
	StateAvailable State = iota
	// StateDegraded routes every call to the fallback backend. There is no way back.
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateAvailable:
		return "available"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// ErrPrimaryNotConfigured is returned by Probe when the selector has no primary backend.
var ErrPrimaryNotConfigured = errors.New("document store not configured")

const (
	defaultPrimaryName  = "mongo"
	defaultFallbackName = "json"
)

// Selector presents one PlayerStore over a primary and a fallback backend.
// Any primary failure downgrades the selector for the rest of its lifetime and the same
// call is retried on the fallback. Records are never copied between backends, so a
// downgrade swaps the visible dataset.
type Selector struct {
	primary      PlayerStore
	fallback     PlayerStore
	primaryName  string
	fallbackName string
	state        atomic.Int32
	logger       *slog.Logger
	metrics      *metrics.Recorder
}

// Option customizes a Selector.
type Option func(*Selector)

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) { s.logger = logger }
}

// WithMetrics records per-backend attempts and downgrades.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Selector) { s.metrics = rec }
}

// WithNames overrides the backend names used in logs and metrics.
func WithNames(primary, fallback string) Option {
	return func(s *Selector) {
		s.primaryName = primary
		s.fallbackName = fallback
	}
}

// NewSelector wraps primary and fallback. A nil primary starts the selector degraded.
func NewSelector(primary, fallback PlayerStore, opts ...Option) *Selector {
	s := &Selector{
		primary:      primary,
		fallback:     fallback,
		primaryName:  defaultPrimaryName,
		fallbackName: defaultFallbackName,
	}
	for _, opt := range opts {
		opt(s)
	}
	if primary == nil {
		s.state.Store(int32(StateDegraded))
	}
	return s
}

// Probe checks the primary with a read. Failure downgrades the selector and is returned.
func (s *Selector) Probe(ctx context.Context) error {
	if s.primary == nil {
		s.state.Store(int32(StateDegraded))
		logging.Info(s.logger, "document store not configured, using fallback storage",
			logging.FieldBackend, s.fallbackName)
		return ErrPrimaryNotConfigured
	}

	start := time.Now()
	_, err := s.primary.ListPlayers(ctx)
	s.metrics.RecordStoreAttempt(s.primaryName, "probe", time.Since(start), err)
	if err != nil {
		s.downgrade(ctx, "probe", err)
		return err
	}
	logging.Info(s.logger, "document store available", logging.FieldBackend, s.primaryName)
	return nil
}

// State reports whether the primary is still preferred.
func (s *Selector) State() State {
	return State(s.state.Load())
}

// Backend names the backend that currently serves calls.
func (s *Selector) Backend() string {
	if s.State() == StateAvailable && s.primary != nil {
		return s.primaryName
	}
	return s.fallbackName
}

func (s *Selector) ListPlayers(ctx context.Context) ([]players.Player, error) {
	return run(ctx, s, "list", func(b PlayerStore) ([]players.Player, error) {
		return b.ListPlayers(ctx)
	})
}

type lookup struct {
	player players.Player
	ok     bool
}

func (s *Selector) GetPlayer(ctx context.Context, id string) (players.Player, bool, error) {
	res, err := run(ctx, s, "get", func(b PlayerStore) (lookup, error) {
		p, ok, err := b.GetPlayer(ctx, id)
		return lookup{player: p, ok: ok}, err
	})
	return res.player, res.ok, err
}

func (s *Selector) AddPlayer(ctx context.Context, draft players.Draft) (players.Player, error) {
	return run(ctx, s, "add", func(b PlayerStore) (players.Player, error) {
		return b.AddPlayer(ctx, draft)
	})
}

func (s *Selector) UpdatePlayer(ctx context.Context, id string, patch players.Patch) (players.Player, bool, error) {
	res, err := run(ctx, s, "update", func(b PlayerStore) (lookup, error) {
		p, ok, err := b.UpdatePlayer(ctx, id, patch)
		return lookup{player: p, ok: ok}, err
	})
	return res.player, res.ok, err
}

func (s *Selector) DeletePlayer(ctx context.Context, id string) (bool, error) {
	return run(ctx, s, "delete", func(b PlayerStore) (bool, error) {
		return b.DeletePlayer(ctx, id)
	})
}

func (s *Selector) PlayersByTeam(ctx context.Context, team teams.Team) ([]players.Player, error) {
	return run(ctx, s, "list_by_team", func(b PlayerStore) ([]players.Player, error) {
		return b.PlayersByTeam(ctx, team)
	})
}

func (s *Selector) PlayersByPosition(ctx context.Context, position players.Position) ([]players.Player, error) {
	return run(ctx, s, "list_by_position", func(b PlayerStore) ([]players.Player, error) {
		return b.PlayersByPosition(ctx, position)
	})
}

// run tries the preferred backend and retries on the fallback after a primary failure.
// Validation errors and caller cancellation are returned as-is: they say nothing about
// the backend's health.
func run[T any](ctx context.Context, s *Selector, op string, call func(PlayerStore) (T, error)) (T, error) {
	if s.State() == StateAvailable && s.primary != nil {
		start := time.Now()
		val, err := call(s.primary)
		s.metrics.RecordStoreAttempt(s.primaryName, op, time.Since(start), err)
		if err == nil || errors.Is(err, players.ErrValidation) || ctx.Err() != nil {
			return val, err
		}
		s.downgrade(ctx, op, err)
	}

	start := time.Now()
	val, err := call(s.fallback)
	s.metrics.RecordStoreAttempt(s.fallbackName, op, time.Since(start), err)
	return val, err
}

// downgrade flips the selector to degraded. Only the caller that wins the swap logs it.
func (s *Selector) downgrade(ctx context.Context, op string, cause error) {
	if !s.state.CompareAndSwap(int32(StateAvailable), int32(StateDegraded)) {
		return
	}
	logging.Warn(logging.FromContext(ctx, s.logger), "document store unavailable, falling back",
		logging.FieldOperation, op,
		"from", s.primaryName,
		"to", s.fallbackName,
		logging.FieldError, cause,
	)
	s.metrics.RecordStoreFallback(s.primaryName, s.fallbackName)
}
