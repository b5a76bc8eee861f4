package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler != nil {
		t.Fatalf("expected nil handler when disabled")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}
}

func TestSetupEnabledExposesPrometheusMetrics(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: "sunday-game-service",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer shutdown(context.Background())
	if handler == nil {
		t.Fatalf("expected handler when enabled")
	}

	rec.RecordHTTPRequest("GET", "/api/players", 200, time.Millisecond)
	rec.RecordStoreAttempt("mongo", "list", time.Millisecond, errors.New("down"))
	rec.RecordStoreFallback("mongo", "json")
	rec.RecordUpload(2048, nil)
	rec.RecordUpload(0, errors.New("not an image"))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()
	for _, name := range []string{"store_fallbacks_total", "store_attempts_total", "photo_uploads_total"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in exposition, got:\n%s", name, body)
		}
	}
}

func TestSetupPropagatesReaderErrors(t *testing.T) {
	orig := promReaderFactory
	t.Cleanup(func() { promReaderFactory = orig })
	promReaderFactory = func() (sdkmetric.Reader, http.Handler, error) {
		return nil, nil, errors.New("registry unavailable")
	}

	if _, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true}); err == nil {
		t.Fatalf("expected error from reader factory")
	}
}
