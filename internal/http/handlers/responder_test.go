package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/sunday-game-service/internal/http/middleware"
	"github.com/preston-bernstein/sunday-game-service/internal/testutil"
)

func TestWriteErrorBody(t *testing.T) {
	tests := []struct {
		name   string
		header string
		wantID string
	}{
		{name: "header id echoed", header: "abc123", wantID: "abc123"},
		{name: "no id omitted", header: "", wantID: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/players/x", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-ID", tt.header)
			}
			rr := httptest.NewRecorder()
			writeError(rr, req, http.StatusNotFound, msgPlayerNotFound, nil)

			testutil.AssertStatus(t, rr, http.StatusNotFound)
			if got := rr.Header().Get("Content-Type"); got != "application/json" {
				t.Fatalf("expected json content type, got %q", got)
			}
			if tt.wantID == "" && strings.Contains(rr.Body.String(), "requestId") {
				t.Fatalf("expected requestId omitted, got %s", rr.Body.String())
			}
			var body errorResponse
			testutil.DecodeJSON(t, rr, &body)
			if body.Error != msgPlayerNotFound || body.RequestID != tt.wantID {
				t.Fatalf("unexpected error body %+v", body)
			}
		})
	}
}

func TestWriteErrorPrefersMiddlewareID(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Set("X-Request-ID", "raw-header")
		writeError(w, r, http.StatusBadRequest, msgInvalidBody, nil)
	})
	req := httptest.NewRequest(http.MethodPost, "/api/players", nil)
	req.Header.Set("X-Request-ID", "assigned-1")
	rr := testutil.ServeRequest(middleware.LoggingMiddleware(nil, nil, inner), req)

	var body errorResponse
	testutil.DecodeJSON(t, rr, &body)
	if body.RequestID != "assigned-1" {
		t.Fatalf("expected middleware id, got %+v", body)
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "failed to encode response") {
		t.Fatalf("expected encode error logged, got %q", buf.String())
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	if got := loggerFromContext(nil, logger); got != logger {
		t.Fatalf("expected fallback logger for nil request")
	}
}
