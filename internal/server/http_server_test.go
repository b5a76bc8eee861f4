package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestNetHTTPServerServesOnPresetListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("loopback listener unavailable: %v", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
	s := netHTTPServer{srv: &http.Server{Handler: mux}, listener: ln}

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/ping")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("unexpected body %q", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("expected ErrServerClosed after shutdown, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("serve did not return after shutdown")
	}
}

func TestNetHTTPServerListenFailsOnBadAddr(t *testing.T) {
	s := netHTTPServer{srv: &http.Server{Addr: "127.0.0.1:not-a-port"}}
	if err := s.ListenAndServe(); err == nil {
		t.Fatal("expected listen error for malformed address")
	}
}

func TestNetHTTPServerAccessors(t *testing.T) {
	handler := http.NewServeMux()
	s := netHTTPServer{srv: &http.Server{Addr: ":8080", Handler: handler}}
	if s.Addr() != ":8080" || s.Handler() != handler {
		t.Fatalf("expected addr and handler passthrough")
	}
}

func TestBuildHTTPServerTimeouts(t *testing.T) {
	srv := buildHTTPServer(testConfig(t), storageComponents{}, nil, nil, nil, nil, nil).(netHTTPServer)
	if srv.srv.ReadHeaderTimeout != readHeaderTimeout || srv.srv.ReadTimeout != readTimeout || srv.srv.WriteTimeout != writeTimeout {
		t.Fatalf("unexpected timeouts %+v", srv.srv)
	}
	if srv.Addr() != ":0" {
		t.Fatalf("expected addr from config port, got %q", srv.Addr())
	}
}
