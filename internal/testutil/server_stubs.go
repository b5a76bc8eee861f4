package testutil

import (
	"context"
	"net/http"
	"sync/atomic"
)

// HTTPServer is a scriptable stand-in for the server package's listener wrapper.
// The zero value listens and shuts down successfully.
type HTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	// Unblock makes Shutdown wait until it is closed or the context expires.
	Unblock chan struct{}

	listens   atomic.Int32
	shutdowns atomic.Int32
}

func (s *HTTPServer) ListenAndServe() error {
	s.listens.Add(1)
	return s.ListenErr
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.shutdowns.Add(1)
	if s.Unblock != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Unblock:
		}
	}
	return s.ShutdownErr
}

func (s *HTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *HTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// ListenCalls reports how many times ListenAndServe ran.
func (s *HTTPServer) ListenCalls() int { return int(s.listens.Load()) }

// ShutdownCalls reports how many times Shutdown ran.
func (s *HTTPServer) ShutdownCalls() int { return int(s.shutdowns.Load()) }
