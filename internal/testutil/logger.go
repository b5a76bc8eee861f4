package testutil

import (
	"bytes"
	"log/slog"

	"github.com/preston-bernstein/sunday-game-service/internal/logging"
)

// NewBufferLogger returns a debug-level text logger and the buffer it writes to.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logging.NewLogger(logging.Config{Level: "debug", Output: buf}), buf
}
