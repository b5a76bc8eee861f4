package server

import "time"

const (
	readHeaderTimeout = 5 * time.Second
	// Photo uploads of up to 5 MB must fit in the body read and the response write.
	readTimeout  = 30 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second

	defaultStorageTimeout = 5 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
