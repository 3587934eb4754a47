package server

import "time"

const (
	readTimeout = 15 * time.Second
	// Rendering a large sheet with many logos can take a few seconds.
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
