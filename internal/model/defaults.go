package model

import "time"

// Shared defaults used by the loader, the CLI and tests.
const (
	DefaultImageCount = 20
	DefaultEndpoint   = "https://cataas.com/cat"
	DefaultAPIAddr    = "127.0.0.1:3300"

	// DefaultFetchTimeout of zero means requests never time out.
	DefaultFetchTimeout time.Duration = 0
)
