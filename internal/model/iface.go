package model

import "context"

// ImageLoader produces a complete batch of items or fails as a whole.
type ImageLoader interface {
	Load(ctx context.Context, n int) ([]Item, error)
}

// Releaser frees the resource behind a handle. Releasing an already
// released handle must be a no-op that returns false.
type Releaser interface {
	Release(h Handle) bool
}

// ResourceReader resolves a handle to its bytes.
type ResourceReader interface {
	Get(h Handle) ([]byte, error)
}

// SessionSnapshot is a read-only view of the session for outside readers.
type SessionSnapshot struct {
	Phase      string `json:"phase"`
	Generation uint64 `json:"generation"`
	Deck       int    `json:"deck"`
	History    int    `json:"history"`
	Liked      int    `json:"liked"`
	Disliked   int    `json:"disliked"`
	LoadError  string `json:"load_error,omitempty"`
}

// SnapshotSink receives a snapshot after every session mutation.
type SnapshotSink interface {
	Publish(s SessionSnapshot)
}
