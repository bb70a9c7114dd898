package resource

import (
	"errors"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/tinytelemetry/pawprefs/internal/model"
)

const handlePrefix = "blob:"

var (
	// ErrClosed is returned by Put after the registry has been closed.
	ErrClosed = errors.New("resource: registry closed")
	// ErrNotFound is returned for unknown or already released handles.
	ErrNotFound = errors.New("resource: handle not found")
)

// Blob is the stored payload behind a handle.
type Blob struct {
	Data []byte
	MIME string
}

// Registry owns in-memory image payloads addressed by opaque handles.
// It is the only structure shared between the UI loop, the loader goroutines
// and the HTTP blob server, so every method is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	blobs    map[model.Handle]Blob
	closed   bool
	released int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{blobs: make(map[model.Handle]Blob)}
}

// Put stores data and returns a new handle. After Close it stores nothing
// and returns ErrClosed, so late arrivals are dropped instead of leaking.
func (r *Registry) Put(data []byte) (model.Handle, error) {
	mime := mimetype.Detect(data).String()
	h := model.Handle(handlePrefix + uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return "", ErrClosed
	}
	r.blobs[h] = Blob{Data: data, MIME: mime}
	return h, nil
}

// Get returns the bytes behind h. Released handles are not readable.
func (r *Registry) Get(h model.Handle) ([]byte, error) {
	b, err := r.Lookup(h)
	if err != nil {
		return nil, err
	}
	return b.Data, nil
}

// Lookup returns the blob behind h, including its sniffed content type.
func (r *Registry) Lookup(h model.Handle) (Blob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blobs[h]
	if !ok {
		return Blob{}, ErrNotFound
	}
	return b, nil
}

// Release frees h and reports whether this call released it.
// A second release of the same handle is a no-op.
func (r *Registry) Release(h model.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blobs[h]; !ok {
		return false
	}
	delete(r.blobs, h)
	r.released++
	return true
}

// ReleaseAll frees every live handle and returns how many were released.
func (r *Registry) ReleaseAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.blobs)
	r.blobs = make(map[model.Handle]Blob)
	r.released += n
	return n
}

// Close releases everything and rejects further puts.
func (r *Registry) Close() int {
	n := r.ReleaseAll()
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return n
}

// Live returns the number of unreleased handles.
func (r *Registry) Live() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blobs)
}

// Released returns the total number of handles released so far.
func (r *Registry) Released() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.released
}

// Key returns the path-safe identifier of h, used in blob URLs.
func Key(h model.Handle) string {
	return strings.TrimPrefix(string(h), handlePrefix)
}

// HandleFromKey is the inverse of Key.
func HandleFromKey(key string) model.Handle {
	return model.Handle(handlePrefix + key)
}
