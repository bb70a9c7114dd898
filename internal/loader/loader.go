package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tinytelemetry/pawprefs/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoImages is returned when a batch of zero images is requested.
var ErrNoImages = errors.New("loader: image count must be positive")

// Doer is the narrow HTTP client contract used by the loader.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Store receives fetched payloads and hands out handles for them.
type Store interface {
	Put(data []byte) (model.Handle, error)
	Release(h model.Handle) bool
}

// FetchError reports a non-success response for one deck slot.
type FetchError struct {
	Slot   int
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("loader: image %d: unexpected status %d", e.Slot, e.Status)
}

// Config configures a Loader.
type Config struct {
	Endpoint string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	Client  Doer
	Logger  *zap.Logger
}

// Loader fetches a batch of images concurrently and turns them into items.
type Loader struct {
	endpoint *url.URL
	timeout  time.Duration
	client   Doer
	store    Store
	logger   *zap.Logger
}

// New creates a loader that stores payloads in store.
func New(cfg Config, store Store) (*Loader, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = model.DefaultEndpoint
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("loader: parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("loader: endpoint must be http or https, got %q", cfg.Endpoint)
	}
	if store == nil {
		return nil, errors.New("loader: nil store")
	}
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		endpoint: u,
		timeout:  cfg.Timeout,
		client:   client,
		store:    store,
		logger:   logger,
	}, nil
}

// Load requests n images concurrently and waits for all of them. Items get
// ids 1..n in request issue order regardless of completion order. If any
// request fails, every payload already stored for this batch is released
// and no items are returned.
func (l *Loader) Load(ctx context.Context, n int) ([]model.Item, error) {
	if n <= 0 {
		return nil, ErrNoImages
	}
	start := time.Now()

	items := make([]model.Item, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		slot := i + 1
		g.Go(func() error {
			h, err := l.fetchOne(gctx, slot)
			if err != nil {
				return err
			}
			items[slot-1] = model.Item{ID: slot, Resource: h, Classification: model.Unset}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		released := 0
		for _, it := range items {
			if it.Resource != "" && l.store.Release(it.Resource) {
				released++
			}
		}
		l.logger.Error("image batch failed",
			zap.Int("count", n),
			zap.Int("released", released),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}

	l.logger.Info("image batch loaded",
		zap.Int("count", n),
		zap.Duration("elapsed", time.Since(start)))
	return items, nil
}

func (l *Loader) fetchOne(ctx context.Context, slot int) (model.Handle, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cacheBustedURL(), nil)
	if err != nil {
		return "", fmt.Errorf("loader: build request %d: %w", slot, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("loader: fetch image %d: %w", slot, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Slot: slot, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("loader: read image %d: %w", slot, err)
	}

	h, err := l.store.Put(data)
	if err != nil {
		return "", fmt.Errorf("loader: store image %d: %w", slot, err)
	}
	return h, nil
}

// cacheBustedURL appends a random query value so every request misses caches.
func (l *Loader) cacheBustedURL() string {
	u := *l.endpoint
	bust := strconv.FormatFloat(rand.Float64(), 'f', -1, 64)
	if u.RawQuery == "" {
		u.RawQuery = bust
	} else {
		u.RawQuery += "&" + bust
	}
	return u.String()
}
