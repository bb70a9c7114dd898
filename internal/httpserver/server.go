package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tinytelemetry/pawprefs/internal/model"
	"github.com/tinytelemetry/pawprefs/internal/resource"
	"go.uber.org/zap"
)

// BlobStore is the narrow registry contract required by the HTTP API.
type BlobStore interface {
	Lookup(h model.Handle) (resource.Blob, error)
	Live() int
}

// Board holds the latest session snapshot published by the UI loop.
type Board struct {
	mu   sync.RWMutex
	snap model.SessionSnapshot
}

// NewBoard creates a board reporting the loading phase.
func NewBoard() *Board {
	return &Board{snap: model.SessionSnapshot{Phase: model.PhaseLoading.String()}}
}

// Publish replaces the current snapshot.
func (b *Board) Publish(s model.SessionSnapshot) {
	b.mu.Lock()
	b.snap = s
	b.mu.Unlock()
}

// Snapshot returns the current snapshot.
func (b *Board) Snapshot() model.SessionSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}

// Server exposes loaded image resources and session status over local HTTP,
// making every resource handle addressable as /blob/<key>.
type Server struct {
	addr      string
	blobs     BlobStore
	board     *Board
	logger    *zap.Logger
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, blobs BlobStore, board *Board, logger *zap.Logger) *Server {
	if addr == "" {
		addr = model.DefaultAPIAddr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		blobs:  blobs,
		board:  board,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/session", s.handleSession)
	r.GET("/blob/:key", s.handleBlob)
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.routes(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http api stopped", zap.Error(err))
		}
	}()
	s.logger.Info("http api listening", zap.String("addr", listener.Addr().String()))
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// URL returns the address at which h can be fetched.
func (s *Server) URL(h model.Handle) string {
	return "http://" + s.Addr() + "/blob/" + resource.Key(h)
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime":         time.Since(s.startTime).String(),
		"live_resources": s.blobs.Live(),
		"phase":          s.board.Snapshot().Phase,
	})
}

func (s *Server) handleSession(c *gin.Context) {
	c.JSON(http.StatusOK, s.board.Snapshot())
}

func (s *Server) handleBlob(c *gin.Context) {
	blob, err := s.blobs.Lookup(resource.HandleFromKey(c.Param("key")))
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resource not found or released"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read resource"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, blob.MIME, blob.Data)
}
