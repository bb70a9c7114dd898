package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tinytelemetry/pawprefs/internal/model"
	"github.com/tinytelemetry/pawprefs/internal/resource"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *resource.Registry, *Board, *gin.Engine) {
	t.Helper()
	reg := resource.NewRegistry()
	board := NewBoard()

	srv := NewServer("", reg, board, nil)
	srv.startTime = time.Now()
	return srv, reg, board, srv.routes()
}

func TestHealthEndpoint(t *testing.T) {
	_, reg, _, r := newTestServer(t)
	if _, err := reg.Put([]byte("GIF89a")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["live_resources"] != float64(1) {
		t.Errorf("live_resources = %v, want 1", body["live_resources"])
	}
	if body["phase"] != "loading" {
		t.Errorf("phase = %v, want loading", body["phase"])
	}
}

func TestSessionEndpoint_ReflectsBoard(t *testing.T) {
	_, _, board, r := newTestServer(t)
	board.Publish(model.SessionSnapshot{Phase: "swiping", Generation: 2, Deck: 5, History: 3, Liked: 2, Disliked: 1})

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("session status = %d", w.Code)
	}
	var snap model.SessionSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal session: %v", err)
	}
	if snap.Phase != "swiping" || snap.Deck != 5 || snap.History != 3 || snap.Generation != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestBlobEndpoint_ServesUntilReleased(t *testing.T) {
	srv, reg, _, r := newTestServer(t)
	payload := []byte("GIF89a\x01\x00\x01\x00")
	h, err := reg.Put(payload)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	path := "/blob/" + resource.Key(h)
	if got := srv.URL(h); got != "http://"+model.DefaultAPIAddr+path {
		t.Errorf("URL = %s", got)
	}

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("blob status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/gif" {
		t.Errorf("content type = %q, want image/gif", ct)
	}
	if w.Body.String() != string(payload) {
		t.Errorf("body mismatch")
	}

	reg.Release(h)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("blob status after release = %d, want 404", w.Code)
	}
}

func TestHealthEndpoint_WrongMethod(t *testing.T) {
	_, _, _, r := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed && w.Code != http.StatusNotFound {
		t.Errorf("health POST status = %d, want 405 or 404", w.Code)
	}
}

func TestStartStop(t *testing.T) {
	srv := NewServer("127.0.0.1:0", resource.NewRegistry(), NewBoard(), nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	resp, err := http.Get("http://" + srv.Addr() + "/api/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if err := srv.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
