package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tinytelemetry/pawprefs/internal/cardstack"
	"github.com/tinytelemetry/pawprefs/internal/logging"
	"github.com/tinytelemetry/pawprefs/internal/model"
	"github.com/tinytelemetry/pawprefs/internal/summary"
)

const (
	cardsPageID   = "cards"
	resultsPageID = "results"

	opLoadImages = "load-images"
)

// CardRenderer turns a resource handle into terminal cells.
type CardRenderer interface {
	Card(h model.Handle, cols, rows int, opacity float64) string
	Purge()
}

// Deps holds everything the pages share. The session is owned here and
// mutated only from Update, on the Bubble Tea goroutine.
type Deps struct {
	Session    *cardstack.Session
	Loader     model.ImageLoader
	Renderer   CardRenderer
	Sink       model.SnapshotSink // optional
	Logger     *zap.Logger        // optional
	ImageCount int
	Keys       KeyMap

	// ReverseDrag mirrors horizontal mouse travel.
	ReverseDrag bool

	// Now is the clock used for effects; nil means time.Now.
	Now func() time.Time

	mu          sync.Mutex
	cancelLoad  context.CancelFunc
	lastSummary *summary.Summary
}

// pageMsg is implemented by async messages that must reach a specific page
// even when another page is active.
type pageMsg interface {
	targetPage() string
}

// imagesLoadedMsg carries a loader result tagged with the generation it was
// started for.
type imagesLoadedMsg struct {
	gen       uint64
	requestID string
	items     []model.Item
	err       error
	took      time.Duration
}

func (imagesLoadedMsg) targetPage() string { return cardsPageID }

// frameMsg drives emoji and snap-back animation.
type frameMsg struct{}

func (frameMsg) targetPage() string { return cardsPageID }

// retryRequest is passed from the summary page to the cards page.
type retryRequest struct{}

func frameTick() tea.Cmd {
	return tea.Tick(cardstack.FrameInterval, func(_ time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// loadCmd starts a batch for gen. Any batch still in flight is cancelled;
// its result would be stale anyway.
func (d *Deps) loadCmd(gen uint64) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())

	d.mu.Lock()
	if d.cancelLoad != nil {
		d.cancelLoad()
	}
	d.cancelLoad = cancel
	d.mu.Unlock()

	loader := d.Loader
	n := d.ImageCount
	requestID := uuid.NewString()
	return func() tea.Msg {
		defer cancel()
		start := time.Now()
		items, err := loader.Load(ctx, n)
		return imagesLoadedMsg{
			gen:       gen,
			requestID: requestID,
			items:     items,
			err:       logging.NewOperationError(opLoadImages, requestID, err),
			took:      time.Since(start),
		}
	}
}

// Shutdown cancels any in-flight load and releases everything the session
// owns. Late results are released by the session on arrival.
func (d *Deps) Shutdown() {
	d.mu.Lock()
	if d.cancelLoad != nil {
		d.cancelLoad()
		d.cancelLoad = nil
	}
	d.mu.Unlock()
	d.Session.Teardown()
}

// LastSummary returns the most recent summary shown, if any.
func (d *Deps) LastSummary() (summary.Summary, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lastSummary == nil {
		return summary.Summary{}, false
	}
	return *d.lastSummary, true
}

func (d *Deps) setSummary(s summary.Summary) {
	d.mu.Lock()
	d.lastSummary = &s
	d.mu.Unlock()
}

// publish pushes a read-only snapshot of the session to the sink.
func (d *Deps) publish() {
	if d.Sink == nil {
		return
	}
	c := d.Session.Counts()
	liked, disliked := summary.Partition(d.Session.History()).Counts()
	snap := model.SessionSnapshot{
		Phase:      d.Session.Phase().String(),
		Generation: d.Session.Generation(),
		Deck:       c.Deck,
		History:    c.History,
		Liked:      liked,
		Disliked:   disliked,
	}
	if err := d.Session.LoadErr(); err != nil {
		snap.LoadError = err.Error()
	}
	d.Sink.Publish(snap)
}
