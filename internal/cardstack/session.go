package cardstack

import (
	"github.com/tinytelemetry/pawprefs/internal/model"
)

// Event describes one committed swipe.
type Event struct {
	Item      model.Item // the classified copy appended to history
	Direction model.Direction
	Finished  bool // this swipe emptied the deck
}

// Counts is a snapshot of container sizes.
type Counts struct {
	Deck    int
	History int
	Total   int
}

// Session is the card stack state machine: loading, swiping, finished.
// It is not safe for concurrent use; all calls happen on the UI loop.
type Session struct {
	phase      model.Phase
	deck       []model.Item // topmost card is the last element
	history    []model.Item
	generation uint64
	loadErr    error

	// completion holds the history emitted when the deck emptied,
	// until it is taken exactly once.
	completion []model.Item
	completed  bool

	releaser model.Releaser
	torndown bool
}

// NewSession creates a session in the loading phase at generation 1.
func NewSession(releaser model.Releaser) *Session {
	return &Session{
		phase:      model.PhaseLoading,
		generation: 1,
		releaser:   releaser,
	}
}

func (s *Session) Phase() model.Phase { return s.phase }
func (s *Session) Generation() uint64 { return s.generation }
func (s *Session) LoadErr() error     { return s.loadErr }

// Deck returns a copy of the deck, bottom card first.
func (s *Session) Deck() []model.Item {
	return append([]model.Item(nil), s.deck...)
}

// History returns a copy of the classified items in swipe order.
func (s *Session) History() []model.Item {
	return append([]model.Item(nil), s.history...)
}

// Top returns the interactive card, if any.
func (s *Session) Top() (model.Item, bool) {
	if len(s.deck) == 0 {
		return model.Item{}, false
	}
	return s.deck[len(s.deck)-1], true
}

// Counts returns deck and history sizes.
func (s *Session) Counts() Counts {
	return Counts{
		Deck:    len(s.deck),
		History: len(s.history),
		Total:   len(s.deck) + len(s.history),
	}
}

// BeginLoad starts a new load attempt and returns its generation. It is used
// for the first load and for retrying after a failed load. Any resources
// still owned by the session are released first.
func (s *Session) BeginLoad() uint64 {
	s.releaseOwned()
	s.phase = model.PhaseLoading
	s.loadErr = nil
	s.generation++
	return s.generation
}

// Loaded installs a freshly loaded batch. Items from a superseded
// generation, or arriving after teardown, are released and ignored.
// It reports whether the batch was applied.
func (s *Session) Loaded(gen uint64, items []model.Item) bool {
	if s.torndown || gen != s.generation || s.phase != model.PhaseLoading {
		s.releaseItems(items)
		return false
	}

	s.deck = make([]model.Item, 0, len(items))
	for _, it := range items {
		it.Classification = model.Unset
		s.deck = append(s.deck, it)
	}
	s.history = nil
	s.loadErr = nil
	s.completion = nil
	s.completed = false

	if len(s.deck) == 0 {
		s.finish()
		return true
	}
	s.phase = model.PhaseSwiping
	return true
}

// LoadFailed records err for the current generation. The phase stays
// loading so the user can retry.
func (s *Session) LoadFailed(gen uint64, err error) bool {
	if s.torndown || gen != s.generation || s.phase != model.PhaseLoading {
		return false
	}
	s.loadErr = err
	return true
}

// Swipe classifies a card and moves it from the deck to the history.
// With explicit set (drag path) that item is classified; otherwise the top
// card is (button path). It is a no-op when not swiping, when the deck is
// empty, or when the explicit item is no longer in the deck.
func (s *Session) Swipe(dir model.Direction, explicit *model.Item) (Event, bool) {
	if s.phase != model.PhaseSwiping || len(s.deck) == 0 {
		return Event{}, false
	}

	idx := len(s.deck) - 1
	if explicit != nil {
		idx = s.indexOf(explicit.ID)
		if idx < 0 {
			return Event{}, false
		}
	}

	target := s.deck[idx]
	s.deck = append(s.deck[:idx], s.deck[idx+1:]...)

	target.Classification = dir.Classification()
	s.history = append(s.history, target)

	ev := Event{Item: target, Direction: dir}
	if len(s.deck) == 0 {
		s.finish()
		ev.Finished = true
	}
	return ev, true
}

// TakeCompletion returns the final history the first time it is called
// after the deck emptied. Later calls return false.
func (s *Session) TakeCompletion() ([]model.Item, bool) {
	if s.phase != model.PhaseFinished || s.completion == nil {
		return nil, false
	}
	out := s.completion
	s.completion = nil
	return out, true
}

// Reset clears deck and history, releases every owned resource and
// re-enters loading with a new generation.
func (s *Session) Reset() uint64 {
	return s.BeginLoad()
}

// Teardown releases everything. Batches that arrive later are released
// on arrival.
func (s *Session) Teardown() {
	s.releaseOwned()
	s.torndown = true
}

func (s *Session) finish() {
	s.phase = model.PhaseFinished
	if !s.completed {
		s.completed = true
		s.completion = append([]model.Item{}, s.history...)
	}
}

func (s *Session) indexOf(id int) int {
	for i, it := range s.deck {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) releaseOwned() {
	s.releaseItems(s.deck)
	s.releaseItems(s.history)
	s.deck = nil
	s.history = nil
	s.completion = nil
	s.completed = false
}

func (s *Session) releaseItems(items []model.Item) {
	if s.releaser == nil {
		return
	}
	for _, it := range items {
		if it.Resource != "" {
			s.releaser.Release(it.Resource)
		}
	}
}
