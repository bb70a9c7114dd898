package cardstack

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/tinytelemetry/pawprefs/internal/model"
)

const (
	EmojiDuration  = time.Second
	EmojiRise      = 150.0
	EmojiMaxOffset = 250.0
	EmojiMaxScale  = 1.5
)

// Emoji is one floating feedback marker. It carries no session state.
type Emoji struct {
	Token   string
	Glyph   string
	OffsetX float64
	Born    time.Time
}

// EmojiFrame is the animated state of an emoji at a point in time.
type EmojiFrame struct {
	Y       float64 // upward travel, 0..EmojiRise
	Opacity float64
	Scale   float64
	Done    bool
}

// Frame computes the ease-out rise and fade of e at now.
func (e Emoji) Frame(now time.Time) EmojiFrame {
	t := float64(now.Sub(e.Born)) / float64(EmojiDuration)
	if t >= 1 {
		return EmojiFrame{Y: EmojiRise, Opacity: 0, Scale: EmojiMaxScale, Done: true}
	}
	if t < 0 {
		t = 0
	}
	eased := t * (2 - t)
	return EmojiFrame{
		Y:       EmojiRise * eased,
		Opacity: 1 - eased,
		Scale:   1 + (EmojiMaxScale-1)*eased,
	}
}

// Effects is the short-lived list of floating emoji, keyed by token.
type Effects struct {
	items []Emoji
	rnd   func() float64
}

// NewEffects creates an effects list. rnd supplies values in [0,1) for the
// horizontal offset; nil uses math/rand.
func NewEffects(rnd func() float64) *Effects {
	if rnd == nil {
		rnd = rand.Float64
	}
	return &Effects{rnd: rnd}
}

// Glyph returns the marker for a swipe direction.
func Glyph(dir model.Direction) string {
	if dir == model.Right {
		return "❤️"
	}
	return "💔"
}

// Spawn adds a marker for a swipe in dir.
func (f *Effects) Spawn(dir model.Direction, now time.Time) Emoji {
	e := Emoji{
		Token:   uuid.NewString(),
		Glyph:   Glyph(dir),
		OffsetX: f.rnd() * EmojiMaxOffset,
		Born:    now,
	}
	f.items = append(f.items, e)
	return e
}

// Prune drops markers whose animation has completed and returns how many
// were removed.
func (f *Effects) Prune(now time.Time) int {
	kept := f.items[:0]
	for _, e := range f.items {
		if !e.Frame(now).Done {
			kept = append(kept, e)
		}
	}
	removed := len(f.items) - len(kept)
	f.items = kept
	return removed
}

// Active returns the live markers, oldest first.
func (f *Effects) Active() []Emoji {
	return append([]Emoji(nil), f.items...)
}

// Len returns the number of live markers.
func (f *Effects) Len() int { return len(f.items) }
