package model

import "fmt"

// Classification is the verdict assigned to an item when it leaves the deck.
type Classification int

const (
	Unset Classification = iota
	Liked
	Disliked
)

func (c Classification) String() string {
	switch c {
	case Liked:
		return "liked"
	case Disliked:
		return "disliked"
	default:
		return "unset"
	}
}

// Direction is the swipe direction of a card.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// Classification maps a swipe direction to its verdict.
// Left always dislikes, right always likes.
func (d Direction) Classification() Classification {
	if d == Right {
		return Liked
	}
	return Disliked
}

// Phase is the coarse session state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseSwiping
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseSwiping:
		return "swiping"
	case PhaseFinished:
		return "finished"
	default:
		return "loading"
	}
}

// Handle is an opaque reference to image bytes held by a resource registry.
type Handle string

// Item is one card: a loaded image and its classification.
type Item struct {
	ID             int
	Resource       Handle
	Classification Classification
}

func (it Item) String() string {
	return fmt.Sprintf("{%d,%s}", it.ID, it.Classification)
}
