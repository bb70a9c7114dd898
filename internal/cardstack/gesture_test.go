package cardstack

import (
	"math"
	"testing"

	"github.com/tinytelemetry/pawprefs/internal/model"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x    float64
		want float64
	}{
		{-300, -18},
		{-150, -18},
		{-75, -9},
		{0, 0},
		{100, 12},
		{150, 18},
		{400, 18},
	}
	for _, tt := range tests {
		if got := Rotation(tt.x); !approx(got, tt.want) {
			t.Errorf("Rotation(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestOpacity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x    float64
		want float64
	}{
		{-200, 0},
		{-150, 0},
		{-75, 0.5},
		{0, 1},
		{30, 0.8},
		{150, 0},
	}
	for _, tt := range tests {
		if got := Opacity(tt.x); !approx(got, tt.want) {
			t.Errorf("Opacity(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestResolveDrag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x      float64
		dir    model.Direction
		commit bool
	}{
		{0, model.Left, false},
		{100, model.Left, false},
		{-100, model.Left, false},
		{100.5, model.Right, true},
		{-101, model.Left, true},
		{250, model.Right, true},
	}
	for _, tt := range tests {
		dir, commit := ResolveDrag(tt.x)
		if commit != tt.commit || (commit && dir != tt.dir) {
			t.Errorf("ResolveDrag(%v) = (%s, %v), want (%s, %v)", tt.x, dir, commit, tt.dir, tt.commit)
		}
	}
}

func TestCancelledDragLeavesSessionUntouched(t *testing.T) {
	t.Parallel()

	s, _ := loadedSession(t, 3)
	before := s.Deck()

	for _, x := range []float64{-100, -40, 0, 55, 100} {
		if _, commit := ResolveDrag(x); commit {
			t.Fatalf("ResolveDrag(%v) committed", x)
		}
	}

	after := s.Deck()
	if len(after) != len(before) || len(s.History()) != 0 {
		t.Fatalf("session changed: deck %v -> %v", before, after)
	}
}

func TestStackRotation(t *testing.T) {
	t.Parallel()

	if got := StackRotation(7, true); got != 0 {
		t.Errorf("front = %v, want 0", got)
	}
	if got := StackRotation(4, false); got != -6 {
		t.Errorf("even = %v, want -6", got)
	}
	if got := StackRotation(3, false); got != 6 {
		t.Errorf("odd = %v, want 6", got)
	}
}

func TestDrag_MoveAndEnd(t *testing.T) {
	t.Parallel()

	d := StartDrag(5, 40)
	d.Move(52)
	if !approx(d.X, 120) {
		t.Fatalf("X = %v, want 120", d.X)
	}
	if x := d.End(); !approx(x, 120) {
		t.Errorf("End = %v, want 120", x)
	}
	if d.Active() {
		t.Error("drag still active after End")
	}
	d.Move(0)
	if !approx(d.X, 120) {
		t.Error("Move after End changed offset")
	}
}

func TestSnapback_Settles(t *testing.T) {
	t.Parallel()

	s := NewSnapback(90)
	for i := 0; i < 600; i++ {
		if s.Step() {
			if s.X != 0 {
				t.Fatalf("settled at %v, want 0", s.X)
			}
			return
		}
	}
	t.Fatalf("spring did not settle, X = %v", s.X)
}
