package cardstack

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/tinytelemetry/pawprefs/internal/model"
)

const (
	// DragThreshold is the offset a drag must exceed to commit a swipe.
	DragThreshold = 100.0
	// DragRange is the offset at which rotation and fade saturate.
	DragRange = 150.0
	// MaxRotation is the card tilt in degrees at DragRange.
	MaxRotation = 18.0
	// StackTilt is the fixed tilt of cards beneath the top one.
	StackTilt = 6.0
	// CellUnits converts one terminal column of mouse travel into offset units.
	CellUnits = 10.0

	// FrameInterval paces animation ticks.
	FrameInterval = time.Second / 60
)

// Rotation maps a horizontal offset to a tilt in degrees over
// [-DragRange, DragRange] -> [-MaxRotation, MaxRotation], clamped.
func Rotation(x float64) float64 {
	x = clamp(x, -DragRange, DragRange)
	return x / DragRange * MaxRotation
}

// Opacity maps a horizontal offset over [-DragRange, 0, DragRange] -> [0, 1, 0].
func Opacity(x float64) float64 {
	ax := math.Abs(x)
	if ax >= DragRange {
		return 0
	}
	return 1 - ax/DragRange
}

// ResolveDrag decides what a released drag does. A swipe is committed only
// when |x| is strictly greater than DragThreshold.
func ResolveDrag(x float64) (model.Direction, bool) {
	if math.Abs(x) <= DragThreshold {
		return model.Left, false
	}
	if x > 0 {
		return model.Right, true
	}
	return model.Left, true
}

// StackRotation is the resting tilt of a card: zero for the front card,
// otherwise -StackTilt for even ids and +StackTilt for odd ids.
func StackRotation(id int, front bool) float64 {
	if front {
		return 0
	}
	if id%2 != 0 {
		return StackTilt
	}
	return -StackTilt
}

// Drag tracks an in-progress horizontal drag of one card.
type Drag struct {
	ItemID  int
	X       float64
	originX int
	active  bool
}

// StartDrag begins dragging item itemID from terminal column col.
func StartDrag(itemID, col int) Drag {
	return Drag{ItemID: itemID, originX: col, active: true}
}

// Active reports whether a drag is in progress.
func (d Drag) Active() bool { return d.active }

// Move updates the offset from the current pointer column.
func (d *Drag) Move(col int) {
	if !d.active {
		return
	}
	d.X = float64(col-d.originX) * CellUnits
}

// End finishes the drag and returns the final offset.
func (d *Drag) End() float64 {
	x := d.X
	d.active = false
	return x
}

// Snapback springs a cancelled drag offset back to zero.
type Snapback struct {
	spring harmonica.Spring
	X      float64
	vel    float64
}

// NewSnapback starts a critically damped spring at offset from.
func NewSnapback(from float64) *Snapback {
	return &Snapback{
		spring: harmonica.NewSpring(harmonica.FPS(60), 12.0, 1.0),
		X:      from,
	}
}

// Step advances one frame and reports whether the spring has settled.
func (s *Snapback) Step() bool {
	s.X, s.vel = s.spring.Update(s.X, s.vel, 0)
	if math.Abs(s.X) < 0.5 && math.Abs(s.vel) < 0.5 {
		s.X, s.vel = 0, 0
		return true
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
