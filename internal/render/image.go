package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"
	"github.com/tinytelemetry/pawprefs/internal/model"
)

// ErrUnsupported is returned for payloads that are not a decodable image.
var ErrUnsupported = errors.New("render: unsupported image payload")

const halfBlock = "▀"

// Background is the colour cells fade toward as opacity drops.
var Background = color.RGBA{R: 0x1a, G: 0x1b, B: 0x26, A: 0xff}

// Decode sniffs the payload type and decodes jpeg, png or gif data.
func Decode(data []byte) (image.Image, error) {
	mt := mimetype.Detect(data)
	r := bytes.NewReader(data)

	var (
		img image.Image
		err error
	)
	switch {
	case mt.Is("image/jpeg"):
		img, err = jpeg.Decode(r)
	case mt.Is("image/png"):
		img, err = png.Decode(r)
	case mt.Is("image/gif"):
		img, err = gif.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, mt.String())
	}
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", mt.String(), err)
	}
	return img, nil
}

// Cells renders img as cols x rows terminal cells. Each cell shows two
// vertically stacked pixels using a half block. opacity in [0,1] fades
// every pixel toward Background.
func Cells(img image.Image, cols, rows int, opacity float64) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	sample := func(cx, py int) color.RGBA {
		x := b.Min.X + cx*b.Dx()/cols
		y := b.Min.Y + py*b.Dy()/(rows*2)
		return fade(img.At(x, y), opacity)
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			top := sample(col, row*2)
			bottom := sample(col, row*2+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bottom))).
				Render(halfBlock))
		}
	}
	return sb.String()
}

// Placeholder renders a card face for payloads that could not be decoded.
func Placeholder(cols, rows int, label string) string {
	style := lipgloss.NewStyle().
		Width(max(cols-2, 1)).
		Height(max(rows-2, 1)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Foreground(lipgloss.Color("244")).
		Align(lipgloss.Center, lipgloss.Center)
	return style.Render(label)
}

func fade(c color.Color, opacity float64) color.RGBA {
	opacity = math.Max(0, math.Min(1, opacity))
	r, g, b, _ := c.RGBA()
	mix := func(v uint32, bg uint8) uint8 {
		fg := float64(v >> 8)
		return uint8(math.Round(float64(bg) + (fg-float64(bg))*opacity))
	}
	return color.RGBA{
		R: mix(r, Background.R),
		G: mix(g, Background.G),
		B: mix(b, Background.B),
		A: 0xff,
	}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type cacheKey struct {
	handle  model.Handle
	cols    int
	rows    int
	opacity int // opacity quantised to tenths
}

// Renderer turns registry handles into terminal art, caching decoded
// images and rendered frames. It is used from the UI loop only.
type Renderer struct {
	source  model.ResourceReader
	decoded map[model.Handle]image.Image
	failed  map[model.Handle]bool
	frames  map[cacheKey]string
}

// NewRenderer creates a renderer reading payloads from source.
func NewRenderer(source model.ResourceReader) *Renderer {
	return &Renderer{
		source:  source,
		decoded: make(map[model.Handle]image.Image),
		failed:  make(map[model.Handle]bool),
		frames:  make(map[cacheKey]string),
	}
}

// Card renders the image behind h at the given size and opacity.
// Undecodable or released payloads render as a placeholder.
func (r *Renderer) Card(h model.Handle, cols, rows int, opacity float64) string {
	key := cacheKey{handle: h, cols: cols, rows: rows, opacity: int(math.Round(opacity * 10))}
	if s, ok := r.frames[key]; ok {
		return s
	}

	img, err := r.image(h)
	var out string
	if err != nil {
		out = Placeholder(cols, rows, "image unavailable")
	} else {
		out = Cells(img, cols, rows, float64(key.opacity)/10)
	}
	r.frames[key] = out
	return out
}

// Purge drops every cached image and frame.
func (r *Renderer) Purge() {
	clear(r.decoded)
	clear(r.failed)
	clear(r.frames)
}

func (r *Renderer) image(h model.Handle) (image.Image, error) {
	if img, ok := r.decoded[h]; ok {
		return img, nil
	}
	if r.failed[h] {
		return nil, ErrUnsupported
	}
	data, err := r.source.Get(h)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		r.failed[h] = true
		return nil, err
	}
	r.decoded[h] = img
	return img, nil
}
