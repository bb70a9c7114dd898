package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/pawprefs/internal/model"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

type fakeSource struct {
	data  map[model.Handle][]byte
	calls int
}

func (f *fakeSource) Get(h model.Handle) ([]byte, error) {
	f.calls++
	d, ok := f.data[h]
	if !ok {
		return nil, errors.New("released")
	}
	return d, nil
}

func TestDecode_PNG(t *testing.T) {
	t.Parallel()

	img, err := Decode(encodePNG(t, 8, 6))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := img.Bounds().Dx(); got != 8 {
		t.Errorf("width = %d, want 8", got)
	}
}

func TestDecode_RejectsNonImage(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("<html>not a cat</html>"))
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestCells_Dimensions(t *testing.T) {
	t.Parallel()

	img, err := Decode(encodePNG(t, 20, 20))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out := Cells(img, 12, 5, 1)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("rows = %d, want 5", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Errorf("row %d width = %d, want 12", i, w)
		}
	}
}

func TestFade(t *testing.T) {
	t.Parallel()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if got := fade(white, 0); got != Background {
		t.Errorf("fade(white, 0) = %v, want background %v", got, Background)
	}
	if got := fade(white, 1); got != white {
		t.Errorf("fade(white, 1) = %v, want white", got)
	}
}

func TestRenderer_CachesAndFallsBack(t *testing.T) {
	t.Parallel()

	src := &fakeSource{data: map[model.Handle][]byte{
		"blob:cat":  encodePNG(t, 10, 10),
		"blob:junk": []byte("definitely not an image"),
	}}
	r := NewRenderer(src)

	first := r.Card("blob:cat", 6, 3, 1)
	second := r.Card("blob:cat", 6, 3, 1)
	if first != second {
		t.Error("cached frame differs")
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}

	junk := r.Card("blob:junk", 20, 6, 1)
	if !strings.Contains(junk, "image unavailable") {
		t.Errorf("junk payload did not render placeholder:\n%s", junk)
	}
	missing := r.Card("blob:gone", 20, 6, 1)
	if !strings.Contains(missing, "image unavailable") {
		t.Errorf("released payload did not render placeholder:\n%s", missing)
	}

	r.Purge()
	r.Card("blob:cat", 6, 3, 1)
	if src.calls != 4 {
		t.Errorf("source calls after purge = %d, want 4", src.calls)
	}
}
