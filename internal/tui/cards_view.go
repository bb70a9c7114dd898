package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/pawprefs/internal/cardstack"
	"github.com/tinytelemetry/pawprefs/internal/model"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	statusRows = 2 // branding, counter
	emojiRows  = 4
	edgeRows   = 2 // peeking cards beneath the top one
	buttonGap  = 8

	minCardRows = 4
	maxCardRows = 20
)

// rect is a cell-space hit box.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r rect) shifted(dx int) rect {
	r.x += dx
	return r
}

// cardsLayout positions every element of the cards page. View and the mouse
// handler share it so hit boxes match what is drawn.
type cardsLayout struct {
	width    int
	cardCols int
	cardRows int
	card     rect // includes the border
	buttonsY int
	dislike  rect
	like     rect
}

func (p *CardsPage) layout() cardsLayout {
	w, h := p.width, p.height
	if w <= 0 || h <= 0 {
		w, h = defaultWidth, defaultHeight
	}

	// Everything that is not the card image: status, emoji lane, borders,
	// peeking edges, a gap, buttons, a gap and the help line.
	chrome := statusRows + emojiRows + 2 + edgeRows + 1 + 1 + 1 + 1
	rows := min(max(h-chrome, minCardRows), maxCardRows)
	// Half-block cells are roughly square, so keep a portrait card.
	cols := rows * 142 / 100

	lay := cardsLayout{width: w, cardCols: cols, cardRows: rows}
	cardW := cols + 2
	lay.card = rect{x: max((w-cardW)/2, 0), y: statusRows + emojiRows, w: cardW, h: rows + 2}
	lay.buttonsY = lay.card.y + lay.card.h + edgeRows + 1

	dw := lipgloss.Width(dislikeButton())
	lw := lipgloss.Width(likeButton())
	bx := max((w-(dw+buttonGap+lw))/2, 0)
	lay.dislike = rect{x: bx, y: lay.buttonsY, w: dw, h: 1}
	lay.like = rect{x: bx + dw + buttonGap, y: lay.buttonsY, w: lw, h: 1}
	return lay
}

func dislikeButton() string { return dislikeButtonStyle.Render("✕ Dislike") }
func likeButton() string    { return likeButtonStyle.Render("♥ Like") }

func (p *CardsPage) View(width, height int) string {
	if width > 0 && height > 0 {
		p.width, p.height = width, height
	}
	lay := p.layout()
	s := p.deps.Session

	header := lipgloss.PlaceHorizontal(lay.width, lipgloss.Center, renderBranding())
	helpLine := p.help.View(cardsHelp{keys: p.deps.Keys})
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(helpLine), 1)

	switch s.Phase() {
	case model.PhaseLoading:
		var body string
		if err := s.LoadErr(); err != nil {
			body = renderLoadError(lay.width, bodyHeight, err)
		} else {
			body = renderLoadingPlaceholder(lay.width, bodyHeight)
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, body, helpLine)
	case model.PhaseFinished:
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(lay.width, bodyHeight, lipgloss.Center, lipgloss.Center, helpStyle.Render("All done.")),
			helpLine)
	}

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(p.renderStatus(lay) + "\n")
	b.WriteString(p.renderEmojiLane(lay))
	b.WriteString(p.renderStack(lay))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", lay.dislike.x) + dislikeButton() +
		strings.Repeat(" ", buttonGap) + likeButton() + "\n")
	b.WriteString("\n")
	b.WriteString(helpLine)
	return b.String()
}

// renderStatus shows remaining cards, the current tilt and, past the commit
// threshold, which way the card will go.
func (p *CardsPage) renderStatus(lay cardsLayout) string {
	c := p.deps.Session.Counts()
	x := p.offsetX()

	parts := []string{fmt.Sprintf("%d of %d left", c.Deck, c.Total)}
	if x != 0 {
		parts = append(parts, fmt.Sprintf("tilt %+.0f°", cardstack.Rotation(x)))
	}
	line := helpStyle.Render(strings.Join(parts, "  ·  "))
	if math.Abs(x) > cardstack.DragThreshold {
		if x > 0 {
			line += "  " + stampLikeStyle.Render("LIKE")
		} else {
			line += "  " + stampNopeStyle.Render("NOPE")
		}
	}
	return lipgloss.PlaceHorizontal(lay.width, lipgloss.Center, line)
}

// renderEmojiLane draws floating feedback markers in the rows above the card.
func (p *CardsPage) renderEmojiLane(lay cardsLayout) string {
	cells := make([][]string, emojiRows)
	for i := range cells {
		cells[i] = make([]string, lay.width)
		for j := range cells[i] {
			cells[i][j] = " "
		}
	}

	now := p.deps.now()
	for _, e := range p.effects.Active() {
		f := e.Frame(now)
		if f.Done || f.Opacity < 0.1 {
			continue
		}
		row := emojiRows - 1 - int(math.Round(f.Y/cardstack.EmojiRise*float64(emojiRows-1)))
		col := lay.card.x + int(e.OffsetX/cardstack.CellUnits)
		if row < 0 || row >= emojiRows || col < 0 || col+1 >= lay.width {
			continue
		}
		cells[row][col] = e.Glyph
		cells[row][col+1] = ""
	}

	var b strings.Builder
	for _, r := range cells {
		b.WriteString(strings.Join(r, "") + "\n")
	}
	return b.String()
}

// renderStack draws the top card, displaced and faded by the drag, followed
// by the edges of the next cards tilted the way their resting rotation leans.
func (p *CardsPage) renderStack(lay cardsLayout) string {
	s := p.deps.Session
	top, ok := s.Top()
	if !ok {
		return strings.Repeat("\n", lay.card.h+edgeRows)
	}

	x := p.offsetX()
	opacity := cardstack.Opacity(x)
	img := p.deps.Renderer.Card(top.Resource, lay.cardCols, lay.cardRows, opacity)

	border := frontCardStyle
	switch {
	case x > cardstack.DragThreshold:
		border = border.BorderForeground(ColorGreen)
	case x < -cardstack.DragThreshold:
		border = border.BorderForeground(ColorRed)
	}
	card := border.Render(img)

	shift := lay.card.x + p.offsetCols()
	var b strings.Builder
	for _, line := range strings.Split(card, "\n") {
		b.WriteString(indent(shift, lay.width) + line + "\n")
	}

	deck := s.Deck()
	edge := lipgloss.NewStyle().Foreground(ColorDim).
		Render("╰" + strings.Repeat("─", lay.cardCols) + "╯")
	for i := 0; i < edgeRows; i++ {
		idx := len(deck) - 2 - i
		if idx < 0 {
			b.WriteString("\n")
			continue
		}
		lean := 1
		if cardstack.StackRotation(deck[idx].ID, false) < 0 {
			lean = -1
		}
		b.WriteString(indent(lay.card.x+lean*(i+1), lay.width) + edge + "\n")
	}
	return b.String()
}

// indent returns n spaces clamped to the visible width.
func indent(n, width int) string {
	return strings.Repeat(" ", min(max(n, 0), max(width-1, 0)))
}
