package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tinytelemetry/pawprefs/internal/model"
	"github.com/tinytelemetry/pawprefs/internal/summary"
)

const (
	thumbCols = 12
	thumbRows = 6
	thumbGap  = 2

	chartWidth  = 24
	chartHeight = 8
)

// ResultsPage shows the liked and disliked cards of a finished session.
// It keeps only view state; retry is forwarded to the cards page.
type ResultsPage struct {
	deps     *Deps
	help     help.Model
	viewport viewport.Model
	summary  summary.Summary

	width  int
	height int
}

// NewResultsPage creates the summary page.
func NewResultsPage(deps *Deps) *ResultsPage {
	return &ResultsPage{
		deps:     deps,
		help:     help.New(),
		viewport: viewport.New(defaultWidth, defaultHeight),
	}
}

func (p *ResultsPage) ID() string    { return resultsPageID }
func (p *ResultsPage) Init() tea.Cmd { return nil }

// Summary returns the summary currently shown.
func (p *ResultsPage) Summary() summary.Summary { return p.summary }

// Enter receives the completed history from the cards page.
func (p *ResultsPage) Enter(params any) tea.Cmd {
	hist, _ := params.([]model.Item)
	p.summary = summary.Partition(hist)
	p.deps.setSummary(p.summary)

	liked, disliked := p.summary.Counts()
	p.deps.logger().Info("session finished",
		zap.Int("liked", liked),
		zap.Int("disliked", disliked),
	)

	p.resize()
	p.viewport.GotoTop()
	return nil
}

func (p *ResultsPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.help.Width = msg.Width
		p.resize()
		return nil, nil

	case tea.KeyMsg:
		keys := p.deps.Keys
		switch {
		case key.Matches(msg, keys.ForceQuit), key.Matches(msg, keys.Quit):
			return tea.Quit, nil
		case key.Matches(msg, keys.Help):
			p.help.ShowAll = !p.help.ShowAll
			p.resize()
			return nil, nil
		case key.Matches(msg, keys.Retry):
			return p.retry()
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			p.retryRect().contains(msg.X, msg.Y) {
			return p.retry()
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd, nil
}

func (p *ResultsPage) retry() (tea.Cmd, *PageNav) {
	p.deps.logger().Info("retry requested")
	return nil, &PageNav{PageID: cardsPageID, Params: retryRequest{}}
}

func (p *ResultsPage) size() (int, int) {
	if p.width <= 0 || p.height <= 0 {
		return defaultWidth, defaultHeight
	}
	return p.width, p.height
}

// Rows: branding, blank, viewport, blank, retry button, help.
func (p *ResultsPage) viewportHeight() int {
	_, h := p.size()
	helpHeight := lipgloss.Height(p.help.View(resultsHelp{keys: p.deps.Keys}))
	return max(h-4-helpHeight, 1)
}

func (p *ResultsPage) retryRect() rect {
	w, _ := p.size()
	bw := lipgloss.Width(retryButton())
	return rect{x: max((w-bw)/2, 0), y: 3 + p.viewportHeight(), w: bw, h: 1}
}

func retryButton() string { return retryButtonStyle.Render("↻ Retry") }

func (p *ResultsPage) resize() {
	w, _ := p.size()
	p.viewport.Width = w
	p.viewport.Height = p.viewportHeight()
	p.viewport.SetContent(p.renderContent(w))
}

func (p *ResultsPage) View(width, height int) string {
	if width > 0 && height > 0 && (width != p.width || height != p.height) {
		p.width, p.height = width, height
		p.resize()
	}
	w, _ := p.size()
	rr := p.retryRect()

	return strings.Join([]string{
		lipgloss.PlaceHorizontal(w, lipgloss.Center, renderBranding()),
		"",
		p.viewport.View(),
		"",
		indent(rr.x, w) + retryButton(),
		p.help.View(resultsHelp{keys: p.deps.Keys}),
	}, "\n")
}

func (p *ResultsPage) renderContent(width int) string {
	liked, disliked := p.summary.Counts()
	sections := []string{
		titleStyle.Render(fmt.Sprintf("You rated %d cats", p.summary.Total())),
		"",
		sectionTitleStyle.Render(fmt.Sprintf("You Liked: (%d)", liked)),
		p.renderGroup(p.summary.Liked, width),
		"",
		sectionTitleStyle.Render(fmt.Sprintf("You Disliked: (%d)", disliked)),
		p.renderGroup(p.summary.Disliked, width),
		"",
		sectionTitleStyle.Render("Breakdown"),
		renderBreakdownChart(liked, disliked),
	}
	return strings.Join(sections, "\n")
}

// renderGroup lays out thumbnails in rows that fit the width.
func (p *ResultsPage) renderGroup(items []model.Item, width int) string {
	if len(items) == 0 {
		return helpStyle.Render("none")
	}

	perRow := max(width/(thumbCols+thumbGap), 1)
	caption := lipgloss.NewStyle().Width(thumbCols).Align(lipgloss.Center).Foreground(ColorGray)
	cell := lipgloss.NewStyle().MarginRight(thumbGap)

	var rows []string
	for start := 0; start < len(items); start += perRow {
		end := min(start+perRow, len(items))
		thumbs := make([]string, 0, end-start)
		for _, it := range items[start:end] {
			img := p.deps.Renderer.Card(it.Resource, thumbCols, thumbRows, 1)
			thumbs = append(thumbs, cell.Render(lipgloss.JoinVertical(lipgloss.Left,
				img, caption.Render(fmt.Sprintf("#%d", it.ID)))))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, thumbs...))
	}
	return strings.Join(rows, "\n")
}

func renderBreakdownChart(liked, disliked int) string {
	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(2),
		barchart.WithBarWidth(8),
	)
	bc.Push(barchart.BarData{
		Label: "liked",
		Values: []barchart.BarValue{
			{Name: "liked", Value: float64(liked), Style: lipgloss.NewStyle().Foreground(ColorGreen)},
		},
	})
	bc.Push(barchart.BarData{
		Label: "disliked",
		Values: []barchart.BarValue{
			{Name: "disliked", Value: float64(disliked), Style: lipgloss.NewStyle().Foreground(ColorRed)},
		},
	})
	bc.Draw()
	return bc.View()
}
