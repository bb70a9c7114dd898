package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (cards, results).
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// Enterable is implemented by pages that accept navigation parameters.
// When present, Enter is called instead of Init on navigation.
type Enterable interface {
	Enter(params any) tea.Cmd
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
	Params any
}
