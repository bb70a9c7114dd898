package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all widget key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding

	// Cards
	Dislike key.Binding
	Like    key.Binding

	// Shared by the error state and the summary
	Retry key.Binding

	// Summary scrolling
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),

		Dislike: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "dislike"),
		),
		Like: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "like"),
		),

		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "pagedown"),
			key.WithHelp("pgdn", "page down"),
		),
	}
}

// cardsHelp adapts the key map to bubbles/help for the cards page.
type cardsHelp struct{ keys KeyMap }

func (h cardsHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Dislike, h.keys.Like, h.keys.Help, h.keys.Quit}
}

func (h cardsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.keys.Dislike, h.keys.Like},
		{h.keys.Retry, h.keys.Help, h.keys.Quit, h.keys.ForceQuit},
	}
}

// resultsHelp adapts the key map to bubbles/help for the summary page.
type resultsHelp struct{ keys KeyMap }

func (h resultsHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Retry, h.keys.Up, h.keys.Down, h.keys.Help, h.keys.Quit}
}

func (h resultsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.keys.Retry},
		{h.keys.Up, h.keys.Down, h.keys.PageUp, h.keys.PageDown},
		{h.keys.Help, h.keys.Quit, h.keys.ForceQuit},
	}
}
