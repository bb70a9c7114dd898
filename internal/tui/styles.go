package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by all pages.
var (
	ColorGray   = lipgloss.Color("244")
	ColorDim    = lipgloss.Color("240")
	ColorBlue   = lipgloss.Color("39")
	ColorRed    = lipgloss.Color("#f87171")
	ColorGreen  = lipgloss.Color("#34d399")
	ColorNavy   = lipgloss.Color("17")
	ColorWhite  = lipgloss.Color("255")
	ColorOrange = lipgloss.Color("208")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorWhite)
	helpStyle  = lipgloss.NewStyle().Foreground(ColorGray)
	errorStyle = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)

	sectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)

	dislikeButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(ColorRed).
				Padding(0, 2)
	likeButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(ColorGreen).
			Padding(0, 2)
	retryButtonStyle = lipgloss.NewStyle().
				Foreground(ColorWhite).
				Background(ColorBlue).
				Bold(true).
				Padding(0, 3)

	frontCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWhite)
	stampLikeStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	stampNopeStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
)

// renderBranding renders the app title with a warm gradient, paw first.
func renderBranding() string {
	colors := []string{"#f9a8d4", "#f9a0c8", "#f898bc", "#f890b0", "#f788a4", "#f78098"}
	words := []string{"Paw", " ", "and", " ", "Preferences"}

	out := "🐾 "
	for i, w := range words {
		out += lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors[i%len(colors)])).
			Bold(true).
			Render(w)
	}
	return out
}
