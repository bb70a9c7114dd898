package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/pawprefs/internal/logging"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 120 * time.Millisecond

// renderLoadingPlaceholder renders an animated loading indicator.
// The frame is selected based on the current time so it animates on re-render.
func renderLoadingPlaceholder(width, height int) string {
	frame := spinnerFrames[time.Now().UnixMilli()/120%int64(len(spinnerFrames))]

	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	text := loadingStyle.Render(frame + " Loading images, please wait ...")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// renderLoadError renders the recoverable error state shown when a batch fails.
func renderLoadError(width, height int, err error) string {
	var opErr *logging.OperationError
	if errors.As(err, &opErr) {
		err = opErr.Err
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		errorStyle.Render("Could not load images"),
		helpStyle.Render(err.Error()),
		"",
		retryButtonStyle.Render("r  Retry"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// SpinnerTickMsg triggers a re-render for the loading spinner.
type SpinnerTickMsg struct{}

func (SpinnerTickMsg) targetPage() string { return cardsPageID }

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(_ time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}
