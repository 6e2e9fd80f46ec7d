package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navframe/internal/nav"
	"github.com/vidyasagar/navframe/internal/theme"
)

// StatusBar shows the mode, the status message and the loaded page.
type StatusBar struct {
	mode       string
	status     string
	title      string
	scrollInfo string
	width      int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{mode: "NORMAL"}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the mode indicator (NORMAL, INSERT, COMMAND, HISTORY).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// SetStatus sets the status message.
func (s *StatusBar) SetStatus(msg string) {
	s.status = msg
}

// SetTitle sets the loaded page title.
func (s *StatusBar) SetTitle(title string) {
	s.title = title
}

// SetScrollInfo sets the scroll position string ("TOP", "42%", "BOT").
func (s *StatusBar) SetScrollInfo(info string) {
	s.scrollInfo = info
}

func statusColor(status string) lipgloss.Color {
	t := theme.Current
	switch status {
	case nav.StatusLoading, nav.StatusReloading:
		return t.Warning
	case nav.StatusLoaded:
		return t.Success
	case nav.StatusInvalid, nav.StatusLoadFailed:
		return t.Error
	default:
		return t.Info
	}
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeBg := t.Primary
	switch s.mode {
	case "INSERT":
		modeBg = t.Success
	case "COMMAND":
		modeBg = t.Accent
	case "HISTORY":
		modeBg = t.Link
	}
	mode := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background).
		Background(modeBg).
		Render(s.mode)

	status := lipgloss.NewStyle().
		Foreground(statusColor(s.status)).
		Background(t.Surface).
		Bold(true).
		Padding(0, 1).
		Render(s.status)

	title := ""
	if s.title != "" {
		title = lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.title)
	}

	right := ""
	if s.scrollInfo != "" {
		right = lipgloss.NewStyle().
			Foreground(t.TextDim).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.scrollInfo)
	}

	used := lipgloss.Width(mode) + lipgloss.Width(status) + lipgloss.Width(title) + lipgloss.Width(right)
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", max(s.width-used, 0), ""))

	return mode + status + title + spacer + right
}
