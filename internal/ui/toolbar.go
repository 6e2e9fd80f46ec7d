package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navframe/internal/nav"
	"github.com/vidyasagar/navframe/internal/theme"
)

// Action is a toolbar button.
type Action int

const (
	ActionNone Action = iota
	ActionBack
	ActionForward
	ActionHome
	ActionReload
	ActionClear
)

type button struct {
	action Action
	label  string
}

var toolbarButtons = []button{
	{ActionBack, "◀ Back"},
	{ActionForward, "Forward ▶"},
	{ActionHome, "⌂ Home"},
	{ActionReload, "⟳ Reload"},
	{ActionClear, "✕ Clear"},
}

// Toolbar is the row of navigation buttons.
type Toolbar struct {
	width int
}

// NewToolbar creates a toolbar.
func NewToolbar() Toolbar {
	return Toolbar{}
}

// SetWidth sets the toolbar width.
func (tb *Toolbar) SetWidth(w int) {
	tb.width = w
}

func enabled(a Action, b nav.Buttons) bool {
	switch a {
	case ActionBack:
		return b.Back
	case ActionForward:
		return b.Forward
	default:
		return true
	}
}

func renderButton(btn button, on bool) string {
	t := theme.Current
	style := lipgloss.NewStyle().Padding(0, 1)
	if on {
		style = style.Foreground(t.TextBright).Background(t.Selected).Bold(true)
	} else {
		style = style.Foreground(t.Disabled).Background(t.Surface).Strikethrough(true)
	}
	return style.Render(btn.label)
}

// View renders the buttons; back and forward follow b.
func (tb *Toolbar) View(b nav.Buttons) string {
	t := theme.Current

	parts := make([]string, 0, len(toolbarButtons))
	for _, btn := range toolbarButtons {
		parts = append(parts, renderButton(btn, enabled(btn.action, b)))
	}
	row := strings.Join(parts, " ")

	return lipgloss.NewStyle().
		Background(t.Background).
		Width(max(tb.width, 1)).
		Render(row)
}

// ActionAt returns the button under column x, ignoring disabled ones.
func (tb *Toolbar) ActionAt(x int, b nav.Buttons) Action {
	pos := 0
	for _, btn := range toolbarButtons {
		w := lipgloss.Width(renderButton(btn, true))
		if x >= pos && x < pos+w {
			if !enabled(btn.action, b) {
				return ActionNone
			}
			return btn.action
		}
		pos += w + 1
	}
	return ActionNone
}
