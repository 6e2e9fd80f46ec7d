package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navframe/internal/theme"
)

// LeaderBinding is one shortcut shown in the palette.
type LeaderBinding struct {
	Key  string // as displayed, e.g. "H" or "Ctrl+d"
	Desc string
}

// LeaderGroup is a named column of shortcuts.
type LeaderGroup struct {
	Name     string
	Bindings []LeaderBinding
}

// LeaderPanel is the popup shortcut palette shown after the leader key.
type LeaderPanel struct {
	visible bool
	width   int
	height  int
	groups  []LeaderGroup
}

// NewLeaderPanel creates a hidden palette listing groups.
func NewLeaderPanel(groups []LeaderGroup) LeaderPanel {
	return LeaderPanel{groups: groups}
}

// Groups returns the listed shortcut groups.
func (lp *LeaderPanel) Groups() []LeaderGroup {
	return lp.groups
}

// Show makes the panel visible.
func (lp *LeaderPanel) Show() {
	lp.visible = true
}

// Hide closes the panel.
func (lp *LeaderPanel) Hide() {
	lp.visible = false
}

// IsVisible reports whether the panel is shown.
func (lp *LeaderPanel) IsVisible() bool {
	return lp.visible
}

// SetSize sets the available area for rendering.
func (lp *LeaderPanel) SetSize(w, h int) {
	lp.width = w
	lp.height = h
}

// View renders the palette as a bordered box, one column per group.
func (lp *LeaderPanel) View() string {
	if !lp.visible {
		return ""
	}

	t := theme.Current

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	groupNameStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Underline(true)
	keyBadgeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 1)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Italic(true)
	separatorStyle := lipgloss.NewStyle().Foreground(t.Border)

	const colWidth = 24

	maxRows := 0
	for _, g := range lp.groups {
		maxRows = max(maxRows, len(g.Bindings))
	}

	colStyle := lipgloss.NewStyle().Width(colWidth)

	var columns []string
	for i, group := range lp.groups {
		lines := []string{groupNameStyle.Render(group.Name), ""}
		for _, b := range group.Bindings {
			lines = append(lines, keyBadgeStyle.Render(b.Key)+descStyle.Render(" "+b.Desc))
		}
		for j := len(group.Bindings); j < maxRows; j++ {
			lines = append(lines, "")
		}

		col := colStyle.Render(strings.Join(lines, "\n"))
		columns = append(columns, col)

		if i < len(lp.groups)-1 {
			sep := make([]string, lipgloss.Height(col))
			for s := range sep {
				sep[s] = separatorStyle.Render(" │ ")
			}
			columns = append(columns, strings.Join(sep, "\n"))
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	bodyWidth := lipgloss.Width(body)
	rule := separatorStyle.Render(strings.Repeat("─", bodyWidth))

	footer := dimStyle.Render("press a key or Esc to dismiss")
	footerPad := ""
	if fw := lipgloss.Width(footer); fw < bodyWidth {
		footerPad = strings.Repeat(" ", (bodyWidth-fw)/2)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Shortcuts"),
		rule,
		"",
		body,
		"",
		rule,
		footerPad+footer,
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(content)
}
