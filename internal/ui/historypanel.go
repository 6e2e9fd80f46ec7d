package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navframe/internal/nav"
	"github.com/vidyasagar/navframe/internal/theme"
)

const (
	panelHeaderLines = 2 // title + separator
	panelEntryLines  = 2 // address + host
)

// HistoryPanel lists the navigation history newest first.
type HistoryPanel struct {
	items    []nav.ListItem
	selected int // keyboard selection, index into items
	offset   int // first visible item
	width    int
	height   int
	visible  bool
	focused  bool
}

// NewHistoryPanel creates a visible history panel.
func NewHistoryPanel() HistoryPanel {
	return HistoryPanel{visible: true}
}

// SetItems replaces the listing, keeping the selection in range.
func (hp *HistoryPanel) SetItems(items []nav.ListItem) {
	hp.items = items
	if hp.selected >= len(items) {
		hp.selected = len(items) - 1
	}
	if hp.selected < 0 {
		hp.selected = 0
	}
	hp.ensureVisible()
}

// SetSize updates the panel dimensions.
func (hp *HistoryPanel) SetSize(w, h int) {
	hp.width = w
	hp.height = h
	hp.ensureVisible()
}

// Width returns the panel width.
func (hp *HistoryPanel) Width() int {
	return hp.width
}

// IsVisible reports whether the panel is shown.
func (hp *HistoryPanel) IsVisible() bool {
	return hp.visible
}

// Toggle switches visibility. Hiding also drops focus.
func (hp *HistoryPanel) Toggle() {
	hp.visible = !hp.visible
	if !hp.visible {
		hp.focused = false
	}
}

// Focus gives the panel keyboard focus, selecting the newest entry.
func (hp *HistoryPanel) Focus() {
	hp.visible = true
	hp.focused = true
	hp.selected = 0
	hp.offset = 0
}

// Blur drops keyboard focus.
func (hp *HistoryPanel) Blur() {
	hp.focused = false
}

// IsFocused reports whether the panel has keyboard focus.
func (hp *HistoryPanel) IsFocused() bool {
	return hp.focused
}

// CursorUp moves the selection toward newer entries.
func (hp *HistoryPanel) CursorUp() {
	if hp.selected > 0 {
		hp.selected--
		hp.ensureVisible()
	}
}

// CursorDown moves the selection toward older entries.
func (hp *HistoryPanel) CursorDown() {
	if hp.selected < len(hp.items)-1 {
		hp.selected++
		hp.ensureVisible()
	}
}

// Selected returns the selected item.
func (hp *HistoryPanel) Selected() (nav.ListItem, bool) {
	if hp.selected < 0 || hp.selected >= len(hp.items) {
		return nav.ListItem{}, false
	}
	return hp.items[hp.selected], true
}

// ItemAt returns the item drawn at row y, counted from the panel's top.
func (hp *HistoryPanel) ItemAt(y int) (nav.ListItem, bool) {
	if !hp.visible || y < panelHeaderLines {
		return nav.ListItem{}, false
	}
	i := hp.offset + (y-panelHeaderLines)/panelEntryLines
	if i >= hp.offset+hp.visibleCount() || i >= len(hp.items) {
		return nav.ListItem{}, false
	}
	return hp.items[i], true
}

func (hp *HistoryPanel) visibleCount() int {
	count := (hp.height - panelHeaderLines) / panelEntryLines
	if count < 1 {
		count = 1
	}
	return count
}

func (hp *HistoryPanel) ensureVisible() {
	visible := hp.visibleCount()
	if hp.selected < hp.offset {
		hp.offset = hp.selected
	}
	if hp.selected >= hp.offset+visible {
		hp.offset = hp.selected - visible + 1
	}
	if hp.offset < 0 {
		hp.offset = 0
	}
}

// View renders the panel.
func (hp *HistoryPanel) View() string {
	if !hp.visible {
		return ""
	}

	t := theme.Current
	inner := max(hp.width-2, 1)

	titleColor := t.TextDim
	if hp.focused {
		titleColor = t.Primary
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor).Padding(0, 1)
	addrStyle := lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)
	hostStyle := lipgloss.NewStyle().Foreground(t.TextDim).Padding(0, 1)
	currentStyle := lipgloss.NewStyle().Foreground(t.Link).Bold(true).Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextBright).Background(t.Selected).Padding(0, 1)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("History (%d)", len(hp.items))))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", inner)))
	sb.WriteString("\n")

	if len(hp.items) == 0 {
		sb.WriteString(hostStyle.Render("No history yet."))
	}

	end := min(hp.offset+hp.visibleCount(), len(hp.items))
	for i := hp.offset; i < end; i++ {
		item := hp.items[i]

		marker := "  "
		if item.Current {
			marker = "▸ "
		}

		style := addrStyle
		switch {
		case hp.focused && i == hp.selected:
			style = selectedStyle
		case item.Current:
			style = currentStyle
		}

		sb.WriteString(style.Render(truncate(marker+item.Address, inner-2)))
		sb.WriteString("\n")
		sb.WriteString(hostStyle.Render(truncate("  "+item.Host, inner-2)))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(hp.width).
		Height(hp.height).
		MaxHeight(hp.height).
		Render(strings.TrimRight(sb.String(), "\n"))
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
