package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vidyasagar/navframe/internal/ui"
)

// KeyMap defines all keybindings for navframe.
type KeyMap struct {
	// Scrolling
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding

	// Navigation
	EditAddress key.Binding
	Back        key.Binding
	Forward     key.Binding
	Home        key.Binding
	Reload      key.Binding
	Clear       key.Binding

	// Modes
	CommandMode   key.Binding
	HistoryToggle key.Binding
	HistoryFocus  key.Binding
	Leader        key.Binding

	Quit key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+u", "half page up"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		EditAddress: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "edit address"),
		),
		Back: key.NewBinding(
			key.WithKeys("H", "alt+left"),
			key.WithHelp("H", "go back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("L", "alt+right"),
			key.WithHelp("L", "go forward"),
		),
		Home: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "go home"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear history"),
		),
		CommandMode: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command mode"),
		),
		HistoryToggle: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("Ctrl+b", "toggle history"),
		),
		HistoryFocus: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("Ctrl+h", "focus history"),
		),
		Leader: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "shortcuts"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderGroups lists the normal-mode bindings for the shortcut palette,
// labelled from each binding's help.
func (k KeyMap) LeaderGroups() []ui.LeaderGroup {
	group := func(name string, bindings ...key.Binding) ui.LeaderGroup {
		g := ui.LeaderGroup{Name: name}
		for _, b := range bindings {
			h := b.Help()
			g.Bindings = append(g.Bindings, ui.LeaderBinding{Key: h.Key, Desc: h.Desc})
		}
		return g
	}
	return []ui.LeaderGroup{
		group("Navigate", k.EditAddress, k.Back, k.Forward, k.Home, k.Reload),
		group("History", k.HistoryFocus, k.HistoryToggle, k.Clear),
		group("Scroll", k.ScrollDown, k.ScrollUp, k.HalfPageDown, k.HalfPageUp, k.GotoTop, k.GotoBottom),
		group("Other", k.CommandMode, k.Quit),
	}
}
