package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/vidyasagar/navframe/internal/nav"
	"github.com/vidyasagar/navframe/internal/surface"
	"github.com/vidyasagar/navframe/internal/theme"
	"github.com/vidyasagar/navframe/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeInsert       // URL bar focused
	ModeCommand      // command bar active
	ModeHistory      // history panel focused
	ModeLeader       // shortcut palette shown
)

// leaderTimeout is how long the shortcut palette waits for a key.
const leaderTimeout = 2 * time.Second

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	case ModeHistory:
		return "HISTORY"
	case ModeLeader:
		return "LEADER"
	default:
		return "NORMAL"
	}
}

const (
	toolbarHeight   = 1
	statusBarHeight = 1
	bodyTop         = toolbarHeight + ui.URLBarHeight
)

// Model is the top-level bubbletea model for navframe.
type Model struct {
	// UI components
	toolbar      ui.Toolbar
	urlBar       ui.URLBar
	historyPanel ui.HistoryPanel
	viewport     ui.PageViewport
	statusBar    ui.StatusBar
	commandBar   ui.CommandBar
	leaderPanel  ui.LeaderPanel

	ctrl   *nav.Controller
	frame  *surface.Frame
	logger *zap.Logger

	keys     KeyMap
	mode     Mode
	width    int
	height   int
	lastGKey bool // for "gg" detection
	ready    bool
	notice   string // command feedback, replaces the status until the next action

	leaderSeq int // identifies the palette a timeout belongs to
}

// leaderTimeoutMsg closes the shortcut palette opened as number seq.
type leaderTimeoutMsg struct {
	seq int
}

// New creates the model. ctrl must have been built over frame.
func New(ctrl *nav.Controller, frame *surface.Frame, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := DefaultKeyMap()
	return Model{
		toolbar:      ui.NewToolbar(),
		urlBar:       ui.NewURLBar(),
		historyPanel: ui.NewHistoryPanel(),
		viewport:     ui.NewPageViewport(),
		statusBar:    ui.NewStatusBar(),
		commandBar:   ui.NewCommandBar(),
		leaderPanel:  ui.NewLeaderPanel(keys.LeaderGroups()),
		ctrl:         ctrl,
		frame:        frame,
		logger:       logger,
		keys:         keys,
		mode:         ModeNormal,
	}
}

// Init implements tea.Model. It loads the home address.
func (m Model) Init() tea.Cmd {
	m.ctrl.Start()
	return m.frame.TakeCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := !m.ready
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		if first {
			m.showFrame()
		}
		m.sync()
		return m, nil

	case surface.LoadedMsg:
		return m.handleLoaded(msg)

	case leaderTimeoutMsg:
		if m.mode == ModeLeader && msg.seq == m.leaderSeq {
			m = m.leaveMode()
			m.sync()
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading navframe..."
	}

	// Layout:
	// [toolbar]
	// [url bar]
	// [history panel | viewport]
	// [status bar]
	// [command bar] (if active)
	v := m.ctrl.View()

	sections := []string{
		m.toolbar.View(v.Buttons),
		m.urlBar.View(),
	}

	if m.historyPanel.IsVisible() {
		dividerStyle := lipgloss.NewStyle().
			Foreground(theme.Current.Border).
			Background(theme.Current.Background)
		lines := make([]string, m.bodyHeight())
		for i := range lines {
			lines[i] = "│"
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			m.historyPanel.View(),
			dividerStyle.Render(strings.Join(lines, "\n")),
			m.viewport.View(),
		))
	} else {
		sections = append(sections, m.viewport.View())
	}

	sections = append(sections, m.statusBar.View())
	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}

	result := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.leaderPanel.IsVisible() {
		result = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.leaderPanel.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(theme.Current.Background),
		)
	}

	return result
}

func (m *Model) bodyHeight() int {
	h := m.height - bodyTop - statusBarHeight
	if m.commandBar.IsActive() {
		h--
	}
	return max(h, 1)
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.toolbar.SetWidth(m.width)
	m.urlBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)

	height := m.bodyHeight()
	viewportWidth := m.width
	if m.historyPanel.IsVisible() {
		panelWidth := max(m.width*30/100, 20)
		m.historyPanel.SetSize(panelWidth, height)
		viewportWidth = max(m.width-panelWidth-1, 1) // -1 for divider
	}
	m.viewport.SetSize(viewportWidth, height)
	m.leaderPanel.SetSize(m.width, m.height)
	m.frame.SetWidth(viewportWidth)
}

// sync copies the controller's display state into the components.
func (m *Model) sync() {
	v := m.ctrl.View()

	m.urlBar.SetValue(v.Input)
	m.historyPanel.SetItems(v.Items)

	status := v.Status
	if m.notice != "" {
		status = m.notice
	}
	m.statusBar.SetStatus(status)
	m.statusBar.SetMode(m.mode.String())
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())

	title := ""
	if p := m.frame.Page(); p != nil && !m.frame.Loading() && m.frame.Err() == nil {
		title = p.Title
	}
	m.statusBar.SetTitle(title)
}

// showFrame puts the frame's last result into the viewport.
func (m *Model) showFrame() {
	switch {
	case m.frame.Loading():
	case m.frame.Err() != nil:
		m.viewport.ShowError(m.frame.Target(), m.frame.Err())
	case m.frame.Page() != nil:
		m.viewport.SetContent(m.frame.Page().Content)
	}
}

// after syncs the display and collects the load queued by the last
// controller operation, if any.
func (m Model) after() (tea.Model, tea.Cmd) {
	m.sync()
	return m, m.frame.TakeCmd()
}

func (m Model) setMode(mode Mode) Model {
	m.mode = mode
	m.statusBar.SetMode(mode.String())
	return m
}

func (m Model) handleLoaded(msg surface.LoadedMsg) (tea.Model, tea.Cmd) {
	if !m.frame.Accept(msg) {
		return m, nil
	}
	m.logger.Debug("load finished", zap.String("addr", msg.Addr), zap.Bool("ok", msg.Err == nil))
	if msg.Err != nil {
		m.viewport.ShowError(msg.Addr, msg.Err)
		m.ctrl.LoadFailed(msg.Err)
	} else {
		m.viewport.SetContent(msg.Page.Content)
		m.ctrl.Loaded()
	}
	m.sync()
	return m, nil
}

// handleMouse maps clicks on the toolbar, URL bar and history panel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		vp, cmd := m.viewport.Update(msg)
		m.viewport = *vp
		m.sync()
		return m, cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	m.notice = ""

	switch {
	case msg.Y < toolbarHeight:
		return m.runAction(m.toolbar.ActionAt(msg.X, m.ctrl.View().Buttons))

	case msg.Y < bodyTop:
		return m.enterInsert()

	case m.historyPanel.IsVisible() && msg.X < m.historyPanel.Width():
		item, ok := m.historyPanel.ItemAt(msg.Y - bodyTop)
		if !ok {
			return m, nil
		}
		m = m.leaveMode()
		m.ctrl.OpenListed(item.Index)
		return m.after()
	}

	return m, nil
}

// runAction performs a toolbar action. Focus returns to the page first so
// the address field can show the new address.
func (m Model) runAction(a ui.Action) (tea.Model, tea.Cmd) {
	if a == ui.ActionNone {
		return m, nil
	}
	m = m.leaveMode()

	switch a {
	case ui.ActionBack:
		m.ctrl.GoBack()
	case ui.ActionForward:
		m.ctrl.GoForward()
	case ui.ActionHome:
		m.ctrl.GoHome()
	case ui.ActionReload:
		m.ctrl.Reload()
	case ui.ActionClear:
		m.ctrl.ClearHistory()
	default:
		return m, nil
	}
	return m.after()
}

// leaveMode drops whatever has focus and returns to normal mode.
func (m Model) leaveMode() Model {
	switch m.mode {
	case ModeInsert:
		m.urlBar.Blur()
	case ModeCommand:
		m.commandBar.Close()
		m.layout()
	case ModeHistory:
		m.historyPanel.Blur()
	case ModeLeader:
		m.leaderPanel.Hide()
	}
	return m.setMode(ModeNormal)
}

func (m Model) enterInsert() (tea.Model, tea.Cmd) {
	m = m.leaveMode()
	m = m.setMode(ModeInsert)
	cmd := m.urlBar.Focus()
	return m, cmd
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow Ctrl+C to quit.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.notice = ""

	switch m.mode {
	case ModeInsert:
		return m.handleInsertMode(msg)
	case ModeCommand:
		return m.handleCommandMode(msg)
	case ModeHistory:
		return m.handleHistoryMode(msg)
	case ModeLeader:
		return m.handleLeaderMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keys in normal (browsing) mode.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	gPressed := m.lastGKey
	m.lastGKey = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.GotoTop):
		if gPressed {
			m.viewport.GotoTop()
			m.sync()
			return m, nil
		}
		m.lastGKey = true
		return m, nil

	case key.Matches(msg, m.keys.GotoBottom):
		m.viewport.GotoBottom()

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.LineDown(1)

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)

	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()

	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()

	case key.Matches(msg, m.keys.EditAddress):
		return m.enterInsert()

	case key.Matches(msg, m.keys.Back):
		return m.runAction(ui.ActionBack)

	case key.Matches(msg, m.keys.Forward):
		return m.runAction(ui.ActionForward)

	case key.Matches(msg, m.keys.Home):
		return m.runAction(ui.ActionHome)

	case key.Matches(msg, m.keys.Reload):
		return m.runAction(ui.ActionReload)

	case key.Matches(msg, m.keys.Clear):
		return m.runAction(ui.ActionClear)

	case key.Matches(msg, m.keys.Leader):
		m.leaderSeq++
		seq := m.leaderSeq
		m.leaderPanel.Show()
		m = m.setMode(ModeLeader)
		return m, tea.Tick(leaderTimeout, func(time.Time) tea.Msg {
			return leaderTimeoutMsg{seq: seq}
		})

	case key.Matches(msg, m.keys.CommandMode):
		m = m.setMode(ModeCommand)
		cmd := m.commandBar.Open()
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.HistoryToggle):
		m.historyPanel.Toggle()
		m.layout()
		m.showFrame()

	case key.Matches(msg, m.keys.HistoryFocus):
		if !m.historyPanel.IsVisible() {
			m.historyPanel.Toggle()
			m.layout()
			m.showFrame()
		}
		m.historyPanel.Focus()
		m = m.setMode(ModeHistory)

	default:
		return m, nil
	}

	m.sync()
	return m, nil
}

// handleLeaderMode dismisses the palette and runs the pressed key as a
// normal-mode key.
func (m Model) handleLeaderMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m = m.leaveMode()
	if msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Leader) {
		m.sync()
		return m, nil
	}
	return m.handleNormalMode(msg)
}

// handleHistoryMode processes keys when the history panel is focused.
func (m Model) handleHistoryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ScrollDown):
		m.historyPanel.CursorDown()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.historyPanel.CursorUp()
		return m, nil

	case msg.Type == tea.KeyEnter:
		item, ok := m.historyPanel.Selected()
		m = m.leaveMode()
		if !ok {
			m.sync()
			return m, nil
		}
		m.ctrl.OpenListed(item.Index)
		return m.after()

	case key.Matches(msg, m.keys.Clear):
		m.ctrl.ClearHistory()
		return m.after()

	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keys.HistoryFocus):
		m = m.leaveMode()
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

// handleInsertMode processes keys when the URL bar is focused.
func (m Model) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m = m.leaveMode()
		m.urlBar.SetValue(m.ctrl.Input())
		m.sync()
		return m, nil

	case tea.KeyEnter:
		value := m.urlBar.Value()
		m = m.leaveMode()
		m.ctrl.SetInput(value)
		m.ctrl.Submit()
		return m.after()
	}

	ub, cmd := m.urlBar.Update(msg)
	m.urlBar = *ub
	return m, cmd
}

// handleCommandMode processes keys while the command bar is open.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m = m.leaveMode()
		m.sync()
		return m, nil

	case tea.KeyEnter:
		line := m.commandBar.Submit()
		m = m.leaveMode()
		return m.executeCommand(line)
	}

	cb, cmd := m.commandBar.Update(msg)
	m.commandBar = *cb
	return m, cmd
}

// executeCommand handles :commands.
func (m Model) executeCommand(line string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		m.sync()
		return m, nil
	}
	m.logger.Debug("command", zap.String("name", parts[0]))

	switch parts[0] {
	case "q", "quit":
		return m, tea.Quit
	case "o", "open":
		if len(parts) < 2 {
			m.notice = "Usage: :open <address>"
			break
		}
		m.ctrl.Navigate(strings.Join(parts[1:], " "), true)
		return m.after()
	case "b", "back":
		return m.runAction(ui.ActionBack)
	case "f", "forward":
		return m.runAction(ui.ActionForward)
	case "home":
		return m.runAction(ui.ActionHome)
	case "r", "reload":
		return m.runAction(ui.ActionReload)
	case "clear":
		return m.runAction(ui.ActionClear)
	case "history":
		m.historyPanel.Toggle()
		m.layout()
		m.showFrame()
	case "theme":
		if len(parts) < 2 {
			m.notice = fmt.Sprintf("Current: %s | Available: %s", theme.Current.Name, strings.Join(theme.List(), ", "))
			break
		}
		if theme.Set(parts[1]) {
			m.notice = fmt.Sprintf("Theme: %s", parts[1])
		} else {
			m.notice = fmt.Sprintf("Unknown theme: %s (available: %s)", parts[1], strings.Join(theme.List(), ", "))
		}
	default:
		m.notice = fmt.Sprintf("Unknown command: %s", parts[0])
	}

	m.sync()
	return m, nil
}
