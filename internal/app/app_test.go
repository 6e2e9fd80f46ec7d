package app

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/navframe/internal/nav"
	"github.com/vidyasagar/navframe/internal/surface"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<html><head><title>Page %s</title></head><body><article>
<h1>Page %s</h1>
<p>This is the body of the page served at %s. It has a few sentences so the
extractor keeps it, and the renderer has something to wrap.</p>
</article></body></html>`, r.URL.Path, r.URL.Path, r.URL.Path)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// deliver runs a load command and feeds its result back into the model.
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	loaded, ok := cmd().(surface.LoadedMsg)
	require.True(t, ok)
	m, _ = update(t, m, loaded)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func startModel(t *testing.T) (Model, *httptest.Server) {
	t.Helper()
	srv := newServer(t)
	frame, err := surface.NewFrame(surface.Options{
		BlockedHosts: []string{"blocked.test"},
		CacheSize:    8,
		Timeout:      5 * time.Second,
	}, nil)
	require.NoError(t, err)
	ctrl := nav.NewController(nav.Config{Home: srv.URL + "/home", Capacity: nav.DefaultCapacity}, frame, nil)

	m := New(ctrl, frame, nil)
	cmd := m.Init()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = deliver(t, m, cmd)
	require.Equal(t, nav.StatusLoaded, ctrl.Status())
	return m, srv
}

func visit(t *testing.T, m Model, addr string) Model {
	t.Helper()
	m.ctrl.Navigate(addr, true)
	return deliver(t, m, m.frame.TakeCmd())
}

func TestStartLoadsHome(t *testing.T) {
	m, srv := startModel(t)

	assert.Equal(t, []string{srv.URL + "/home"}, m.ctrl.History().Entries())
	assert.Equal(t, srv.URL+"/home", m.urlBar.Value())
	require.NotNil(t, m.frame.Page())
	assert.Contains(t, m.View(), "History (1)")
}

func TestToolbarClickGoesBack(t *testing.T) {
	m, srv := startModel(t)
	m = visit(t, m, srv.URL+"/a")

	m, cmd := update(t, m, click(0, 0))
	assert.Equal(t, nav.StatusLoading, m.ctrl.Status())
	m = deliver(t, m, cmd)

	assert.Equal(t, 0, m.ctrl.History().Cursor())
	assert.Equal(t, 2, m.ctrl.History().Len())
	assert.Equal(t, srv.URL+"/home", m.urlBar.Value())
	assert.Equal(t, nav.StatusLoaded, m.ctrl.Status())
}

func TestToolbarDisabledBackIgnored(t *testing.T) {
	m, _ := startModel(t)

	m, cmd := update(t, m, click(0, 0))
	assert.Nil(t, cmd)
	assert.Equal(t, nav.StatusLoaded, m.ctrl.Status())
}

func TestBackForwardKeys(t *testing.T) {
	m, srv := startModel(t)
	m = visit(t, m, srv.URL+"/a")
	m = visit(t, m, srv.URL+"/b")

	m, cmd := update(t, m, runes("H"))
	m = deliver(t, m, cmd)
	m, cmd = update(t, m, runes("H"))
	m = deliver(t, m, cmd)
	assert.Equal(t, 0, m.ctrl.History().Cursor())

	m, cmd = update(t, m, runes("L"))
	m = deliver(t, m, cmd)
	assert.Equal(t, 1, m.ctrl.History().Cursor())
	assert.Equal(t, srv.URL+"/a", m.urlBar.Value())
	assert.Equal(t, 3, m.ctrl.History().Len())
}

func TestURLBarRejectsInvalidInput(t *testing.T) {
	m, _ := startModel(t)

	m, _ = update(t, m, runes("o"))
	require.Equal(t, ModeInsert, m.mode)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m, _ = update(t, m, runes("bad address"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, nav.StatusInvalid, m.ctrl.Status())
	assert.Equal(t, 1, m.ctrl.History().Len())
}

func TestURLBarNormalizesAndLoads(t *testing.T) {
	m, srv := startModel(t)

	m, _ = update(t, m, runes("o"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m, _ = update(t, m, runes(srv.URL+"/typed"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliver(t, m, cmd)

	assert.Equal(t, srv.URL+"/typed", m.ctrl.History().Current())
	assert.Equal(t, nav.StatusLoaded, m.ctrl.Status())
}

func TestEscapeRestoresAddress(t *testing.T) {
	m, srv := startModel(t)

	m, _ = update(t, m, runes("o"))
	m, _ = update(t, m, runes("/junk"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, srv.URL+"/home", m.urlBar.Value())
}

func TestBlockedHostLeavesHistory(t *testing.T) {
	m, _ := startModel(t)

	m, _ = update(t, m, runes(":"))
	require.Equal(t, ModeCommand, m.mode)
	m, _ = update(t, m, runes("open blocked.test"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, nav.StatusLoadFailed, m.ctrl.Status())
	assert.Equal(t, 1, m.ctrl.History().Len())
	assert.Equal(t, "https://blocked.test", m.ctrl.Input())
}

func TestHistoryClickAppendsVisit(t *testing.T) {
	m, srv := startModel(t)
	m = visit(t, m, srv.URL+"/a")
	m = visit(t, m, srv.URL+"/b")

	// Listing is newest first: b, a, home. Each entry takes two rows
	// below the two header rows.
	y := bodyTop + 2 + 2*2
	m, cmd := update(t, m, click(1, y))
	m = deliver(t, m, cmd)

	assert.Equal(t, []string{srv.URL + "/home", srv.URL + "/a", srv.URL + "/b", srv.URL + "/home"},
		m.ctrl.History().Entries())
	assert.Equal(t, 3, m.ctrl.History().Cursor())
}

func TestHistoryModeEnterOpensSelection(t *testing.T) {
	m, srv := startModel(t)
	m = visit(t, m, srv.URL+"/a")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	require.Equal(t, ModeHistory, m.mode)
	m, _ = update(t, m, runes("j"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliver(t, m, cmd)

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, srv.URL+"/home", m.ctrl.History().Current())
	assert.Equal(t, 3, m.ctrl.History().Len())
}

func TestClearHistoryKey(t *testing.T) {
	m, srv := startModel(t)
	m = visit(t, m, srv.URL+"/a")

	m, cmd := update(t, m, runes("X"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.ctrl.History().Len())
	assert.Equal(t, nav.StatusCleared, m.ctrl.Status())
	assert.Contains(t, m.View(), "History (0)")
}

func TestReloadKey(t *testing.T) {
	m, _ := startModel(t)

	m, cmd := update(t, m, runes("r"))
	assert.Equal(t, nav.StatusReloading, m.ctrl.Status())
	m = deliver(t, m, cmd)
	assert.Equal(t, nav.StatusLoaded, m.ctrl.Status())
	assert.Equal(t, 1, m.ctrl.History().Len())
}

func TestStaleLoadIsDropped(t *testing.T) {
	m, srv := startModel(t)

	m.ctrl.Navigate(srv.URL+"/slow", true)
	stale := m.frame.TakeCmd()
	m, cmd := update(t, m, runes("h"))

	m = deliver(t, m, stale)
	assert.Equal(t, nav.StatusLoading, m.ctrl.Status())

	m = deliver(t, m, cmd)
	assert.Equal(t, nav.StatusLoaded, m.ctrl.Status())
	assert.Equal(t, srv.URL+"/home", m.ctrl.History().Current())
}

func TestLoadFailureShowsError(t *testing.T) {
	m, srv := startModel(t)
	addr := srv.URL + "/gone"
	srv.Close()

	m.ctrl.Navigate(addr, true)
	m = deliver(t, m, m.frame.TakeCmd())

	assert.Equal(t, nav.StatusLoadFailed, m.ctrl.Status())
	assert.Error(t, m.frame.Err())
	assert.Contains(t, m.View(), "Could not load this page")
}

func TestThemeCommand(t *testing.T) {
	m, _ := startModel(t)

	m, _ = update(t, m, runes(":"))
	m, _ = update(t, m, runes("theme nope"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.notice, "Unknown theme")

	m, _ = update(t, m, runes("j"))
	assert.Empty(t, m.notice)
}

func TestQuit(t *testing.T) {
	m, _ := startModel(t)

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "NORMAL", ModeNormal.String())
	assert.Equal(t, "INSERT", ModeInsert.String())
	assert.Equal(t, "COMMAND", ModeCommand.String())
	assert.Equal(t, "HISTORY", ModeHistory.String())
	assert.Equal(t, "LEADER", ModeLeader.String())
}

func TestToolbarClickWhileEditingShowsNewAddress(t *testing.T) {
	m, srv := startModel(t)
	m = visit(t, m, srv.URL+"/a")

	m, _ = update(t, m, runes("o"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m, _ = update(t, m, runes("typed.example"))
	m, cmd := update(t, m, click(0, 0))

	assert.Equal(t, ModeNormal, m.mode)
	assert.False(t, m.urlBar.IsActive())
	assert.Equal(t, srv.URL+"/home", m.urlBar.Value())
	m = deliver(t, m, cmd)

	// The forward entry survives: nothing was submitted.
	assert.Equal(t, []string{srv.URL + "/home", srv.URL + "/a"}, m.ctrl.History().Entries())
	assert.Equal(t, 0, m.ctrl.History().Cursor())
}

func TestDisabledToolbarClickKeepsEditing(t *testing.T) {
	m, _ := startModel(t)

	m, _ = update(t, m, runes("o"))
	m, _ = update(t, m, runes("/more"))
	m, cmd := update(t, m, click(0, 0))

	assert.Nil(t, cmd)
	assert.Equal(t, ModeInsert, m.mode)
	assert.True(t, m.urlBar.IsActive())
}

func TestLeaderPaletteRunsShortcut(t *testing.T) {
	m, srv := startModel(t)
	m = visit(t, m, srv.URL+"/a")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.NotNil(t, cmd)
	assert.Equal(t, ModeLeader, m.mode)
	assert.Contains(t, m.View(), "go back")

	m, cmd = update(t, m, runes("H"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.False(t, m.leaderPanel.IsVisible())
	m = deliver(t, m, cmd)
	assert.Equal(t, 0, m.ctrl.History().Cursor())
}

func TestLeaderPaletteDismiss(t *testing.T) {
	m, _ := startModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)
	assert.False(t, m.leaderPanel.IsVisible())
}

func TestLeaderPaletteTimeout(t *testing.T) {
	m, _ := startModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	first := m.leaderSeq
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	// A timeout from the earlier palette leaves the current one open.
	m, _ = update(t, m, leaderTimeoutMsg{seq: first})
	assert.Equal(t, ModeLeader, m.mode)

	m, _ = update(t, m, leaderTimeoutMsg{seq: m.leaderSeq})
	assert.Equal(t, ModeNormal, m.mode)
	assert.False(t, m.leaderPanel.IsVisible())
}
