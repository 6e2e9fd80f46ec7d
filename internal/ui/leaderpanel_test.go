package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaderPanelView(t *testing.T) {
	lp := NewLeaderPanel([]LeaderGroup{
		{Name: "Navigate", Bindings: []LeaderBinding{{Key: "H", Desc: "go back"}, {Key: "L", Desc: "go forward"}}},
		{Name: "History", Bindings: []LeaderBinding{{Key: "X", Desc: "clear history"}}},
	})
	lp.SetSize(120, 40)

	assert.Equal(t, "", lp.View())

	lp.Show()
	out := lp.View()
	assert.Contains(t, out, "Navigate")
	assert.Contains(t, out, "go forward")
	assert.Contains(t, out, "clear history")

	lp.Hide()
	assert.False(t, lp.IsVisible())
	assert.Len(t, lp.Groups(), 2)
}
