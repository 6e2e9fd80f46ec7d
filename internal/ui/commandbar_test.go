package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeCommand(c *CommandBar, s string) string {
	c.Open()
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return c.Submit()
}

func TestCommandBarSubmitTrims(t *testing.T) {
	c := NewCommandBar()
	c.SetWidth(80)

	assert.Equal(t, "open example.com", typeCommand(&c, "  open example.com "))
	assert.False(t, c.IsActive())
}

func TestCommandBarRecall(t *testing.T) {
	c := NewCommandBar()
	c.SetWidth(80)
	typeCommand(&c, "back")
	typeCommand(&c, "reload")

	c.Open()
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "reload", c.input.Value())
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "back", c.input.Value())
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "back", c.input.Value())

	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "reload", c.input.Value())
	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "", c.input.Value())
}

func TestCommandBarIgnoresInputWhenClosed(t *testing.T) {
	c := NewCommandBar()
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "", c.input.Value())
	assert.Equal(t, "", c.View())
}
