package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navframe/internal/theme"
)

// CommandBar reads ":" commands, with up/down recall of earlier ones.
type CommandBar struct {
	input     textinput.Model
	active    bool
	width     int
	recall    []string
	recallPos int
}

// NewCommandBar creates a new command bar.
func NewCommandBar() CommandBar {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ":"
	ti.Placeholder = "open <address> | back | forward | home | reload | clear | theme <name> | quit"

	return CommandBar{
		input:     ti,
		recallPos: -1,
	}
}

// SetWidth sets the command bar width.
func (c *CommandBar) SetWidth(w int) {
	c.width = w
	c.input.Width = w - 4
}

// Open activates the command bar.
func (c *CommandBar) Open() tea.Cmd {
	c.active = true
	c.input.Reset()
	c.recallPos = -1
	return c.input.Focus()
}

// Close deactivates the command bar.
func (c *CommandBar) Close() {
	c.active = false
	c.input.Blur()
	c.input.Reset()
}

// IsActive reports whether the command bar is open.
func (c *CommandBar) IsActive() bool {
	return c.active
}

// SetValue pre-fills the input.
func (c *CommandBar) SetValue(val string) {
	c.input.SetValue(val)
	c.input.SetCursor(len(val))
}

// Submit closes the bar and returns the trimmed command.
func (c *CommandBar) Submit() string {
	val := strings.TrimSpace(c.input.Value())
	if val != "" {
		c.recall = append(c.recall, val)
	}
	c.Close()
	return val
}

// Update processes messages for the command bar.
func (c *CommandBar) Update(msg tea.Msg) (*CommandBar, tea.Cmd) {
	if !c.active {
		return c, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyUp:
			if len(c.recall) > 0 {
				if c.recallPos < len(c.recall)-1 {
					c.recallPos++
				}
				c.SetValue(c.recall[len(c.recall)-1-c.recallPos])
			}
			return c, nil
		case tea.KeyDown:
			switch {
			case c.recallPos > 0:
				c.recallPos--
				c.SetValue(c.recall[len(c.recall)-1-c.recallPos])
			case c.recallPos == 0:
				c.recallPos = -1
				c.input.Reset()
			}
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View renders the command bar.
func (c *CommandBar) View() string {
	if !c.active {
		return ""
	}

	t := theme.Current
	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(max(c.width, 1)).
		Render(c.input.View())
}
