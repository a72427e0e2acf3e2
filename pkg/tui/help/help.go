// Package help renders the key binding reference in a scrollable frame.
package help

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/pokebox/pkg/tui/overlay"
)

//go:embed keys.txt
var keys string

// Model shows the key bindings inside a bordered viewport.
type Model struct {
	viewport viewport.Model
	width    int
	height   int

	frame lipgloss.Style
}

// New constructs a help overlay sized to the provided bounds.
func New(width, height int) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	m := &Model{
		viewport: vp,
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
	m.viewport.SetContent(strings.TrimRight(keys, "\n"))
	m.SetSize(width, height)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update scrolls the viewport; esc, q and ? close the help.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "esc", "q", "?":
			return m, func() tea.Msg { return overlay.ClosedMsg{} }
		}
	}
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the bindings inside a rounded frame.
func (m *Model) View() string {
	return m.frame.Width(m.width).Height(m.height).Render(m.viewport.View())
}

// SetSize fits the frame to the lines it shows, within the bounds.
func (m *Model) SetSize(width, height int) {
	lines := strings.Count(keys, "\n") + 1
	width = min(max(width, 32), 64)
	height = min(max(height-2, 8), lines+m.frame.GetVerticalFrameSize())

	m.width, m.height = width, height
	m.viewport.SetWidth(max(width-m.frame.GetHorizontalFrameSize(), 1))
	m.viewport.SetHeight(max(height-m.frame.GetVerticalFrameSize(), 1))
}
