package organizer

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/pokebox/pkg/tui/card"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case loadedMsg:
		m.applyLoaded(msg)
	case relocatedMsg:
		return m, m.applyRelocated(msg)
	case tea.KeyPressMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "tab":
		m.setFocus(m.focus.Other())
	case "h", "left":
		m.setFocus(Left)
	case "l", "right":
		m.setFocus(Right)
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "e":
		return m.CycleEdition(m.focus, 1)
	case "E", "shift+e":
		return m.CycleEdition(m.focus, -1)
	case "b":
		return m.CycleBox(m.focus, 1)
	case "B", "shift+b":
		return m.CycleBox(m.focus, -1)
	case " ", "space", "m":
		if e, ok := m.Selected(m.focus); ok {
			m.DragStart(m.focus, e)
			m.DragOver(m.focus)
		}
	case "enter":
		if m.drag != nil {
			return m.Drop(m.focus)
		}
		return m.open()
	case "o":
		return m.open()
	case "esc":
		if m.drag != nil {
			m.CancelDrag()
			return nil
		}
		return m.Back()
	case "r":
		m.err = nil
		return m.Reload()
	case "q":
		return m.Back()
	}
	return nil
}

func (m *Model) open() tea.Cmd {
	e, ok := m.Selected(m.focus)
	if !ok {
		return nil
	}
	return card.Click(e)
}
