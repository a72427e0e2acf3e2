package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/pokebox/pkg/tui/overlay"
)

// Standalone runs a single overlay as its own program, for the CLI commands
// that prompt for input. It quits on the overlay's first result.
type Standalone struct {
	pane   Pane
	result tea.Msg
}

// NewStandalone wraps p.
func NewStandalone(p Pane) *Standalone {
	return &Standalone{pane: p}
}

// Result is the message that ended the program: overlay.SavedMsg,
// overlay.DeletedMsg or overlay.ClosedMsg.
func (s *Standalone) Result() tea.Msg { return s.result }

// Init implements tea.Model.
func (s *Standalone) Init() tea.Cmd { return s.pane.Init() }

// Update implements tea.Model.
func (s *Standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overlay.SavedMsg, overlay.DeletedMsg, overlay.ClosedMsg:
		s.result = msg
		return s, tea.Quit
	case tea.WindowSizeMsg:
		s.pane.SetSize(msg.Width, msg.Height)
		return s, nil
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			s.result = overlay.ClosedMsg{}
			return s, tea.Quit
		}
	}
	_, cmd := s.pane.Update(msg)
	return s, cmd
}

// View implements tea.Model.
func (s *Standalone) View() string {
	if s.result != nil {
		return ""
	}
	return s.pane.View()
}

// RunOverlay shows p inline until it saves, deletes or closes, and returns
// that message.
func RunOverlay(ctx context.Context, p Pane) (tea.Msg, error) {
	s := NewStandalone(p)
	if _, err := tea.NewProgram(s, tea.WithContext(ctx)).Run(); err != nil {
		return nil, err
	}
	if s.result == nil {
		return overlay.ClosedMsg{}, nil
	}
	return s.result, nil
}
