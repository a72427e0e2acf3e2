// Package teaui hosts the organizer page: it loads the reference data, mounts
// the dual-panel organizer and opens the detail overlay over it.
package teaui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/client"
	"tableflip.dev/pokebox/pkg/sprite"
	"tableflip.dev/pokebox/pkg/tui/card"
	"tableflip.dev/pokebox/pkg/tui/help"
	"tableflip.dev/pokebox/pkg/tui/organizer"
	"tableflip.dev/pokebox/pkg/tui/overlay"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

// Options configure the page.
type Options struct {
	Service *app.Service
	// Reference skips the initial load when set.
	Reference         *app.Reference
	PreflightCapacity bool
	Sprites           sprite.Resolver
	Theme             theme.Theme
	Logger            *zap.Logger
	Context           context.Context
}

// Pane is what the page can show on top of the organizer.
type Pane interface {
	tea.Model
	View() string
	SetSize(width, height int)
}

// Model is the root Bubble Tea model.
type Model struct {
	opts Options
	log  *zap.Logger

	ref       *app.Reference
	organizer *organizer.Model
	pane      Pane
	err       error
	status    string

	width  int
	height int
}

type referenceMsg struct {
	ref *app.Reference
	err error
}

// New returns the page model.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return &Model{opts: opts, log: opts.Logger.Named("page"), ref: opts.Reference}
}

// Run starts the page in the alternate screen and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	opts.Context = ctx
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Organizer returns the mounted organizer, or nil before the reference data
// arrived.
func (m *Model) Organizer() *organizer.Model { return m.organizer }

// Pane returns the open overlay, if any.
func (m *Model) Pane() Pane { return m.pane }

// Err returns the reference load error.
func (m *Model) Err() error { return m.err }

// Status returns the last confirmation shown in the footer.
func (m *Model) Status() string { return m.status }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.ref != nil {
		return m.mount(m.ref)
	}
	return m.loadReference()
}

func (m *Model) loadReference() tea.Cmd {
	svc, ctx := m.opts.Service, m.opts.Context
	return func() tea.Msg {
		if svc == nil {
			return referenceMsg{err: app.ErrNoClient}
		}
		ref, err := svc.LoadReference(ctx)
		return referenceMsg{ref: ref, err: err}
	}
}

func (m *Model) mount(ref *app.Reference) tea.Cmd {
	m.ref = ref
	m.err = nil
	var c client.Client
	if m.opts.Service != nil {
		c = m.opts.Service.Client
	}
	m.organizer = organizer.New(organizer.Options{
		Client:            c,
		Editions:          ref.EditionDisplays(),
		Boxes:             ref.BoxDisplays(),
		OnBack:            func() tea.Cmd { return tea.Quit },
		PreflightCapacity: m.opts.PreflightCapacity,
		Logger:            m.opts.Logger,
		Context:           m.opts.Context,
		Sprites:           m.opts.Sprites,
		Theme:             m.opts.Theme,
	})
	m.organizer.SetSize(m.width, m.bodyHeight())
	return m.organizer.Init()
}

func (m *Model) open(msg card.ClickMsg) tea.Cmd {
	var actions overlay.Actions
	if m.opts.Service != nil {
		actions = m.opts.Service
	}
	ed := overlay.NewEditor(msg.Entry, overlay.Options{
		Actions:   actions,
		Reference: m.ref,
		Sprites:   m.opts.Sprites,
		Theme:     m.opts.Theme,
		Context:   m.opts.Context,
	})
	ed.SetSize(m.width, m.height)
	m.pane = ed
	m.status = ""
	return ed.Init()
}

// close drops the overlay and refreshes both panels.
func (m *Model) close(status string) tea.Cmd {
	m.pane = nil
	m.status = status
	if m.organizer == nil {
		return nil
	}
	return m.organizer.Reload()
}

func (m *Model) bodyHeight() int {
	return max(0, m.height-1)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.organizer != nil {
			m.organizer.SetSize(m.width, m.bodyHeight())
		}
		if m.pane != nil {
			m.pane.SetSize(m.width, m.height)
		}
		return m, nil
	case referenceMsg:
		if msg.err != nil {
			m.err = msg.err
			m.log.Warn("reference load failed", zap.Error(msg.err))
			return m, nil
		}
		return m, m.mount(msg.ref)
	case card.ClickMsg:
		return m, m.open(msg)
	case overlay.SavedMsg:
		return m, m.close(fmt.Sprintf("saved %s", msg.Entry.DisplayName()))
	case overlay.DeletedMsg:
		return m, m.close(fmt.Sprintf("released #%d", msg.ID))
	case overlay.ClosedMsg:
		return m, m.close("")
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.pane != nil:
			_, cmd := m.pane.Update(msg)
			return m, cmd
		case m.organizer != nil && msg.String() == "?":
			m.pane = help.New(m.width, m.height)
			return m, m.pane.Init()
		case m.organizer != nil:
			_, cmd := m.organizer.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "r":
			if m.err != nil {
				m.err = nil
				return m, m.loadReference()
			}
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	// Results of in-flight requests go to whoever issued them.
	var cmds []tea.Cmd
	if m.organizer != nil {
		_, cmd := m.organizer.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.pane != nil {
		_, cmd := m.pane.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	th := m.opts.Theme
	switch {
	case m.err != nil:
		return lipgloss.JoinVertical(lipgloss.Left,
			th.Footer.Error.Render("error: "+m.err.Error()),
			th.Footer.Help.Render("r retry · q quit"))
	case m.organizer == nil:
		return th.Footer.Status.Render("loading…")
	case m.pane != nil:
		if m.width == 0 || m.height == 0 {
			return m.pane.View()
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.pane.View())
	}
	body := m.organizer.View()
	if m.status == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, th.Footer.Status.Render(m.status))
}
