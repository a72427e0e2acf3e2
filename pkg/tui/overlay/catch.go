package overlay

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/tui/card"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

var (
	errNoActions = errors.New("overlay: no service configured")
	errNoEntry   = errors.New("overlay: the API returned no entry")
)

// CatchForm adds a species to the collection.
type CatchForm struct {
	card.Model

	opts    Options
	species pokemon.Species
	form    form
	busy    bool
	width   int
}

// NewCatchForm opens the form for sp. edition and box preselect the
// destination when non-empty; the level starts at 1.
func NewCatchForm(sp pokemon.Species, edition, box string, opts Options) *CatchForm {
	ref := opts.reference()
	return &CatchForm{
		Model:   card.ForSpecies(sp, opts.Sprites, opts.Theme),
		opts:    opts,
		species: sp,
		form:    newForm("", pokemon.MinLevel, ref.EditionDisplays(), ref.BoxDisplays(), edition, box),
	}
}

// Prefill seeds the nickname and, when positive, the level.
func (c *CatchForm) Prefill(nickname string, level int) {
	c.form.nickname.SetValue(nickname)
	if level > 0 {
		c.form.level.SetValue(strconv.Itoa(level))
	}
}

// Init implements tea.Model.
func (c *CatchForm) Init() tea.Cmd {
	return c.form.focusInputs()
}

// Err returns the last validation or API error.
func (c *CatchForm) Err() error { return c.form.err }

// Busy reports whether a request is in flight.
func (c *CatchForm) Busy() bool { return c.busy }

// Value returns the form as it would be submitted.
func (c *CatchForm) Value() app.CatchForm {
	level, _ := c.form.parseLevel()
	return app.CatchForm{
		PokedexID: c.species.PokedexID,
		Nickname:  c.form.nickname.Value(),
		Level:     level,
		Edition:   c.form.edition.value(),
		Box:       c.form.box.value(),
	}
}

// SetSize records the available width.
func (c *CatchForm) SetSize(width, _ int) {
	c.width = width
	c.form.setWidth(width / 3)
}

// Update implements tea.Model.
func (c *CatchForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.SetSize(msg.Width, msg.Height)
		return c, nil
	case doneMsg:
		c.busy = false
		msg = msg.checked()
		if msg.err != nil {
			c.form.setErr(msg.err)
			return c, nil
		}
		saved := SavedMsg{Entry: *msg.entry, Created: true}
		return c, func() tea.Msg { return saved }
	case tea.KeyPressMsg:
		if c.busy {
			return c, nil
		}
		switch msg.String() {
		case "esc":
			return c, closed
		case "enter":
			return c, c.submit()
		}
		cmd, _ := c.form.handleKey(msg)
		return c, cmd
	}
	var cmd tea.Cmd
	c.form.nickname, cmd = c.form.nickname.Update(msg)
	return c, cmd
}

func (c *CatchForm) submit() tea.Cmd {
	if _, err := c.form.parseLevel(); err != nil {
		c.form.setErr(err)
		return nil
	}
	f := c.Value()
	if err := f.Validate(); err != nil {
		c.form.setErr(err)
		return nil
	}
	if c.opts.Actions == nil {
		c.form.setErr(errNoActions)
		return nil
	}
	c.form.setErr(nil)
	c.busy = true
	actions, ctx := c.opts.Actions, c.opts.ctx()
	return func() tea.Msg {
		e, err := actions.Catch(ctx, f)
		return doneMsg{op: opCatch, entry: e, err: err}
	}
}

// View implements tea.Model.
func (c *CatchForm) View() string {
	th := c.opts.Theme
	width := c.width
	if width <= 0 {
		width = 80
	}
	inner := min(width-8, 60)

	lines := []string{
		th.Modal.Title.Render("Catch " + c.Title()),
		c.Render(inner, false, false),
		"",
	}
	lines = append(lines, c.form.rows(th, !c.busy)...)
	lines = append(lines, "", statusLine(th, c.form.err, c.busy, "enter catch · tab next field · ←/→ choose · esc cancel"))
	return th.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func statusLine(th theme.Theme, err error, busy bool, help string) string {
	switch {
	case busy:
		return th.Footer.Status.Render("saving…")
	case err != nil:
		return th.Modal.Error.Render(strings.TrimSpace(err.Error()))
	}
	return th.Footer.Help.Render(help)
}
