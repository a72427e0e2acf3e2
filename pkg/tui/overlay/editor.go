package overlay

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/mapper"
	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/tui/card"
)

// Mode is what the Editor is currently showing.
type Mode int

const (
	ModeView Mode = iota
	ModeEdit
	ModeEvolve
	ModeConfirmDelete
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeEvolve:
		return "evolve"
	case ModeConfirmDelete:
		return "confirm-delete"
	}
	return "view"
}

// Editor shows an owned entry and lets the user edit, evolve or release it.
type Editor struct {
	card.Model

	opts    Options
	ref     *app.Reference
	entry   pokemon.OwnedEntry
	mode    Mode
	form    form
	targets []pokemon.Species
	target  int
	err     error
	busy    bool
	width   int
}

// NewEditor opens e in view mode.
func NewEditor(e pokemon.OwnedEntry, opts Options) *Editor {
	ref := opts.reference()
	return &Editor{
		Model:   card.ForEntry(e, opts.Sprites, opts.Theme),
		opts:    opts,
		ref:     ref,
		entry:   e,
		targets: ref.EvolutionTargets(e.PokedexID),
	}
}

// Init implements tea.Model.
func (ed *Editor) Init() tea.Cmd { return nil }

// Mode returns the current mode.
func (ed *Editor) Mode() Mode { return ed.mode }

// Current returns the entry as last saved.
func (ed *Editor) Current() pokemon.OwnedEntry { return ed.entry }

// Targets returns the species the entry may evolve into.
func (ed *Editor) Targets() []pokemon.Species { return ed.targets }

// Err returns the last validation or API error.
func (ed *Editor) Err() error {
	if ed.mode == ModeEdit {
		return ed.form.err
	}
	return ed.err
}

// Busy reports whether a request is in flight.
func (ed *Editor) Busy() bool { return ed.busy }

// Value returns the edit form as it would be submitted.
func (ed *Editor) Value() app.UpdateForm {
	level, _ := ed.form.parseLevel()
	return app.UpdateForm{
		Nickname: ed.form.nickname.Value(),
		Level:    level,
		Edition:  ed.form.edition.value(),
		Box:      ed.form.box.value(),
	}
}

// SetSize records the available width.
func (ed *Editor) SetSize(width, _ int) {
	ed.width = width
	ed.form.setWidth(width / 3)
}

// Edit switches to edit mode with the form seeded from the entry.
func (ed *Editor) Edit() tea.Cmd {
	cur := app.FormFor(ed.entry)
	ed.form = newForm(cur.Nickname, cur.Level, ed.ref.EditionDisplays(), ed.ref.BoxDisplays(), cur.Edition, cur.Box)
	ed.form.setWidth(ed.width / 3)
	ed.mode = ModeEdit
	ed.err = nil
	return ed.form.focusInputs()
}

// Evolve switches to the target list. It fails when the rules allow no
// evolution for this species.
func (ed *Editor) Evolve() {
	if len(ed.targets) == 0 {
		ed.err = fmt.Errorf("%s has no evolution", ed.DisplayName())
		return
	}
	ed.mode = ModeEvolve
	ed.target = 0
	ed.err = nil
}

// DisplayName is the entry's nickname or species name.
func (ed *Editor) DisplayName() string { return ed.entry.DisplayName() }

// Update implements tea.Model.
func (ed *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ed.SetSize(msg.Width, msg.Height)
		return ed, nil
	case doneMsg:
		return ed, ed.applyDone(msg)
	case tea.KeyPressMsg:
		if ed.busy {
			return ed, nil
		}
		return ed, ed.handleKey(msg)
	}
	if ed.mode != ModeEdit {
		return ed, nil
	}
	var cmd tea.Cmd
	ed.form.nickname, cmd = ed.form.nickname.Update(msg)
	return ed, cmd
}

func (ed *Editor) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch ed.mode {
	case ModeEdit:
		switch key {
		case "esc":
			ed.mode = ModeView
			return nil
		case "enter":
			return ed.save()
		}
		cmd, _ := ed.form.handleKey(msg)
		return cmd
	case ModeEvolve:
		switch key {
		case "esc":
			ed.mode = ModeView
		case "j", "down":
			ed.target = min(ed.target+1, len(ed.targets)-1)
		case "k", "up":
			ed.target = max(ed.target-1, 0)
		case "enter":
			return ed.evolve()
		}
		return nil
	case ModeConfirmDelete:
		switch key {
		case "y", "Y":
			return ed.release()
		case "n", "N", "esc":
			ed.mode = ModeView
		}
		return nil
	}

	switch key {
	case "e", "enter":
		return ed.Edit()
	case "v":
		ed.Evolve()
	case "d", "x":
		ed.mode = ModeConfirmDelete
		ed.err = nil
	case "esc", "q":
		return closed
	}
	return nil
}

func (ed *Editor) save() tea.Cmd {
	if _, err := ed.form.parseLevel(); err != nil {
		ed.form.setErr(err)
		return nil
	}
	f := ed.Value()
	if err := f.Validate(ed.entry); err != nil {
		ed.form.setErr(err)
		return nil
	}
	if ed.opts.Actions == nil {
		ed.form.setErr(errNoActions)
		return nil
	}
	ed.form.setErr(nil)
	ed.busy = true
	actions, ctx, current := ed.opts.Actions, ed.opts.ctx(), ed.entry
	return func() tea.Msg {
		e, err := actions.Update(ctx, current, f)
		return doneMsg{op: opUpdate, entry: e, err: err}
	}
}

func (ed *Editor) evolve() tea.Cmd {
	if ed.target < 0 || ed.target >= len(ed.targets) {
		return nil
	}
	if ed.opts.Actions == nil {
		ed.err = errNoActions
		return nil
	}
	ed.busy = true
	actions, ctx, current := ed.opts.Actions, ed.opts.ctx(), ed.entry
	target, rules := ed.targets[ed.target].PokedexID, ed.ref.Rules
	return func() tea.Msg {
		e, err := actions.Evolve(ctx, current, target, rules)
		return doneMsg{op: opEvolve, entry: e, err: err}
	}
}

func (ed *Editor) release() tea.Cmd {
	if ed.opts.Actions == nil {
		ed.err = errNoActions
		ed.mode = ModeView
		return nil
	}
	ed.busy = true
	actions, ctx, id := ed.opts.Actions, ed.opts.ctx(), ed.entry.ID
	return func() tea.Msg {
		return doneMsg{op: opRelease, id: id, err: actions.Release(ctx, id)}
	}
}

func (ed *Editor) applyDone(msg doneMsg) tea.Cmd {
	ed.busy = false
	msg = msg.checked()
	if msg.err != nil {
		if msg.op == opUpdate {
			ed.form.setErr(msg.err)
		} else {
			ed.err = msg.err
		}
		if msg.op == opRelease {
			ed.mode = ModeView
		}
		return nil
	}
	if msg.op == opRelease {
		deleted := DeletedMsg{ID: msg.id}
		return func() tea.Msg { return deleted }
	}
	ed.entry = *msg.entry
	ed.Model = card.ForEntry(ed.entry, ed.opts.Sprites, ed.opts.Theme)
	ed.targets = ed.ref.EvolutionTargets(ed.entry.PokedexID)
	ed.mode = ModeView
	saved := SavedMsg{Entry: ed.entry}
	return func() tea.Msg { return saved }
}

// View implements tea.Model.
func (ed *Editor) View() string {
	th := ed.opts.Theme
	width := ed.width
	if width <= 0 {
		width = 80
	}
	inner := min(width-8, 60)

	lines := []string{
		th.Modal.Title.Render(ed.entry.Number() + " " + ed.Title()),
		ed.Render(inner, false, false),
		"",
	}
	var help string
	err := ed.err
	switch ed.mode {
	case ModeEdit:
		lines = append(lines, ed.form.rows(th, !ed.busy)...)
		help = "enter save · tab next field · ←/→ choose · esc back"
		err = ed.form.err
	case ModeEvolve:
		lines = append(lines, th.Modal.Label.Render("Evolve into:"))
		for i, sp := range ed.targets {
			row := "  " + sp.Number() + " " + sp.Name
			if i == ed.target {
				row = th.Card.RowSelected.Render("➤ " + sp.Number() + " " + sp.Name)
			}
			lines = append(lines, row)
		}
		help = "j/k choose · enter evolve · esc back"
	case ModeConfirmDelete:
		lines = append(lines, th.Modal.Error.Render(fmt.Sprintf("Release %s? (y/n)", ed.DisplayName())))
		help = "y release · n keep"
	default:
		lines = append(lines,
			th.Modal.Label.Render("Level    ")+fmt.Sprintf(" %d", ed.entry.Level),
			th.Modal.Label.Render("Edition  ")+" "+mapper.DisplayEdition(ed.entry.Edition),
			th.Modal.Label.Render("Box      ")+" "+mapper.DisplayBoxName(ed.entry.BoxName),
		)
		help = "e edit · v evolve · d release · esc close"
	}
	lines = append(lines, "", statusLine(th, err, ed.busy, help))
	return th.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
