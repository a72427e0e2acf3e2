// Package overlay provides the modal views shown over the organizer: a
// CatchForm for adding a species to the collection and an Editor for viewing,
// editing, evolving and releasing an owned entry. Both embed the entry card
// they were opened from and report their outcome as messages.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/sprite"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

// SavedMsg reports a created or updated entry.
type SavedMsg struct {
	Entry   pokemon.OwnedEntry
	Created bool
}

// DeletedMsg reports a released entry.
type DeletedMsg struct {
	ID int
}

// ClosedMsg reports that the overlay was dismissed without changes.
type ClosedMsg struct{}

func closed() tea.Msg { return ClosedMsg{} }

// Actions are the collection operations the overlays perform. *app.Service
// implements it.
type Actions interface {
	Catch(ctx context.Context, f app.CatchForm) (*pokemon.OwnedEntry, error)
	Update(ctx context.Context, current pokemon.OwnedEntry, f app.UpdateForm) (*pokemon.OwnedEntry, error)
	Evolve(ctx context.Context, current pokemon.OwnedEntry, target int, rules pokemon.EvolutionRules) (*pokemon.OwnedEntry, error)
	Release(ctx context.Context, id int) error
}

// Options configure either overlay.
type Options struct {
	Actions   Actions
	Reference *app.Reference
	Sprites   sprite.Resolver
	Theme     theme.Theme
	Context   context.Context
}

func (o Options) ctx() context.Context {
	if o.Context == nil {
		return context.Background()
	}
	return o.Context
}

func (o Options) reference() *app.Reference {
	if o.Reference == nil {
		return app.NewReference(pokemon.DefaultEditions(), pokemon.DefaultBoxes(), nil, nil)
	}
	return o.Reference
}

type op int

const (
	opCatch op = iota
	opUpdate
	opEvolve
	opRelease
)

// doneMsg carries the result of an action back onto the event loop.
type doneMsg struct {
	op    op
	entry *pokemon.OwnedEntry
	id    int
	err   error
}

// checked turns a successful save without an entry into a failure.
func (m doneMsg) checked() doneMsg {
	if m.err == nil && m.op != opRelease && m.entry == nil {
		m.err = errNoEntry
	}
	return m
}

type field int

const (
	fieldNickname field = iota
	fieldLevel
	fieldEdition
	fieldBox
	fieldCount
)

var fieldLabels = [fieldCount]string{"Nickname", "Level", "Edition", "Box"}

// choice is a fixed option list cycled with left and right.
type choice struct {
	options []string
	index   int
}

func newChoice(options []string, current string) choice {
	c := choice{options: append([]string(nil), options...)}
	c.set(current)
	return c
}

func (c *choice) set(v string) {
	if v == "" {
		return
	}
	for i, o := range c.options {
		if o == v {
			c.index = i
			return
		}
	}
	// Values the API no longer lists stay selectable.
	c.options = append([]string{v}, c.options...)
	c.index = 0
}

func (c *choice) step(delta int) {
	n := len(c.options)
	if n == 0 {
		return
	}
	c.index = ((c.index+delta)%n + n) % n
}

func (c choice) value() string {
	if c.index < len(c.options) {
		return c.options[c.index]
	}
	return ""
}

// form holds the four editable fields shared by catching and editing.
type form struct {
	nickname textinput.Model
	level    textinput.Model
	edition  choice
	box      choice
	focus    field
	// errField marks the field a validation error belongs to.
	errField field
	err      error
}

func newForm(nickname string, level int, editions, boxes []string, edition, box string) form {
	nick := textinput.New()
	nick.Prompt = ""
	nick.Placeholder = "optional"
	nick.SetValue(nickname)

	lvl := textinput.New()
	lvl.Prompt = ""
	lvl.CharLimit = 3
	lvl.SetValue(strconv.Itoa(level))

	return form{
		nickname: nick,
		level:    lvl,
		edition:  newChoice(editions, edition),
		box:      newChoice(boxes, box),
		errField: -1,
	}
}

func (f *form) focusInputs() tea.Cmd {
	f.nickname.Blur()
	f.level.Blur()
	switch f.focus {
	case fieldNickname:
		return f.nickname.Focus()
	case fieldLevel:
		return f.level.Focus()
	}
	return nil
}

func (f *form) setWidth(w int) {
	f.nickname.SetWidth(max(12, w))
	f.level.SetWidth(4)
}

// handleKey moves between fields, cycles choices and forwards text to the
// focused input. It reports whether it consumed the key.
func (f *form) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % fieldCount
		return f.focusInputs(), true
	case "shift+tab", "up":
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		return f.focusInputs(), true
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch f.focus {
		case fieldEdition:
			f.edition.step(delta)
			return nil, true
		case fieldBox:
			f.box.step(delta)
			return nil, true
		}
	}
	var cmd tea.Cmd
	switch f.focus {
	case fieldNickname:
		f.nickname, cmd = f.nickname.Update(msg)
	case fieldLevel:
		f.level, cmd = f.level.Update(msg)
	default:
		return nil, false
	}
	return cmd, true
}

// parseLevel reads the level input.
func (f *form) parseLevel() (int, error) {
	return app.ParseLevel(f.level.Value())
}

// setErr stores err and, for validation errors, the field it belongs to.
func (f *form) setErr(err error) {
	f.err = err
	f.errField = -1
	var fe *app.FormError
	if errors.As(err, &fe) {
		switch fe.Field {
		case app.FieldNickname:
			f.errField = fieldNickname
		case app.FieldLevel:
			f.errField = fieldLevel
		case app.FieldEdition:
			f.errField = fieldEdition
		case app.FieldBox:
			f.errField = fieldBox
		}
	}
}

func (f *form) rows(th theme.Theme, active bool) []string {
	values := [fieldCount]string{
		f.nickname.View(),
		f.level.View(),
		"‹ " + f.edition.value() + " ›",
		"‹ " + f.box.value() + " ›",
	}
	rows := make([]string, 0, fieldCount)
	for i := field(0); i < fieldCount; i++ {
		indicator := "  "
		label := th.Modal.Label.Render(fmt.Sprintf("%-9s", fieldLabels[i]))
		if active && i == f.focus {
			indicator = th.Card.RowSelected.Render("➤ ")
			label = th.Card.RowSelected.Render(fmt.Sprintf("%-9s", fieldLabels[i]))
		}
		row := indicator + label + " " + values[i]
		if f.err != nil && i == f.errField {
			row += "  " + th.Modal.Error.Render("!")
		}
		rows = append(rows, row)
	}
	return rows
}
