// Package catch adds a species to the collection, prompting for whatever the
// command line left out.
package catch

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/mapper"
	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/printers"
	"tableflip.dev/pokebox/pkg/sprite"
	teaui "tableflip.dev/pokebox/pkg/tui/app"
	"tableflip.dev/pokebox/pkg/tui/overlay"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

// Prompter shows an overlay and returns the message it ended with.
type Prompter func(ctx context.Context, p teaui.Pane) (tea.Msg, error)

type Catch struct {
	PokedexID int
	Nickname  string
	Level     int
	Edition   string
	Box       string
	// Interactive opens the catch form even when every field is set.
	Interactive bool
	JSON        bool

	Service *app.Service
	Sprites sprite.Resolver
	Theme   theme.Theme
	Out     io.Writer
	// Prompt defaults to teaui.RunOverlay.
	Prompt Prompter
}

func (c *Catch) needsPrompt() bool {
	return c.Interactive || c.Edition == "" || c.Box == ""
}

func (c *Catch) Do(ctx context.Context) error {
	if c.Service == nil {
		return errors.New("can not catch, no service")
	}

	var caught *pokemon.OwnedEntry
	if c.needsPrompt() {
		e, err := c.prompt(ctx)
		if err != nil {
			return err
		}
		if e == nil {
			pp := printers.PrettyPrint{Out: c.Out}
			pp.Note("cancelled, nothing caught")
			return nil
		}
		caught = e
	} else {
		level := c.Level
		if level == 0 {
			level = pokemon.MinLevel
		}
		e, err := c.Service.Catch(ctx, app.CatchForm{
			PokedexID: c.PokedexID,
			Nickname:  c.Nickname,
			Level:     level,
			Edition:   c.Edition,
			Box:       c.Box,
		})
		if err != nil {
			return err
		}
		caught = e
	}

	if c.JSON {
		return printers.JSON(c.Out, caught)
	}
	pp := printers.PrettyPrint{Out: c.Out}
	pp.Done("caught %s %s (id %d) into %s · %s", caught.Number(), caught.DisplayName(), caught.ID,
		mapper.DisplayEdition(caught.Edition), mapper.DisplayBoxName(caught.BoxName))
	return nil
}

func (c *Catch) prompt(ctx context.Context) (*pokemon.OwnedEntry, error) {
	ref, err := c.Service.LoadReference(ctx)
	if err != nil {
		return nil, err
	}
	sp, ok := ref.Lookup(c.PokedexID)
	if !ok {
		return nil, fmt.Errorf("unknown species %s", pokemon.Number(c.PokedexID))
	}

	form := overlay.NewCatchForm(sp, mapper.DisplayEdition(c.Edition), mapper.DisplayBoxName(c.Box), overlay.Options{
		Actions:   c.Service,
		Reference: ref,
		Sprites:   c.Sprites,
		Theme:     c.Theme,
		Context:   ctx,
	})
	form.Prefill(c.Nickname, c.Level)

	run := c.Prompt
	if run == nil {
		run = teaui.RunOverlay
	}
	msg, err := run(ctx, form)
	if err != nil {
		return nil, err
	}
	if saved, ok := msg.(overlay.SavedMsg); ok {
		return &saved.Entry, nil
	}
	return nil, nil
}
