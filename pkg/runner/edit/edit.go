// Package edit changes an owned entry, either through the detail overlay or
// directly from the command line.
package edit

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/printers"
	"tableflip.dev/pokebox/pkg/sprite"
	teaui "tableflip.dev/pokebox/pkg/tui/app"
	"tableflip.dev/pokebox/pkg/tui/overlay"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

// Edit opens the detail overlay for one entry.
type Edit struct {
	ID   int
	JSON bool

	Service *app.Service
	Sprites sprite.Resolver
	Theme   theme.Theme
	Out     io.Writer
	// Prompt defaults to teaui.RunOverlay.
	Prompt func(ctx context.Context, p teaui.Pane) (tea.Msg, error)
}

func (e *Edit) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("can not edit, no service")
	}
	ref, err := e.Service.LoadReference(ctx)
	if err != nil {
		return err
	}
	current, err := e.Service.Find(ctx, e.ID)
	if err != nil {
		return err
	}

	ed := overlay.NewEditor(*current, overlay.Options{
		Actions:   e.Service,
		Reference: ref,
		Sprites:   e.Sprites,
		Theme:     e.Theme,
		Context:   ctx,
	})
	run := e.Prompt
	if run == nil {
		run = teaui.RunOverlay
	}
	msg, err := run(ctx, ed)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: e.Out}
	switch msg := msg.(type) {
	case overlay.SavedMsg:
		if e.JSON {
			return printers.JSON(e.Out, msg.Entry)
		}
		pp.Done("saved %s %s", msg.Entry.Number(), msg.Entry.DisplayName())
	case overlay.DeletedMsg:
		if e.JSON {
			return printers.JSON(e.Out, map[string]int{"released": msg.ID})
		}
		pp.Done("released #%d", msg.ID)
	default:
		pp.Note("no changes")
	}
	return nil
}

// Evolve replaces an entry's species with one of its evolution targets.
type Evolve struct {
	ID     int
	Target int
	JSON   bool

	Service *app.Service
	Out     io.Writer
}

func (e *Evolve) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("can not evolve, no service")
	}
	ref, err := e.Service.LoadReference(ctx)
	if err != nil {
		return err
	}
	current, err := e.Service.Find(ctx, e.ID)
	if err != nil {
		return err
	}
	evolved, err := e.Service.Evolve(ctx, *current, e.Target, ref.Rules)
	if err != nil {
		return err
	}
	if e.JSON {
		return printers.JSON(e.Out, evolved)
	}
	pp := printers.PrettyPrint{Out: e.Out}
	name := evolved.SpeciesName
	if sp, ok := ref.Lookup(evolved.PokedexID); ok && name == "" {
		name = sp.Name
	}
	pp.Done("%s evolved into %s %s", current.DisplayName(), evolved.Number(), name)
	return nil
}
