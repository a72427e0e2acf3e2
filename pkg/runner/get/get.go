// Package get lists catalog and collection data.
package get

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/mapper"
	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/printers"
)

// What selects the listing.
type What string

const (
	Species What = "species"
	Owned   What = "owned"
	Box     What = "box"
	Summary What = "summary"
)

type Get struct {
	What    What
	ShowID  bool
	JSON    bool
	Edition string
	Box     string
	// Filter narrows owned entries to one edition when set.
	Filter  string
	Service *app.Service
	Out     io.Writer
}

func (g *Get) Do(ctx context.Context) error {
	if g.Service == nil {
		return errors.New("can not get, no service")
	}
	pp := printers.PrettyPrint{ShowID: g.ShowID, Out: g.Out}

	switch g.What {
	case Species:
		all, err := g.Service.Species(ctx)
		if err != nil {
			return err
		}
		if g.JSON {
			return printers.JSON(g.Out, all)
		}
		pp.Species(all...)

	case Owned:
		all, err := g.Service.Owned(ctx)
		if err != nil {
			return err
		}
		all = g.filtered(all)
		if g.JSON {
			return printers.JSON(g.Out, all)
		}
		title := "Owned"
		if g.Filter != "" {
			title += " · " + mapper.DisplayEdition(mapper.ToAPIEdition(g.Filter))
		}
		pp.Owned(title, all...)

	case Box:
		ref := mapper.ToAPIBox(pokemon.BoxRef{Edition: g.Edition, Box: g.Box})
		box, err := g.Service.Box(ctx, ref)
		if err != nil {
			return err
		}
		if g.JSON {
			return printers.JSON(g.Out, box)
		}
		pp.Box(ref, box)

	case Summary:
		ref, err := g.Service.LoadReference(ctx)
		if err != nil {
			return err
		}
		s, err := g.Service.Summarize(ctx, ref)
		if err != nil {
			return err
		}
		if g.JSON {
			return printers.JSON(g.Out, s)
		}
		pp.Summary(s)

	default:
		return fmt.Errorf("unknown listing %q", g.What)
	}
	return nil
}

func (g *Get) filtered(all []pokemon.OwnedEntry) []pokemon.OwnedEntry {
	if g.Filter == "" {
		return all
	}
	edition := mapper.ToAPIEdition(g.Filter)
	c := make([]pokemon.OwnedEntry, 0, len(all))
	for _, e := range all {
		if e.Edition == edition {
			c = append(c, e)
		}
	}
	return c
}
