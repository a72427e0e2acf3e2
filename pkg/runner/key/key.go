// Package key prints the editions and box names the collection API knows,
// with their labels and capacities.
package key

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/printers"
)

// Key prints the enumerations. Editions and Boxes select which ones; both
// are printed when neither is set.
type Key struct {
	Editions bool
	Boxes    bool
	JSON     bool
	Service  *app.Service
	Out      io.Writer
}

type entry struct {
	Token    string `json:"token"`
	Label    string `json:"label"`
	Capacity int    `json:"capacity,omitempty"`
}

// Do loads the reference data and renders the selected tables.
func (k *Key) Do(ctx context.Context) error {
	if k.Service == nil {
		return errors.New("can not list, no service")
	}
	ref, err := k.Service.LoadReference(ctx)
	if err != nil {
		return err
	}
	all := !k.Editions && !k.Boxes

	if k.JSON {
		out := map[string][]entry{}
		if all || k.Editions {
			out["editions"] = entries(ref.Editions, false)
		}
		if all || k.Boxes {
			out["boxes"] = entries(ref.Boxes, true)
		}
		return printers.JSON(k.Out, out)
	}

	pp := printers.PrettyPrint{Out: k.Out}
	pp.NewLine()
	if all || k.Editions {
		pp.Labels("Editions", ref.Editions, false)
	}
	if all || k.Boxes {
		pp.Labels("Boxes", ref.Boxes, true)
	}
	return nil
}

func entries(labels []pokemon.Label, capacity bool) []entry {
	out := make([]entry, 0, len(labels))
	for _, l := range labels {
		e := entry{Token: l.Token, Label: l.Display}
		if capacity {
			e.Capacity = pokemon.Capacity(l.Token)
		}
		out = append(out, e)
	}
	return out
}
