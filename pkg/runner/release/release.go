// Package release removes an owned entry from the collection.
package release

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/printers"
)

type Release struct {
	ID   int
	JSON bool

	Service *app.Service
	Out     io.Writer
}

func (r *Release) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not release, no service")
	}
	if err := r.Service.Release(ctx, r.ID); err != nil {
		return err
	}
	if r.JSON {
		return printers.JSON(r.Out, map[string]int{"released": r.ID})
	}
	pp := printers.PrettyPrint{Out: r.Out}
	pp.Done("released #%d", r.ID)
	return nil
}
