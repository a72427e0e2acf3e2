// Package move relocates an owned entry to another box.
package move

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/mapper"
	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/printers"
)

type Move struct {
	ID int
	// Edition and Box name the target and accept labels or tokens. An empty
	// edition keeps the entry's current one.
	Edition string
	Box     string
	JSON    bool

	Service *app.Service
	Out     io.Writer
}

func (m *Move) Do(ctx context.Context) error {
	if m.Service == nil {
		return errors.New("can not move, no service")
	}
	if m.Box == "" {
		return errors.New("a target box is required")
	}
	current, err := m.Service.Find(ctx, m.ID)
	if err != nil {
		return err
	}
	from := current.Location()
	to := pokemon.BoxRef{Edition: m.Edition, Box: m.Box}
	if to.Edition == "" {
		to.Edition = from.Edition
	}
	to = mapper.ToAPIBox(to)

	if err := m.Service.Move(ctx, m.ID, from, to); err != nil {
		return err
	}
	move := pokemon.Move{
		SourceBox:     from.Box,
		TargetBox:     to.Box,
		ID:            m.ID,
		SourceEdition: from.Edition,
		TargetEdition: to.Edition,
	}
	if m.JSON {
		return printers.JSON(m.Out, move)
	}
	pp := printers.PrettyPrint{Out: m.Out}
	pp.Done("moved %s from %s · %s to %s · %s", current.DisplayName(),
		mapper.DisplayEdition(from.Edition), mapper.DisplayBoxName(from.Box),
		mapper.DisplayEdition(to.Edition), mapper.DisplayBoxName(to.Box))
	return nil
}
