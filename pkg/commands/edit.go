package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/pokebox/pkg/commands/options"
	"tableflip.dev/pokebox/pkg/runner/edit"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

func addEdit(topLevel *cobra.Command) {
	var id int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Open the detail view of an owned Pokémon",
		Long: `Shows the card of an owned entry. From there it can be edited, evolved or
released.`,
		Example: `
pokebox edit 12
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an id")
			}
			var err error
			id, err = options.ParseID("id", args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(ao)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()
			ed := edit.Edit{
				ID:      id,
				JSON:    oo.JSON,
				Service: e.service,
				Sprites: e.sprites(),
				Theme:   theme.Detect(),
			}
			return oo.HandleError(ed.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}

func addEvolve(topLevel *cobra.Command) {
	var id, target int

	cmd := &cobra.Command{
		Use:   "evolve <id> <targetPokedexId>",
		Short: "Evolve an owned Pokémon",
		Example: `
pokebox evolve 12 26
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires an id and a target catalog number")
			}
			var err error
			if id, err = options.ParseID("id", args[0]); err != nil {
				return err
			}
			target, err = options.ParseID("target catalog number", args[1])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(ao)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()
			ev := edit.Evolve{ID: id, Target: target, JSON: oo.JSON, Service: e.service}
			return oo.HandleError(ev.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}
