package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/pokebox/pkg/commands/options"
	"tableflip.dev/pokebox/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	mo := &move.Move{}

	cmd := &cobra.Command{
		Use:   "move <id> [edition] <box>",
		Short: "Move an owned Pokémon to another box",
		Long: `Moves an entry into the given box. Without an edition the entry stays in
its current one.`,
		Example: `
pokebox move 12 "Box 3"
pokebox move 12 Blau Team
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 || len(args) > 3 {
				return errors.New("requires an id, an optional edition and a box")
			}
			var err error
			mo.ID, err = options.ParseID("id", args[0])
			if err != nil {
				return err
			}
			if len(args) == 3 {
				mo.Edition, mo.Box = args[1], args[2]
			} else {
				mo.Box = args[1]
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(ao)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()
			mo.Service = e.service
			mo.JSON = oo.JSON
			return oo.HandleError(mo.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}
