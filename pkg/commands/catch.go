package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/pokebox/pkg/commands/options"
	"tableflip.dev/pokebox/pkg/runner/catch"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

func addCatch(topLevel *cobra.Command) {
	co := &options.CatchOptions{}
	var pokedexID int

	cmd := &cobra.Command{
		Use:   "catch <pokedexId>",
		Short: "Add a species to the collection",
		Long: `Catches the species with the given catalog number. Without --edition or
--box a form opens to pick the destination.`,
		Example: `
pokebox catch 25 --nickname Blitz --edition Rot --box Team
pokebox catch 133
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a catalog number")
			}
			var err error
			pokedexID, err = options.ParseID("catalog number", args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(ao)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()
			c := catch.Catch{
				PokedexID:   pokedexID,
				Nickname:    co.Nickname,
				Level:       co.Level,
				Edition:     co.Edition,
				Box:         co.Box,
				Interactive: co.Interactive,
				JSON:        oo.JSON,
				Service:     e.service,
				Sprites:     e.sprites(),
				Theme:       theme.Detect(),
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddCatchArgs(cmd, co)
	_ = cmd.RegisterFlagCompletionFunc("edition", editionCompletions)
	_ = cmd.RegisterFlagCompletionFunc("box", boxCompletions)

	topLevel.AddCommand(cmd)
}
