package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/pokebox/pkg/commands/options"
	"tableflip.dev/pokebox/pkg/runner/get"
)

func runGet(cmd *cobra.Command, g *get.Get) error {
	e, err := setup(ao)
	if err != nil {
		return oo.HandleError(err)
	}
	defer e.close()
	g.Service = e.service
	g.JSON = oo.JSON
	return oo.HandleError(g.Do(cmd.Context()))
}

func addSpecies(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "species",
		Aliases: []string{"catalog", "dex"},
		Short:   "List the species catalog",
		Example: `
pokebox species
pokebox species --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, &get.Get{What: get.Species})
		},
	}
	topLevel.AddCommand(cmd)
}

func addOwned(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var edition string

	cmd := &cobra.Command{
		Use:   "owned",
		Short: "List owned Pokémon",
		Example: `
pokebox owned
pokebox owned --edition Rot --show-id
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, &get.Get{What: get.Owned, ShowID: io.ShowID, Filter: edition})
		},
	}
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVarP(&edition, "edition", "e", "", "Only list entries of this edition.")
	_ = cmd.RegisterFlagCompletionFunc("edition", editionCompletions)

	topLevel.AddCommand(cmd)
}

func addBox(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "box <edition> <box>",
		Short: "Show the contents of one box",
		Example: `
pokebox box Rot Team
pokebox box GRUEN BOX3
pokebox box Grün "Box 3" --show-id
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires an edition and a box")
			}
			return nil
		},
		ValidArgsFunction: boxArgCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, &get.Get{What: get.Box, ShowID: io.ShowID, Edition: args[0], Box: args[1]})
		},
	}
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addSummary(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Count owned Pokémon per box",
		Example: `
pokebox summary
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, &get.Get{What: get.Summary})
		},
	}
	topLevel.AddCommand(cmd)
}
