package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/pokebox/pkg/commands/options"
	"tableflip.dev/pokebox/pkg/runner/release"
)

func addRelease(topLevel *cobra.Command) {
	var id int

	cmd := &cobra.Command{
		Use:     "release <id>",
		Aliases: []string{"rm"},
		Short:   "Release an owned Pokémon",
		Example: `
pokebox release 12
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
			r := release.Release{ID: id, JSON: oo.JSON, Service: e.service}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}
