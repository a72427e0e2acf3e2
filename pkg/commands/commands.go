package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/pokebox/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
	ao = &options.APIOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "pokebox",
		Short: base.Wrap80("Organize a Pokémon collection across game editions and storage boxes."),
		Long: base.Wrap80("pokebox talks to a collection API. Browse the catalog, catch, edit, " +
			"evolve and release owned Pokémon, and move them between boxes with the " +
			"dual-panel organizer."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddAPIArgs(cmd, ao)
	options.AddOutputArg(cmd, oo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addOrganize(topLevel)
	addSpecies(topLevel)
	addOwned(topLevel)
	addBox(topLevel)
	addSummary(topLevel)
	addKey(topLevel)
	addEditions(topLevel)
	addBoxes(topLevel)
	addCatch(topLevel)
	addEdit(topLevel)
	addEvolve(topLevel)
	addMove(topLevel)
	addRelease(topLevel)
	addCache(topLevel)
	addServe(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
