package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/pokebox/pkg/runner/key"
)

func runKey(cmd *cobra.Command, k *key.Key) error {
	e, err := setup(ao)
	if err != nil {
		return oo.HandleError(err)
	}
	defer e.close()
	k.Service = e.service
	k.JSON = oo.JSON
	return oo.HandleError(k.Do(cmd.Context()))
}

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show editions and boxes with their labels",
		Example: `
pokebox key
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKey(cmd, &key.Key{})
		},
	}
	topLevel.AddCommand(cmd)
}

func addEditions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "editions",
		Short: "List the game editions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKey(cmd, &key.Key{Editions: true})
		},
	}
	topLevel.AddCommand(cmd)
}

func addBoxes(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "boxes",
		Short: "List the box names and their capacities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKey(cmd, &key.Key{Boxes: true})
		},
	}
	topLevel.AddCommand(cmd)
}
