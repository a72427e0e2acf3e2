package commands

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/pokebox/pkg/pokemon"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(pokebox completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(pokebox completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// labelCompletions offers both halves of each label. Completion must not
// block on the API, so it works from the known defaults.
func labelCompletions(labels []pokemon.Label, toComplete string) []string {
	out := make([]string, 0, 2*len(labels))
	for _, l := range labels {
		for _, s := range []string{l.Display, l.Token} {
			if strings.HasPrefix(strings.ToLower(s), strings.ToLower(toComplete)) {
				if strings.Contains(s, " ") {
					s = strconv.Quote(s)
				}
				out = append(out, s)
			}
		}
	}
	return out
}

func editionCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return labelCompletions(pokemon.DefaultEditions(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func boxCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return labelCompletions(pokemon.DefaultBoxes(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// boxArgCompletions completes "<edition> <box>" positional pairs.
func boxArgCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return editionCompletions(cmd, args, toComplete)
	case 1:
		return boxCompletions(cmd, args, toComplete)
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
