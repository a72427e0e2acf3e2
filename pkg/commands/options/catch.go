package options

import (
	"github.com/spf13/cobra"
)

// CatchOptions hold the fields of a new owned entry.
type CatchOptions struct {
	Nickname string
	Level    int
	Edition  string
	Box      string
	// Interactive opens the catch form even when every field is given.
	Interactive bool
}

func AddCatchArgs(cmd *cobra.Command, o *CatchOptions) {
	cmd.Flags().StringVarP(&o.Nickname, "nickname", "n", "",
		"Nickname, at most 11 characters.")
	cmd.Flags().IntVarP(&o.Level, "level", "l", 0,
		"Level between 1 and 100 (default 1).")
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		"Review the catch in the form before sending it.")
	AddLocationArgs(cmd, &o.Edition, &o.Box)
}

// AddLocationArgs registers --edition and --box. Both accept labels
// ("Grün", "Box 3") or API tokens ("GRUEN", "BOX3").
func AddLocationArgs(cmd *cobra.Command, edition, box *string) {
	cmd.Flags().StringVarP(edition, "edition", "e", "",
		"Game edition, e.g. Rot or GRUEN.")
	cmd.Flags().StringVarP(box, "box", "b", "",
		"Box, e.g. Team or BOX3.")
}
