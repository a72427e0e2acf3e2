package options

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/pokebox/pkg/printers"
)

// OutputOptions switch every command between tables and JSON.
type OutputOptions struct {
	JSON bool
}

// AddOutputArg registers --json on cmd and all of its subcommands.
func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&o.JSON, "json", false,
		"Print results and errors as JSON for scripts.")
}

// HandleError reports err as {"error": "..."} on stdout when --json is set
// and swallows it; otherwise err is returned for cobra to print.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil || !o.JSON {
		return err
	}
	return printers.JSON(color.Output, map[string]string{"error": err.Error()})
}
