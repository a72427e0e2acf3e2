package options

import (
	"github.com/spf13/cobra"
)

// APIOptions select the configuration and the collection API.
type APIOptions struct {
	// Config is an explicit config file.
	Config string
	// URL overrides api.url.
	URL string
	// NoCache bypasses the reference data cache.
	NoCache bool
}

func AddAPIArgs(cmd *cobra.Command, o *APIOptions) {
	cmd.PersistentFlags().StringVar(&o.Config, "config", "",
		"Config file (default is .pokebox.yaml in $POKEBOX_CONFIG_PATH or the working directory).")
	cmd.PersistentFlags().StringVar(&o.URL, "api", "",
		"Base URL of the collection API, e.g. http://localhost:8080/api.")
	cmd.PersistentFlags().BoolVar(&o.NoCache, "no-cache", false,
		"Fetch reference data from the API instead of the local cache.")
}
