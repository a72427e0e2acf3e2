package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/pokebox/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	s := &serve.Serve{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory collection API",
		Long: `Serves the collection API from memory. Nothing is persisted; the data is
gone when the process exits.`,
		Example: `
pokebox serve --addr :8080 --demo
pokebox organize --api http://localhost:8080/api
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(ao)
			if err != nil {
				return err
			}
			defer e.close()
			s.Logger = e.log.Logger
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&s.Addr, "addr", ":8080", "Address to listen on.")
	cmd.Flags().BoolVar(&s.Demo, "demo", false, "Start with a few entries.")

	topLevel.AddCommand(cmd)
}
