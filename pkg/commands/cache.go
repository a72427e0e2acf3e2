package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/pokebox/pkg/runner/cache"
)

func addCache(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Show the cached reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCache(cmd, false)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop the cached species, editions, box names and evolution rules",
		Example: `
pokebox cache clear
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCache(cmd, true)
		},
	}
	cmd.AddCommand(clearCmd)

	topLevel.AddCommand(cmd)
}

func runCache(cmd *cobra.Command, wipe bool) error {
	cfg, err := loadConfig(ao)
	if err != nil {
		return oo.HandleError(err)
	}
	c, err := openCache(cfg)
	if err != nil {
		return oo.HandleError(err)
	}
	r := cache.Cache{Clear: wipe, JSON: oo.JSON, Cache: c}
	return oo.HandleError(r.Do(cmd.Context()))
}
