package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/pokebox/pkg/config"
	"tableflip.dev/pokebox/pkg/runner/organize"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

func addOrganize(topLevel *cobra.Command) {
	preflight := false

	cmd := &cobra.Command{
		Use:     "organize",
		Aliases: []string{"ui", "o"},
		Short:   "Open the dual-panel box organizer",
		Long: `Shows two boxes side by side. Pick an entry up with space, switch panels
with tab and drop it with enter. Enter on a card opens its details.`,
		Example: `
pokebox organize
pokebox organize --preflight-capacity
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("organize needs a terminal")
			}
			e, err := setup(ao)
			if err != nil {
				return err
			}
			defer e.close()

			watching := e.cfg.Watch(func(cfg *config.Config, err error) {
				if err != nil {
					e.log.Warn("config reload failed", zap.Error(err))
					return
				}
				if err := e.log.SetLevel(cfg.Log.Level); err != nil {
					e.log.Warn("ignoring log level", zap.Error(err))
				}
			})
			e.log.Debug("organize", zap.String("config", e.cfg.File()), zap.Bool("watching", watching))

			o := organize.Organize{
				Service:           e.service,
				PreflightCapacity: preflight || e.cfg.PreflightCapacity,
				Sprites:           e.sprites(),
				Theme:             theme.Detect(),
				Logger:            e.log.Logger,
			}
			return o.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&preflight, "preflight-capacity", false,
		"Check that the target box has room before asking the API to move.")

	topLevel.AddCommand(cmd)
}
