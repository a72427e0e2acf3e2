// Package organize runs the dual-panel organizer.
package organize

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/sprite"
	teaui "tableflip.dev/pokebox/pkg/tui/app"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

type Organize struct {
	Service           *app.Service
	PreflightCapacity bool
	Sprites           sprite.Resolver
	Theme             theme.Theme
	Logger            *zap.Logger
}

func (o *Organize) Do(ctx context.Context) error {
	if o.Service == nil {
		return errors.New("can not organize, no service")
	}
	return teaui.Run(ctx, teaui.Options{
		Service:           o.Service,
		PreflightCapacity: o.PreflightCapacity,
		Sprites:           o.Sprites,
		Theme:             o.Theme,
		Logger:            o.Logger,
	})
}
