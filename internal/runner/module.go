package runner

import (
	"context"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			NewRunner, // *Runner
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			r *Runner,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go r.Start(ctx)
					return nil
				},
			})
		}),
	)
}
