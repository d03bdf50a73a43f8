package tracing

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"rpi_trader/pkg/tracing"
)

// Module поднимает глобальный трейсер; выключенный трейсинг: noop.
func Module() fx.Option {
	return fx.Module("tracing",
		fx.Invoke(func(lc fx.Lifecycle, cfg tracing.Config, log *zap.Logger) error {
			_, closer, err := tracing.InitTracer(cfg)
			if err != nil {
				return err
			}
			if cfg.Enabled {
				log.Info("jaeger tracing enabled", zap.String("host", cfg.Host), zap.Int("port", cfg.Port))
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closer()
					return nil
				},
			})
			return nil
		}),
	)
}
