package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"rpi_trader/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("logger",
		fx.Provide(
			func(lc fx.Lifecycle, cfg logger.Config) (*zap.Logger, error) {
				log, err := logger.New(cfg)
				if err != nil {
					return nil, err
				}
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						// stdout не всегда умеет Sync, ошибку игнорируем
						_ = log.Sync()
						return nil
					},
				})
				return log, nil
			},
		),
	)
}
