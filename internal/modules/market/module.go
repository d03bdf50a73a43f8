package market

import (
	"rpi_trader/internal/modules/config"
	"rpi_trader/internal/modules/market/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module: свечи TwelveData и сборка снапшота.
func Module() fx.Option {
	return fx.Module("market",
		fx.Provide(
			service.NewClient, // *service.Client
			func(c *service.Client, cfg *config.Config, log *zap.Logger) *service.Snapshotter {
				return service.NewSnapshotter(c, cfg.TwelveData.HistorySize, log.Named("market"))
			},
		),
	)
}
