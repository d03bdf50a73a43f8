package strategy

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"rpi_trader/internal/modules/config"
	state "rpi_trader/internal/modules/state/service"
	"rpi_trader/internal/modules/strategy/service"
)

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			service.NewEntryFinder, // *service.EntryFinder
			func(cfg *config.Config) *service.SRFinder {
				return service.NewSRFinder(cfg.Strategy.SRLookback)
			},
			func(cfg *config.Config) *service.DivergenceDetector {
				return service.NewDivergenceDetector(cfg.Strategy.RSIPeriod, cfg.Strategy.DivergenceWindow)
			},
			func(cfg *config.Config, store state.Store, log *zap.Logger) *service.KijunTracker {
				return service.NewKijunTracker(store, cfg.Strategy.KijunThreshold, log.Named("kijun"))
			},
		),
	)
}
