package runner

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"rpi_trader/internal/metrics"
	"rpi_trader/internal/modules/config"
	health "rpi_trader/internal/modules/health/service"
	market "rpi_trader/internal/modules/market/service"
	mode "rpi_trader/internal/modules/mode/service"
	strategy "rpi_trader/internal/modules/strategy/service"
	"rpi_trader/internal/notify"
)

type dispatcherParams struct {
	fx.In

	Mode       *mode.FileStore
	Market     *market.Snapshotter
	Entry      *strategy.EntryFinder
	SR         *strategy.SRFinder
	Divergence *strategy.DivergenceDetector
	Kijun      *strategy.KijunTracker
	Notifier   notify.Notifier
	Metrics    *metrics.Metrics
	Health     *health.State
	Log        *zap.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(Deps{
		Mode:       p.Mode,
		Market:     p.Market,
		Entry:      p.Entry,
		SR:         p.SR,
		Divergence: p.Divergence,
		Kijun:      p.Kijun,
		Notifier:   p.Notifier,
		Metrics:    p.Metrics,
		Health:     p.Health,
		Log:        p.Log.Named("dispatcher"),
	})
}

func newLoop(d *Dispatcher, n notify.Notifier, cfg *config.Config, log *zap.Logger) *Loop {
	return NewLoop(d, n, cfg.Schedule.Interval, cfg.Schedule.StopAt, log)
}

// Module: цикл живёт в своей горутине со своим ctx; по его завершении
// приложение гасится через Shutdowner (с кодом 1, если одиночный цикл упал).
func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			newDispatcher, // *Dispatcher
			newLoop,       // *Loop
		),
		fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner, loop *Loop, log *zap.Logger) {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})

			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						defer close(done)
						err := loop.Run(ctx)
						if ctx.Err() != nil {
							return
						}
						code := 0
						if err != nil {
							log.Error("runner finished with error", zap.Error(err))
							code = 1
						}
						_ = sd.Shutdown(fx.ExitCode(code))
					}()
					return nil
				},
				OnStop: func(stopCtx context.Context) error {
					cancel()
					select {
					case <-done:
					case <-stopCtx.Done():
						return stopCtx.Err()
					}
					return nil
				},
			})
		}),
	)
}
