package bootstrap

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	bootstrap "rpi_trader/internal/modules/bootstrap/service"
	"rpi_trader/internal/modules/config"
	mode "rpi_trader/internal/modules/mode/service"
	"rpi_trader/internal/notify"
)

func newStartup(cfg *config.Config, n notify.Notifier, tg *notify.Telegram, log *zap.Logger) *bootstrap.Startup {
	var poller bootstrap.CommandPoller
	if tg != nil {
		poller = tg
	}
	// команды имеют смысл только у долгоживущего процесса
	poll := cfg.Telegram.Commands && cfg.Schedule.Interval > 0
	return bootstrap.NewStartup(n, poller, cfg.TwelveData.Symbol, cfg.Schedule.StartupMessage, poll, log.Named("bootstrap"))
}

func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			newStartup, // *bootstrap.Startup
		),
		fx.Invoke(func(lc fx.Lifecycle, s *bootstrap.Startup, cmds *mode.Commands) {
			ctx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					s.Run(ctx, cmds.Handle)
					return nil
				},
				OnStop: func(context.Context) error {
					cancel()
					s.Stop()
					return nil
				},
			})
		}),
	)
}
