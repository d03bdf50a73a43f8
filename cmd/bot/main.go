package main

import (
	"rpi_trader/internal/modules/bootstrap"
	"rpi_trader/internal/modules/config"
	"rpi_trader/internal/modules/health"
	logmodule "rpi_trader/internal/modules/logger"
	"rpi_trader/internal/modules/market"
	"rpi_trader/internal/modules/mode"
	"rpi_trader/internal/modules/notify"
	"rpi_trader/internal/modules/state"
	"rpi_trader/internal/modules/strategy"
	"rpi_trader/internal/modules/tracing"
	"rpi_trader/internal/runner"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func options() fx.Option {
	return fx.Options(
		config.Module(),
		logmodule.Module(),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		tracing.Module(),
		state.Module(),
		market.Module(),
		mode.Module(),
		notify.Module(),
		strategy.Module(),
		health.Module(),
		bootstrap.Module(),
		runner.Module(),
	)
}

func main() {
	fx.New(options()).Run()
}
