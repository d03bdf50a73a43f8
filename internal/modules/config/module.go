package config

import (
	"rpi_trader/pkg/logger"
	"rpi_trader/pkg/tracing"

	"go.uber.org/fx"
)

// Module регистрирует конфиг и производные от него настройки.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			NewConfig,
			func(c *Config) logger.Config {
				return logger.Config{
					Level:      c.Log.Level,
					File:       c.Log.File,
					MaxSizeMB:  c.Log.MaxSizeMB,
					MaxBackups: c.Log.MaxBackups,
					MaxAgeDays: c.Log.MaxAgeDays,
				}
			},
			func(c *Config) tracing.Config {
				return tracing.Config{
					Enabled: c.Tracing.Enabled,
					Host:    c.Tracing.Host,
					Port:    c.Tracing.Port,
				}
			},
		),
	)
}
