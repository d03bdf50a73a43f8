package mode

import (
	"rpi_trader/internal/modules/config"
	"rpi_trader/internal/modules/mode/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("mode",
		fx.Provide(
			func(cfg *config.Config) *service.FileStore {
				return service.NewFileStore(cfg.Mode.File)
			},
			func(s *service.FileStore) service.ModeStore { return s },
			service.NewCommands,
		),
	)
}
