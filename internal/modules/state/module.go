package state

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"rpi_trader/internal/modules/config"
	"rpi_trader/internal/modules/state/service"
	"rpi_trader/pkg/db"
)

const connectTimeout = 10 * time.Second

func Module() fx.Option {
	return fx.Module("state",
		fx.Provide(
			NewStore,
		),
	)
}

// NewStore выбирает бэкенд по state.driver и закрывает его на OnStop.
func NewStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (service.Store, error) {
	log = log.Named("state")

	store, err := Open(cfg.State, log)
	if err != nil {
		return nil, err
	}
	log.Info("state store ready", zap.String("driver", cfg.State.Driver))

	if c, ok := store.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return c.Close()
			},
		})
	}
	return store, nil
}

func Open(cfg config.StateConfig, log *zap.Logger) (service.Store, error) {
	switch cfg.Driver {
	case "", config.DriverFile:
		return service.NewFile(cfg.File, log), nil
	case config.DriverMemory:
		return service.NewMemory(), nil
	case config.DriverBadger:
		return service.OpenBadger(cfg.BadgerPath, log)
	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		m, err := db.Connect(ctx, db.PoolConfig{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		pg, err := service.NewPostgres(ctx, m)
		if err != nil {
			m.Close()
			return nil, err
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown state driver %q", cfg.Driver)
	}
}
