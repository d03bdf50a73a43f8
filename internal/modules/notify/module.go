package notify

import (
	"rpi_trader/internal/modules/config"
	"rpi_trader/internal/notify"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			NewNotifier,
		),
	)
}

// NewNotifier: без токена или chat_id алерты идут в лог.
func NewNotifier(cfg *config.Config, log *zap.Logger) (notify.Notifier, *notify.Telegram, error) {
	if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
		log.Warn("telegram is not configured, alerts go to stdout")
		return notify.NewStdout(log), nil, nil
	}
	tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
	if err != nil {
		return nil, nil, err
	}
	return tg, tg, nil
}
