package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rpi_trader/internal/notify"
)

// CommandPoller: приём команд из чата (есть только у Telegram).
type CommandPoller interface {
	Start(ctx context.Context, h notify.CommandHandler) error
	Stop()
}

// Startup: то, что делается один раз при старте процесса.
type Startup struct {
	n      notify.Notifier
	poller CommandPoller
	log    *zap.Logger

	symbol   string
	announce bool
	poll     bool
}

func NewStartup(n notify.Notifier, poller CommandPoller, symbol string, announce, poll bool, log *zap.Logger) *Startup {
	if log == nil {
		log = zap.NewNop()
	}
	return &Startup{n: n, poller: poller, log: log, symbol: symbol, announce: announce, poll: poll}
}

func StartupMessage(symbol string) string {
	return fmt.Sprintf("🤖 Bot started. Monitoring %s...", symbol)
}

// Run шлёт приветствие и поднимает приём команд; ошибки не фатальны.
func (s *Startup) Run(ctx context.Context, h notify.CommandHandler) {
	if s.announce {
		if err := s.n.Send(ctx, StartupMessage(s.symbol)); err != nil {
			s.log.Warn("startup message not delivered", zap.Error(err))
		}
	}
	if s.poll && s.poller != nil {
		if err := s.poller.Start(ctx, h); err != nil {
			s.log.Warn("command polling not started", zap.Error(err))
			return
		}
		s.log.Info("telegram commands enabled")
	}
}

func (s *Startup) Stop() {
	if s.poll && s.poller != nil {
		s.poller.Stop()
	}
}
