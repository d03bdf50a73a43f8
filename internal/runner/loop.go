package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rpi_trader/internal/notify"
)

type Cycler interface {
	RunCycle(ctx context.Context) (CycleReport, error)
}

// Loop: расписание циклов. interval=0: один цикл (запуск из cron);
// иначе цикл, пауза interval, и так до stopAt или отмены ctx.
type Loop struct {
	cycler   Cycler
	notifier notify.Notifier
	interval time.Duration
	stopAt   string
	log      *zap.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewLoop(c Cycler, n notify.Notifier, interval time.Duration, stopAt string, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		cycler:   c,
		notifier: n,
		interval: interval,
		stopAt:   stopAt,
		log:      log.Named("loop"),
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Run в режиме одного цикла возвращает его ошибку; в режиме цикла
// ошибки отдельных циклов только логируются.
func (l *Loop) Run(ctx context.Context) error {
	if l.interval <= 0 {
		_, err := l.cycler.RunCycle(ctx)
		return err
	}

	deadline, hasStop := l.stopDeadline(l.now())
	l.log.Info("loop started",
		zap.Duration("interval", l.interval),
		zap.String("stop_at", l.stopAt),
		zap.Time("stop_deadline", deadline),
	)
	for {
		if hasStop && !l.now().Before(deadline) {
			l.log.Info("stop time reached", zap.String("stop_at", l.stopAt))
			msg := fmt.Sprintf("⚠️ Bot received stop signal (%s). Shutting down.", l.stopAt)
			if err := l.notifier.Send(ctx, msg); err != nil {
				l.log.Warn("stop notice not delivered", zap.Error(err))
			}
			return nil
		}

		if _, err := l.cycler.RunCycle(ctx); err != nil {
			l.log.Warn("cycle failed, waiting for next", zap.Error(err))
		}

		if err := l.sleep(ctx, l.interval); err != nil {
			return err
		}
	}
}

// stopDeadline: ближайшее наступление stopAt после старта цикла.
// Запуск позже stopAt в тот же день работает до stopAt следующего дня.
// Пустой или битый stopAt: без остановки.
func (l *Loop) stopDeadline(start time.Time) (time.Time, bool) {
	if l.stopAt == "" {
		return time.Time{}, false
	}
	at, err := time.Parse("15:04", l.stopAt)
	if err != nil {
		return time.Time{}, false
	}
	deadline := time.Date(start.Year(), start.Month(), start.Day(), at.Hour(), at.Minute(), 0, 0, start.Location())
	if !deadline.After(start) {
		deadline = deadline.AddDate(0, 0, 1)
	}
	return deadline, true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
