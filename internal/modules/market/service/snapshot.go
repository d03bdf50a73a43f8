package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rpi_trader/internal/models"
	"rpi_trader/pkg/tracing"
)

// CandleFetcher: источник свечей одного таймфрейма.
type CandleFetcher interface {
	GetCandles(ctx context.Context, tf models.Timeframe, limit int) (models.Series, error)
}

// Snapshotter собирает MarketSnapshot из трёх таймфреймов.
type Snapshotter struct {
	src  CandleFetcher
	size int
	log  *zap.Logger
}

func NewSnapshotter(src CandleFetcher, size int, log *zap.Logger) *Snapshotter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Snapshotter{src: src, size: size, log: log}
}

// FetchSnapshot тянет таймфреймы параллельно; если упал хоть один: снапшота нет.
func (s *Snapshotter) FetchSnapshot(ctx context.Context) (snap models.MarketSnapshot, err error) {
	span, ctx := tracing.StartSpan(ctx, "market.FetchSnapshot", map[string]any{"size": s.size})
	defer func() { tracing.FinishSpan(span, err) }()

	var (
		mu    sync.Mutex
		parts = make(map[models.Timeframe]models.Series, len(models.Timeframes))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, tf := range models.Timeframes {
		tf := tf
		g.Go(func() error {
			series, err := s.src.GetCandles(gctx, tf, s.size)
			if err != nil {
				return err
			}
			if len(series) == 0 {
				return fmt.Errorf("%w: %s returned no candles", models.ErrFetchFailure, tf)
			}
			mu.Lock()
			parts[tf] = series
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.MarketSnapshot{}, err
	}

	for _, tf := range models.Timeframes {
		snap = snap.With(tf, parts[tf])
	}
	for _, tf := range models.Timeframes {
		series := snap.Get(tf)
		if last, ok := series.Last(); ok {
			s.log.Debug("timeframe ready",
				zap.String("tf", string(tf)),
				zap.Int("candles", len(series)),
				zap.Time("last_open", last.Time),
				zap.Time("last_close", last.Time.Add(timeframeToDuration(tf))),
			)
		}
	}
	return snap, nil
}
