package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"rpi_trader/internal/models"
)

const (
	// KijunH1Key: ключ последнего сохранённого Kijun H1 в хранилище состояния.
	KijunH1Key = "kijun_h1_value"
	// DefaultKijunThreshold: минимальное изменение Kijun, которое считается движением.
	DefaultKijunThreshold = 0.01

	floatEps = 1e-9
)

// StateStore: то, что трекеру нужно от хранилища состояния.
type StateStore interface {
	Get(ctx context.Context, key string) (float64, bool, error)
	Set(ctx context.Context, key string, value float64) error
}

// KijunVerdict: ответ трекера.
type KijunVerdict struct {
	models.Verdict
	Current   float64
	Last      float64
	Baseline  bool // первое значение, сохранили без сравнения
	Persisted bool
}

// KijunTracker: трейлинг-стоп по Kijun-sen H1 с памятью между циклами.
type KijunTracker struct {
	store     StateStore
	threshold float64
	log       *zap.Logger
}

func NewKijunTracker(store StateStore, threshold float64, log *zap.Logger) *KijunTracker {
	if threshold <= 0 {
		threshold = DefaultKijunThreshold
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &KijunTracker{store: store, threshold: threshold, log: log}
}

// Check сохраняет Kijun при каждом значимом изменении, а уведомляет
// только когда изменение в пользу текущей позиции.
func (t *KijunTracker) Check(ctx context.Context, h1 models.Series, mode models.Mode) (KijunVerdict, error) {
	current, ok := Last(KijunSen(h1))
	if !ok {
		return KijunVerdict{Verdict: models.NotEnoughData()}, nil
	}
	price := h1[len(h1)-1].Close

	last, found, err := t.store.Get(ctx, KijunH1Key)
	switch {
	case errors.Is(err, models.ErrPersistenceCorruption):
		// битое состояние = пустое
		t.log.Warn("kijun state corrupted, starting from baseline",
			zap.Error(err), zap.String("key", KijunH1Key))
		found = false
	case err != nil:
		// сбой чтения: базу не трогаем и молчим
		return KijunVerdict{}, fmt.Errorf("%w: load kijun state: %v", models.ErrFetchFailure, err)
	}

	out := KijunVerdict{Current: current, Last: last}

	if !found {
		if err := t.store.Set(ctx, KijunH1Key, current); err != nil {
			return out, fmt.Errorf("save kijun baseline: %w", err)
		}
		out.Baseline = true
		out.Persisted = true
		out.Fired = true
		out.Message = kijunMessage(mode, current, price)
		return out, nil
	}

	delta := current - last
	significant := math.Abs(delta) >= t.threshold-floatEps

	if !significant {
		return out, nil
	}

	// базу обновляем и при движении против позиции
	if err := t.store.Set(ctx, KijunH1Key, current); err != nil {
		return out, fmt.Errorf("save kijun value: %w", err)
	}
	out.Persisted = true

	var favourable bool
	switch mode {
	case models.ModeManageBuy:
		favourable = delta > 0
	case models.ModeManageSell:
		favourable = delta < 0
	}
	if !favourable {
		t.log.Debug("kijun moved against position",
			zap.Stringer("mode", mode), zap.Float64("last", last), zap.Float64("current", current))
		return out, nil
	}

	out.Fired = true
	out.Message = kijunMessage(mode, current, price)
	return out, nil
}

func kijunMessage(mode models.Mode, kijun, price float64) string {
	var tip, orderType string
	switch mode {
	case models.ModeManageBuy:
		tip = "Notify only if Kijun INCREASES (protecting BUY order)."
		orderType = "BUY ORDER"
	case models.ModeManageSell:
		tip = "Notify only if Kijun DECREASES (protecting SELL order)."
		orderType = "SELL ORDER"
	default:
		tip = "Current Kijun value reported."
		orderType = "GENERAL INFORMATION"
	}
	return fmt.Sprintf(
		"🛑 *Kijun-Sen Trailing (H1) UPDATE - %s*:\n"+
			"New Kijun Value: `%.2f`\n"+
			"Current Price: `%.2f`\n"+
			"_Hint: %s_",
		orderType, kijun, price, tip,
	)
}
