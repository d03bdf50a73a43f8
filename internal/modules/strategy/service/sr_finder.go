package service

import (
	"fmt"

	"rpi_trader/internal/models"
)

const DefaultSRLookback = 100

// SRLevels: уровни поддержки/сопротивления.
type SRLevels struct {
	Support    float64
	Resistance float64
	Candles    int // по скольким свечам посчитано
}

// SRFinder ищет поддержку/сопротивление на последних lookback свечах H1.
type SRFinder struct {
	lookback int
}

func NewSRFinder(lookback int) *SRFinder {
	if lookback <= 0 {
		lookback = DefaultSRLookback
	}
	return &SRFinder{lookback: lookback}
}

// Levels считает по тому, что есть; ok=false только для пустой серии.
func (f *SRFinder) Levels(h1 models.Series) (SRLevels, bool) {
	sub := h1.Tail(f.lookback)
	if len(sub) == 0 {
		return SRLevels{}, false
	}
	return SRLevels{
		Support:    minSlice(sub.Lows()),
		Resistance: maxSlice(sub.Highs()),
		Candles:    len(sub),
	}, true
}

func (f *SRFinder) Check(h1 models.Series) models.Verdict {
	lv, ok := f.Levels(h1)
	if !ok {
		return models.Verdict{}
	}
	return models.Verdict{
		Fired: true,
		Message: fmt.Sprintf(
			"📊 *Support & Resistance (H1)*:\n"+
				"Resistance: `%.2f` (Sell Stop Loss / Buy Take Profit)\n"+
				"Support: `%.2f` (Buy Stop Loss / Sell Take Profit)",
			lv.Resistance, lv.Support,
		),
	}
}

// вспомогательные
func maxSlice(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, v := range xs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minSlice(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, v := range xs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// argMax/argMin: индекс первого экстремума.
func argMax(xs []float64) int {
	idx := 0
	for i, v := range xs {
		if v > xs[idx] {
			idx = i
		}
	}
	return idx
}

func argMin(xs []float64) int {
	idx := 0
	for i, v := range xs {
		if v < xs[idx] {
			idx = i
		}
	}
	return idx
}
