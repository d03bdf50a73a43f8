package service

import (
	"math"

	"rpi_trader/internal/models"
)

const (
	TenkanPeriod  = 9
	KijunPeriod   = 26
	SpanBPeriod   = 52
	SpanShift     = 26
	DefaultRSILen = 14
)

// undefined: значение индикатора, для которого ещё не хватает истории.
var undefined = math.NaN()

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = undefined
	}
	return out
}

// RollingMax: максимум по окну, выровненный вправо. Первые window-1 позиций = NaN.
func RollingMax(xs []float64, window int) []float64 {
	return rolling(xs, window, func(a, b float64) bool { return a > b })
}

// RollingMin: минимум по окну, выровненный вправо.
func RollingMin(xs []float64, window int) []float64 {
	return rolling(xs, window, func(a, b float64) bool { return a < b })
}

func rolling(xs []float64, window int, better func(a, b float64) bool) []float64 {
	out := nanSlice(len(xs))
	if window < 1 {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		m := xs[i-window+1]
		for _, v := range xs[i-window+2 : i+1] {
			if better(v, m) {
				m = v
			}
		}
		out[i] = m
	}
	return out
}

// Midpoint = (RollingMax(highs) + RollingMin(lows)) / 2.
func Midpoint(highs, lows []float64, window int) []float64 {
	hi := RollingMax(highs, window)
	lo := RollingMin(lows, window)
	out := make([]float64, len(hi))
	for i := range hi {
		out[i] = (hi[i] + lo[i]) / 2
	}
	return out
}

// Shift сдвигает ряд вперёд на n позиций: out[i] = xs[i-n].
func Shift(xs []float64, n int) []float64 {
	out := nanSlice(len(xs))
	if n < 0 {
		return out
	}
	for i := n; i < len(xs); i++ {
		out[i] = xs[i-n]
	}
	return out
}

// Last: последнее значение ряда; ok=false если ряд пуст или значение не определено.
func Last(xs []float64) (float64, bool) {
	return At(xs, -1)
}

// At: значение по индексу, отрицательный индекс считается с конца.
func At(xs []float64, idx int) (float64, bool) {
	if idx < 0 {
		idx += len(xs)
	}
	if idx < 0 || idx >= len(xs) {
		return 0, false
	}
	v := xs[idx]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Ichimoku: линии индикатора по каждой позиции серии.
type Ichimoku struct {
	Tenkan []float64
	Kijun  []float64
	SpanA  []float64
	SpanB  []float64
}

func ComputeIchimoku(s models.Series) Ichimoku {
	highs, lows := s.Highs(), s.Lows()

	tenkan := Midpoint(highs, lows, TenkanPeriod)
	kijun := Midpoint(highs, lows, KijunPeriod)

	mid := make([]float64, len(tenkan))
	for i := range tenkan {
		mid[i] = (tenkan[i] + kijun[i]) / 2
	}

	return Ichimoku{
		Tenkan: tenkan,
		Kijun:  kijun,
		SpanA:  Shift(mid, SpanShift),
		SpanB:  Shift(Midpoint(highs, lows, SpanBPeriod), SpanShift),
	}
}

// KijunSen: только базовая линия (для трейлинга).
func KijunSen(s models.Series) []float64 {
	return Midpoint(s.Highs(), s.Lows(), KijunPeriod)
}

// RSI на скользящем среднем приростов/потерь (не экспоненциальное сглаживание).
// У первой свечи нет предыдущего закрытия, её изменение считается нулевым.
// Нулевая средняя потеря даёт RSI = 100.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period < 1 {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains[i] = d
		} else if d < 0 {
			losses[i] = -d
		}
	}

	for i := period - 1; i < len(closes); i++ {
		var g, l float64
		for j := i - period + 1; j <= i; j++ {
			g += gains[j]
			l += losses[j]
		}
		avgGain := g / float64(period)
		avgLoss := l / float64(period)

		if avgLoss == 0 {
			out[i] = 100
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}
