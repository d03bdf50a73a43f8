package service

import (
	"fmt"

	"rpi_trader/internal/models"
)

const (
	DefaultDivergenceWindow = 10
	minDivergenceCandles    = 15
)

// DivergenceVerdict: ответ детектора дивергенции.
type DivergenceVerdict struct {
	models.Verdict
	Kind models.DivergenceKind
	RSI  float64
}

// DivergenceDetector ищет RSI-дивергенцию на M30 для закрытия позиции.
// Состояния нет, режим работы детектору не известен.
type DivergenceDetector struct {
	period int
	window int
}

func NewDivergenceDetector(period, window int) *DivergenceDetector {
	if period <= 0 {
		period = DefaultRSILen
	}
	if window < 2 {
		window = DefaultDivergenceWindow
	}
	return &DivergenceDetector{period: period, window: window}
}

func (d *DivergenceDetector) minCandles() int {
	n := d.period + 1
	if d.window > n {
		n = d.window
	}
	if n < minDivergenceCandles {
		n = minDivergenceCandles
	}
	return n
}

func (d *DivergenceDetector) Check(m30 models.Series) DivergenceVerdict {
	if len(m30) < d.minCandles() {
		return DivergenceVerdict{Verdict: models.NotEnoughData()}
	}

	rsi := RSI(m30.Closes(), d.period)
	n := len(m30)
	price := m30[n-1].Close
	currRSI := rsi[n-1]

	// окно: позиции -window..-2, текущая свеча не входит
	from, to := n-d.window, n-1
	highs := m30[from:to].Highs()
	lows := m30[from:to].Lows()

	out := DivergenceVerdict{RSI: currRSI}

	// 1. Bearish: цена выше максимума окна, RSI ниже: закрыть BUY
	hiIdx := from + argMax(highs)
	if price > highs[hiIdx-from] && currRSI < rsi[hiIdx] {
		out.Kind = models.DivergenceBearish
		out.Fired = true
		out.Message = fmt.Sprintf(
			"⚠️ *ALERT*: Bearish RSI Divergence (M30) detected!\n"+
				"Price High: %.2f, RSI Lower: %.2f.\n"+
				"*Consider Closing BUY Order.*",
			price, currRSI,
		)
		return out
	}

	// 2. Bullish: цена ниже минимума окна, RSI выше: закрыть SELL
	loIdx := from + argMin(lows)
	if price < lows[loIdx-from] && currRSI > rsi[loIdx] {
		out.Kind = models.DivergenceBullish
		out.Fired = true
		out.Message = fmt.Sprintf(
			"⚠️ *ALERT*: Bullish RSI Divergence (M30) detected!\n"+
				"Price Low: %.2f, RSI Higher: %.2f.\n"+
				"*Consider Closing SELL Order.*",
			price, currRSI,
		)
	}
	return out
}

// AllowedIn: пропускает ли режим этот тип дивергенции.
func (v DivergenceVerdict) AllowedIn(mode models.Mode) bool {
	switch mode {
	case models.ModeManageBuy:
		return v.Kind == models.DivergenceBearish
	case models.ModeManageSell:
		return v.Kind == models.DivergenceBullish
	}
	return false
}
