package models

import "time"

// Timeframe: интервал свечей в терминах TwelveData.
type Timeframe string

const (
	TF15m Timeframe = "15min"
	TF30m Timeframe = "30min"
	TF1h  Timeframe = "1h"
)

// Timeframes: все таймфреймы, которые входят в снапшот.
var Timeframes = []Timeframe{TF15m, TF30m, TF1h}

// Candle: одна OHLC свеча. Time только для логов, алгоритмы смотрят на позицию.
type Candle struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Series: свечи одного таймфрейма, от старой к новой.
type Series []Candle

func (s Series) Highs() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.High
	}
	return out
}

func (s Series) Lows() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Low
	}
	return out
}

func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Close
	}
	return out
}

// Last возвращает последнюю свечу; ok=false для пустой серии.
func (s Series) Last() (Candle, bool) {
	if len(s) == 0 {
		return Candle{}, false
	}
	return s[len(s)-1], true
}

// Tail: последние n свечей (или все, если их меньше).
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return nil
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// MarketSnapshot: три таймфрейма одного цикла. Собирается целиком или никак.
type MarketSnapshot struct {
	M15 Series
	M30 Series
	H1  Series
}

// Get отдаёт серию по таймфрейму.
func (m MarketSnapshot) Get(tf Timeframe) Series {
	switch tf {
	case TF15m:
		return m.M15
	case TF30m:
		return m.M30
	case TF1h:
		return m.H1
	default:
		return nil
	}
}

// With возвращает копию снапшота с заменённой серией.
func (m MarketSnapshot) With(tf Timeframe, s Series) MarketSnapshot {
	switch tf {
	case TF15m:
		m.M15 = s
	case TF30m:
		m.M30 = s
	case TF1h:
		m.H1 = s
	}
	return m
}
