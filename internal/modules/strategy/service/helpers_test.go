package service

import (
	"time"

	"rpi_trader/internal/models"
)

var t0 = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func flat(n int, high, low, close float64) models.Series {
	s := make(models.Series, n)
	for i := range s {
		s[i] = models.Candle{Time: t0.Add(time.Duration(i) * time.Hour), Open: close, High: high, Low: low, Close: close}
	}
	return s
}

func fromCloses(closes []float64, spread float64) models.Series {
	s := make(models.Series, len(closes))
	for i, c := range closes {
		s[i] = models.Candle{Time: t0.Add(time.Duration(i) * 30 * time.Minute), Open: c, High: c + spread, Low: c - spread, Close: c}
	}
	return s
}

func withLast(s models.Series, high, low, close float64) models.Series {
	out := append(models.Series(nil), s...)
	last := &out[len(out)-1]
	last.High, last.Low, last.Close = high, low, close
	return out
}
