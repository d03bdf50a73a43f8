package service

import (
	"strings"

	"rpi_trader/internal/models"
)

// ChikouLag: на сколько свечей назад смотрит Chikou (26 + текущая).
const ChikouLag = 27

// EntryConditions: шесть подусловий входа по трём таймфреймам.
type EntryConditions struct {
	H1Buy, H1Sell   bool
	M30Buy, M30Sell bool
	M15Buy, M15Sell bool
}

// EntryVerdict: ответ EntryFinder.
type EntryVerdict struct {
	models.Verdict
	Buy        bool
	Sell       bool
	Conditions EntryConditions
}

// EntryFinder: вход по совпадению Ichimoku на H1/M30/M15.
type EntryFinder struct{}

func NewEntryFinder() *EntryFinder { return &EntryFinder{} }

func (f *EntryFinder) Check(snap models.MarketSnapshot) EntryVerdict {
	var (
		cond      EntryConditions
		buyLines  []string
		sellLines []string
	)

	// H1: цена относительно облака
	h1 := ComputeIchimoku(snap.H1)
	if c, ok := snap.H1.Last(); ok {
		spanA, okA := Last(h1.SpanA)
		spanB, okB := Last(h1.SpanB)
		if okA && okB {
			cond.H1Buy = c.Close > spanA && c.Close > spanB
			cond.H1Sell = c.Close < spanA && c.Close < spanB
		}
	}
	if cond.H1Buy {
		buyLines = append(buyLines, "✅ H1: Price is above Kumo Cloud.")
	}
	if cond.H1Sell {
		sellLines = append(sellLines, "✅ H1: Price is below Kumo Cloud.")
	}

	// M30: Chikou против цены 26 свечей назад
	if len(snap.M30) >= ChikouLag {
		curr := snap.M30[len(snap.M30)-1].Close
		past := snap.M30[len(snap.M30)-ChikouLag]
		if curr >= past.High {
			cond.M30Buy = true
			buyLines = append(buyLines, "✅ M30: Chikou Span > Past High.")
		}
		if curr <= past.Low {
			cond.M30Sell = true
			sellLines = append(sellLines, "✅ M30: Chikou Span < Past Low.")
		}
	}

	// M15: пересечение Tenkan/Kijun на последней свече
	if len(snap.M15) >= 2 {
		m15 := ComputeIchimoku(snap.M15)
		tPrev, kPrev := m15.Tenkan[len(m15.Tenkan)-2], m15.Kijun[len(m15.Kijun)-2]
		tCurr, kCurr := m15.Tenkan[len(m15.Tenkan)-1], m15.Kijun[len(m15.Kijun)-1]

		// NaN в любом сравнении даёт false
		if tPrev <= kPrev && tCurr > kCurr {
			cond.M15Buy = true
			buyLines = append(buyLines, "✅ M15: Tenkan crossed UP Kijun.")
		}
		if tPrev >= kPrev && tCurr < kCurr {
			cond.M15Sell = true
			sellLines = append(sellLines, "✅ M15: Tenkan crossed DOWN Kijun.")
		}
	}

	out := EntryVerdict{
		Buy:        cond.H1Buy && cond.M30Buy && cond.M15Buy,
		Sell:       cond.H1Sell && cond.M30Sell && cond.M15Sell,
		Conditions: cond,
	}
	if !out.Buy && !out.Sell {
		// частичное совпадение не сигналит, строки выбрасываем
		return out
	}

	var parts []string
	if out.Buy {
		parts = append(parts, "🚀 *BUY ENTRY SIGNAL DETECTED* (Ichimoku)\n"+strings.Join(buyLines, "\n"))
	}
	if out.Sell {
		// оба сразу: боковик, отдаём как информацию
		parts = append(parts, "🔻 *SELL ENTRY SIGNAL DETECTED* (Ichimoku)\n"+strings.Join(sellLines, "\n"))
	}
	out.Fired = true
	out.Message = strings.Join(parts, "\n\n")
	return out
}

// Side: сторона входа; для одновременного BUY+SELL возвращает SideNone.
func (v EntryVerdict) Side() models.Side {
	switch {
	case v.Buy && !v.Sell:
		return models.SideBuy
	case v.Sell && !v.Buy:
		return models.SideSell
	}
	return models.SideNone
}
