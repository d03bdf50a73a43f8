package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rpi_trader/internal/models"
)

// m15Cross: Tenkan и Kijun равны на предпоследней свече, последняя даёт пересечение.
// Свеча 20 держит более широкий диапазон с тем же средним, поэтому Kijun отстаёт.
func m15Cross(up bool) models.Series {
	s := flat(40, 110, 108, 109)
	s[20].High, s[20].Low = 112, 106
	if up {
		return withLast(s, 130, 108, 129)
	}
	return withLast(s, 110, 90, 91)
}

func buySnapshot() models.MarketSnapshot {
	return models.MarketSnapshot{
		H1:  withLast(flat(80, 110, 108, 109), 131, 129, 130),
		M30: withLast(flat(30, 110, 108, 109), 131, 129, 130),
		M15: m15Cross(true),
	}
}

func sellSnapshot() models.MarketSnapshot {
	return models.MarketSnapshot{
		H1:  withLast(flat(80, 110, 108, 109), 91, 89, 90),
		M30: withLast(flat(30, 110, 108, 109), 91, 89, 90),
		M15: m15Cross(false),
	}
}

func TestEntryFinderBuy(t *testing.T) {
	v := NewEntryFinder().Check(buySnapshot())

	assert.Equal(t, EntryConditions{H1Buy: true, M30Buy: true, M15Buy: true}, v.Conditions)
	assert.True(t, v.Fired)
	assert.True(t, v.Buy)
	assert.False(t, v.Sell)
	assert.Equal(t, models.SideBuy, v.Side())
	assert.Contains(t, v.Message, "BUY ENTRY SIGNAL DETECTED")
	assert.Contains(t, v.Message, "H1: Price is above Kumo Cloud.")
	assert.Contains(t, v.Message, "M30: Chikou Span > Past High.")
	assert.Contains(t, v.Message, "M15: Tenkan crossed UP Kijun.")
	assert.NotContains(t, v.Message, "SELL")
}

func TestEntryFinderSell(t *testing.T) {
	v := NewEntryFinder().Check(sellSnapshot())

	assert.Equal(t, EntryConditions{H1Sell: true, M30Sell: true, M15Sell: true}, v.Conditions)
	assert.True(t, v.Fired)
	assert.Equal(t, models.SideSell, v.Side())
	assert.Contains(t, v.Message, "SELL ENTRY SIGNAL DETECTED")
	assert.Contains(t, v.Message, "M15: Tenkan crossed DOWN Kijun.")
}

func TestEntryFinderTwoOfThree(t *testing.T) {
	cases := map[string]func(s *models.MarketSnapshot){
		"no h1": func(s *models.MarketSnapshot) {
			s.H1 = flat(80, 110, 108, 109)
		},
		"no m30": func(s *models.MarketSnapshot) {
			s.M30 = flat(30, 110, 108, 109)
		},
		"no m15 cross": func(s *models.MarketSnapshot) {
			s.M15 = flat(40, 110, 108, 109)
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			snap := buySnapshot()
			mutate(&snap)

			v := NewEntryFinder().Check(snap)
			assert.False(t, v.Fired)
			assert.False(t, v.Buy)
			assert.False(t, v.HasMessage())
			assert.Equal(t, models.SideNone, v.Side())
		})
	}
}

func TestEntryFinderShortSeries(t *testing.T) {
	assert.NotPanics(t, func() {
		v := NewEntryFinder().Check(models.MarketSnapshot{})
		assert.False(t, v.Fired)
		assert.Empty(t, v.Message)
	})

	snap := buySnapshot()
	snap.M30 = snap.M30.Tail(ChikouLag - 1)
	snap.H1 = snap.H1.Tail(60)
	v := NewEntryFinder().Check(snap)
	assert.False(t, v.Conditions.M30Buy)
	assert.False(t, v.Conditions.H1Buy)
	assert.False(t, v.Fired)
}
