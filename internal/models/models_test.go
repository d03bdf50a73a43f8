package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	ok := map[string]Mode{
		"0":    ModeEntrySearch,
		"1":    ModeManageBuy,
		"2":    ModeManageSell,
		" 2\n": ModeManageSell,
	}
	for raw, want := range ok {
		m, err := ParseMode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, m)
		assert.True(t, m.Valid())
	}

	for _, raw := range []string{"", "3", "01", "buy", "1 2"} {
		_, err := ParseMode(raw)
		assert.ErrorIs(t, err, ErrInvalidMode, raw)
	}
}

func TestModeStrings(t *testing.T) {
	assert.Equal(t, "1", ModeManageBuy.String())
	assert.Equal(t, "Management Mode (Active SELL Order)", ModeManageSell.Describe())
	assert.Equal(t, "Mode(7)", Mode(7).String())
	assert.False(t, Mode(7).Valid())
}

func TestSeries(t *testing.T) {
	s := Series{
		{High: 2, Low: 1, Close: 1.5},
		{High: 4, Low: 3, Close: 3.5},
		{High: 6, Low: 5, Close: 5.5},
	}
	assert.Equal(t, []float64{2, 4, 6}, s.Highs())
	assert.Equal(t, []float64{1, 3, 5}, s.Lows())
	assert.Equal(t, []float64{1.5, 3.5, 5.5}, s.Closes())

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, 5.5, last.Close)

	_, ok = Series(nil).Last()
	assert.False(t, ok)

	assert.Len(t, s.Tail(2), 2)
	assert.Equal(t, 3.5, s.Tail(2)[0].Close)
	assert.Len(t, s.Tail(10), 3)
	assert.Empty(t, s.Tail(0))
}

func TestSnapshotWith(t *testing.T) {
	var snap MarketSnapshot
	h1 := Series{{Close: 1}}
	next := snap.With(TF1h, h1)

	assert.Empty(t, snap.H1)
	assert.Equal(t, h1, next.Get(TF1h))
	assert.Nil(t, next.Get(Timeframe("4h")))
}

func TestVerdict(t *testing.T) {
	v := NotEnoughData()
	assert.False(t, v.Fired)
	assert.True(t, v.Insufficient)
	assert.True(t, v.HasMessage())
	assert.Equal(t, "bearish", DivergenceBearish.String())
}
