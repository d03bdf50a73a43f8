package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpi_trader/internal/models"
)

func TestSRFinderLevels(t *testing.T) {
	h1 := models.Series{
		{High: 20, Low: 10, Close: 15},
		{High: 25, Low: 5, Close: 15},
		{High: 18, Low: 15, Close: 16},
	}

	lv, ok := NewSRFinder(0).Levels(h1)
	require.True(t, ok)
	assert.Equal(t, 5.0, lv.Support)
	assert.Equal(t, 25.0, lv.Resistance)
	assert.Equal(t, 3, lv.Candles)

	v := NewSRFinder(0).Check(h1)
	assert.True(t, v.Fired)
	assert.Contains(t, v.Message, "Resistance: `25.00`")
	assert.Contains(t, v.Message, "Support: `5.00`")
}

func TestSRFinderLookback(t *testing.T) {
	h1 := flat(150, 110, 100, 105)
	h1[10].High = 500 // за пределами последних 100 свечей
	h1[10].Low = 1
	h1[120].High = 130

	lv, ok := NewSRFinder(DefaultSRLookback).Levels(h1)
	require.True(t, ok)
	assert.Equal(t, 130.0, lv.Resistance)
	assert.Equal(t, 100.0, lv.Support)
	assert.Equal(t, DefaultSRLookback, lv.Candles)
}

func TestSRFinderEmpty(t *testing.T) {
	_, ok := NewSRFinder(0).Levels(nil)
	assert.False(t, ok)

	v := NewSRFinder(0).Check(nil)
	assert.False(t, v.Fired)
	assert.Empty(t, v.Message)
}
