package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rpi_trader/internal/notify"
)

type countingCycler struct {
	calls int
	err   error
}

func (c *countingCycler) RunCycle(context.Context) (CycleReport, error) {
	c.calls++
	return CycleReport{}, c.err
}

func at(hh, mm int) time.Time {
	return time.Date(2025, 1, 6, hh, mm, 0, 0, time.Local)
}

func TestLoopRunOnce(t *testing.T) {
	c := &countingCycler{err: errors.New("fetch failed")}
	rec := &notify.Recorder{}
	l := NewLoop(c, rec, 0, "23:30", zaptest.NewLogger(t))
	l.now = func() time.Time { return at(23, 45) }

	err := l.Run(context.Background())
	assert.EqualError(t, err, "fetch failed")
	assert.Equal(t, 1, c.calls)
	// в режиме cron время остановки не проверяется
	assert.Empty(t, rec.Messages())
}

func TestLoopStopsAtStopTime(t *testing.T) {
	c := &countingCycler{err: errors.New("transient")}
	rec := &notify.Recorder{}
	l := NewLoop(c, rec, 15*time.Minute, "23:30", zaptest.NewLogger(t))

	// первое чтение часов: старт цикла
	clock := []time.Time{at(23, 0), at(23, 0), at(23, 15), at(23, 30)}
	l.now = func() time.Time {
		now := clock[0]
		if len(clock) > 1 {
			clock = clock[1:]
		}
		return now
	}
	var slept []time.Duration
	l.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, 2, c.calls)
	assert.Equal(t, []time.Duration{15 * time.Minute, 15 * time.Minute}, slept)
	assert.Equal(t, []string{"⚠️ Bot received stop signal (23:30). Shutting down."}, rec.Messages())
}

func TestLoopCancelled(t *testing.T) {
	c := &countingCycler{}
	l := NewLoop(c, &notify.Recorder{}, time.Hour, "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	l.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleepCtx(ctx, d)
	}

	err := l.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, c.calls)
}

func TestLoopStartedAfterStopTimeRunsUntilNextDay(t *testing.T) {
	c := &countingCycler{}
	rec := &notify.Recorder{}
	l := NewLoop(c, rec, 15*time.Minute, "23:30", zaptest.NewLogger(t))

	nextDay := func(hh, mm int) time.Time { return at(hh, mm).AddDate(0, 0, 1) }
	clock := []time.Time{at(23, 45), at(23, 45), nextDay(0, 0), nextDay(23, 29), nextDay(23, 30)}
	l.now = func() time.Time {
		now := clock[0]
		if len(clock) > 1 {
			clock = clock[1:]
		}
		return now
	}
	l.sleep = func(context.Context, time.Duration) error { return nil }

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, 3, c.calls)
	assert.Len(t, rec.Messages(), 1)
}

func TestStopDeadline(t *testing.T) {
	l := &Loop{stopAt: "23:30"}

	d, ok := l.stopDeadline(at(9, 0))
	require.True(t, ok)
	assert.Equal(t, at(23, 30), d)

	d, ok = l.stopDeadline(at(23, 29))
	require.True(t, ok)
	assert.Equal(t, at(23, 30), d)

	d, ok = l.stopDeadline(at(23, 30))
	require.True(t, ok)
	assert.Equal(t, at(23, 30).AddDate(0, 0, 1), d)

	d, ok = l.stopDeadline(at(23, 45))
	require.True(t, ok)
	assert.Equal(t, at(23, 30).AddDate(0, 0, 1), d)

	_, ok = (&Loop{}).stopDeadline(at(23, 59))
	assert.False(t, ok)
	_, ok = (&Loop{stopAt: "late"}).stopDeadline(at(23, 59))
	assert.False(t, ok)
}
