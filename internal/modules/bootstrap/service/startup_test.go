package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rpi_trader/internal/notify"
)

type fakePoller struct {
	started int
	stopped int
	handler notify.CommandHandler
	err     error
}

func (p *fakePoller) Start(_ context.Context, h notify.CommandHandler) error {
	if p.err != nil {
		return p.err
	}
	p.started++
	p.handler = h
	return nil
}

func (p *fakePoller) Stop() { p.stopped++ }

func echo(_ context.Context, cmd, args string) string { return cmd + " " + args }

func TestStartupAnnouncesAndPolls(t *testing.T) {
	rec := &notify.Recorder{}
	p := &fakePoller{}
	s := NewStartup(rec, p, "XAU/USD", true, true, zaptest.NewLogger(t))

	s.Run(context.Background(), echo)
	assert.Equal(t, []string{"🤖 Bot started. Monitoring XAU/USD..."}, rec.Messages())
	require.Equal(t, 1, p.started)
	require.NotNil(t, p.handler)
	assert.Equal(t, "mode 1", p.handler(context.Background(), "mode", "1"))

	s.Stop()
	assert.Equal(t, 1, p.stopped)
}

func TestStartupQuiet(t *testing.T) {
	rec := &notify.Recorder{}
	p := &fakePoller{}
	s := NewStartup(rec, p, "XAU/USD", false, false, nil)

	s.Run(context.Background(), echo)
	s.Stop()
	assert.Empty(t, rec.Messages())
	assert.Zero(t, p.started)
	assert.Zero(t, p.stopped)
}

func TestStartupErrorsAreNotFatal(t *testing.T) {
	rec := &notify.Recorder{Err: errors.New("telegram down")}
	p := &fakePoller{err: errors.New("conflict")}
	s := NewStartup(rec, p, "XAU/USD", true, true, zaptest.NewLogger(t))

	assert.NotPanics(t, func() { s.Run(context.Background(), echo) })
	assert.Empty(t, rec.Messages())
	assert.Zero(t, p.started)
}

func TestStartupWithoutPoller(t *testing.T) {
	rec := &notify.Recorder{}
	s := NewStartup(rec, nil, "EUR/USD", true, true, nil)

	assert.NotPanics(t, func() {
		s.Run(context.Background(), echo)
		s.Stop()
	})
	assert.Equal(t, []string{StartupMessage("EUR/USD")}, rec.Messages())
}
