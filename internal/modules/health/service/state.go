package service

import (
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	lastCycleUnix atomic.Int64 // unix seconds
	lastMode      atomic.Int64 // -1 пока не было валидного цикла
	lastResult    atomic.Value // string
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	s.lastMode.Store(-1)
	s.lastResult.Store("")
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

// TouchCycle фиксирует завершённый цикл; mode < 0 оставляет прежний режим.
func (s *State) TouchCycle(t time.Time, mode int, result string) {
	s.lastCycleUnix.Store(t.Unix())
	if mode >= 0 {
		s.lastMode.Store(int64(mode))
	}
	s.lastResult.Store(result)
}

func (s *State) LastCycle() time.Time {
	u := s.lastCycleUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) LastMode() int         { return int(s.lastMode.Load()) }
func (s *State) LastResult() string    { return s.lastResult.Load().(string) }
func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
