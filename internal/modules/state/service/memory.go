package service

import (
	"context"
	"sync"
)

// Memory: хранилище в памяти, для тестов и dry-run.
type Memory struct {
	mu   sync.RWMutex
	data map[string]float64
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]float64)}
}

func (m *Memory) Get(_ context.Context, key string) (float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
