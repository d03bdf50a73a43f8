package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"rpi_trader/internal/models"
)

const defaultStatePath = "state.json"

// File: состояние в JSON-файле (по умолчанию state.json).
// Битый файл читается как пустой.
type File struct {
	path string
	log  *zap.Logger

	mu sync.Mutex
}

func NewFile(path string, log *zap.Logger) *File {
	if path == "" {
		path = defaultStatePath
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &File{path: path, log: log}
}

func (f *File) Path() string { return f.path }

func (f *File) Get(_ context.Context, key string) (float64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.loadLocked()
	if err != nil {
		return 0, false, err
	}
	v, ok := state[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key string, value float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.loadLocked()
	if err != nil {
		return err
	}
	state[key] = value
	return f.saveLocked(state)
}

// loadLocked: нет файла или он битый -> пустое состояние.
// Ошибка только если файл есть, но его нельзя прочитать.
func (f *File) loadLocked() (map[string]float64, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]float64{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	state := map[string]float64{}
	if len(b) == 0 {
		return state, nil
	}
	if err := sonic.Unmarshal(b, &state); err != nil {
		f.log.Warn("state file corrupted, treating as empty",
			zap.String("path", f.path),
			zap.Error(fmt.Errorf("%w: %v", models.ErrPersistenceCorruption, err)))
		return map[string]float64{}, nil
	}
	return state, nil
}

func (f *File) saveLocked(state map[string]float64) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	b, err := sonic.Marshal(state)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path) // атомарно
}
