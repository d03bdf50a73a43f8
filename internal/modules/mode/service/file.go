package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"rpi_trader/internal/models"
)

const DefaultPath = "trigger.txt"

// FileStore: флаг режима в одном текстовом файле.
// Пишет CLI-переключатель, читает бот в начале каждого цикла.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// Read возвращает содержимое без пробелов. Нет файла: создаём с "0";
// пустой файл читается как "0". Разбор режима делает вызывающий.
func (s *FileStore) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		if err := s.writeLocked(models.ModeEntrySearch.String()); err != nil {
			return "", err
		}
		return models.ModeEntrySearch.String(), nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "read mode file %s", s.path)
	}

	raw := strings.TrimSpace(string(b))
	if raw == "" {
		return models.ModeEntrySearch.String(), nil
	}
	return raw, nil
}

// Write заменяет файл целиком через tmp+rename.
func (s *FileStore) Write(ctx context.Context, m models.Mode) error {
	if !m.Valid() {
		return errors.Wrapf(models.ErrInvalidMode, "write %d", int(m))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(m.String())
}

func (s *FileStore) writeLocked(content string) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "mkdir mode dir")
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return errors.Wrap(err, "write tmp mode file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "rename mode file")
	}
	return nil
}
