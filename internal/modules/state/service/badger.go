package service

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"rpi_trader/internal/models"
)

// Badger: состояние во встроенной badger-базе.
// Значение хранится как 8 байт IEEE-754 big-endian.
type Badger struct {
	db  *badger.DB
	log *zap.Logger
}

// OpenBadger открывает базу в каталоге path; пустой path: in-memory.
func OpenBadger(path string, log *zap.Logger) (*Badger, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, fmt.Errorf("create badger dir %s: %w", path, err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil).WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Badger{db: db, log: log}, nil
}

func (b *Badger) Get(_ context.Context, key string) (float64, bool, error) {
	var (
		v     float64
		found bool
	)
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				b.log.Warn("badger state value corrupted, treating as absent",
					zap.String("key", key),
					zap.Int("len", len(val)),
					zap.Error(models.ErrPersistenceCorruption))
				return nil
			}
			v = math.Float64frombits(binary.BigEndian.Uint64(val))
			found = true
			return nil
		})
	})
	if err != nil {
		return 0, false, fmt.Errorf("badger get %s: %w", key, err)
	}
	return v, found, nil
}

func (b *Badger) Set(_ context.Context, key string, value float64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(value))
	if err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), buf)
	}); err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}
