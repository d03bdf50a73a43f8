package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"rpi_trader/pkg/db"
)

const (
	createStateTable = `CREATE TABLE IF NOT EXISTS indicator_state (
	key        TEXT PRIMARY KEY,
	value      DOUBLE PRECISION NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	selectStateValue = `SELECT value FROM indicator_state WHERE key = $1`
	upsertStateValue = `INSERT INTO indicator_state (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// Postgres: состояние в таблице indicator_state.
type Postgres struct {
	db *db.PgTxManager
}

// NewPostgres создаёт таблицу, если её ещё нет.
func NewPostgres(ctx context.Context, m *db.PgTxManager) (*Postgres, error) {
	if _, err := m.Conn().Exec(ctx, createStateTable); err != nil {
		return nil, fmt.Errorf("pg.NewPostgres: %w", err)
	}
	return &Postgres{db: m}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) (value float64, found bool, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Get %s: %w", key, err)
		}
	}()

	err = p.db.Conn().QueryRow(ctx, selectStateValue, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value float64) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Set %s: %w", key, err)
		}
	}()

	return p.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, upsertStateValue, key, value)
		return err
	})
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
