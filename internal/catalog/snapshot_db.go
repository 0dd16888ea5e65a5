package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresSnapshotStore keeps the catalog as one upserted row. The table:
//
//	CREATE TABLE IF NOT EXISTS catalog_snapshots (
//	    slot TEXT PRIMARY KEY,
//	    data JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresSnapshotStore struct {
	db   *sql.DB
	slot string
}

func NewPostgresSnapshotStore(db *sql.DB, slot string) *PostgresSnapshotStore {
	if slot == "" {
		slot = DefaultSnapshotKey
	}
	return &PostgresSnapshotStore{db: db, slot: slot}
}

func (s *PostgresSnapshotStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresSnapshotStore) Save(ctx context.Context, products []Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO catalog_snapshots (slot, data, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (slot) DO UPDATE
			SET data = EXCLUDED.data, updated_at = now()
		`, s.slot, data)
		return err
	})
}

func (s *PostgresSnapshotStore) Load(ctx context.Context) ([]Product, bool, error) {
	var data []byte

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT data
			FROM catalog_snapshots
			WHERE slot = $1
		`, s.slot).Scan(&data)
	})

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, nil
	}
	return products, true, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
