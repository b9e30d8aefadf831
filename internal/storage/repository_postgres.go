package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	createTableQuery = `
		CREATE TABLE IF NOT EXISTS local_storage (
			client_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (client_id, key)
		)
	`
	getItemQuery = `SELECT value FROM local_storage WHERE client_id = $1 AND key = $2`
	setItemQuery = `
		INSERT INTO local_storage (client_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (client_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	removeItemsQuery = `DELETE FROM local_storage WHERE client_id = $1 AND key = ANY($2)`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Migrate creates the backing table when it does not exist yet.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createTableQuery)
	return err
}

func (r *PostgresRepository) GetItem(ctx context.Context, ns, key string) (string, bool, error) {
	var value string
	if err := r.db.QueryRowContext(ctx, getItemQuery, ns, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *PostgresRepository) SetItem(ctx context.Context, ns, key, value string) error {
	_, err := r.db.ExecContext(ctx, setItemQuery, ns, key, value, time.Now().UTC())
	return err
}

func (r *PostgresRepository) RemoveItem(ctx context.Context, ns string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, removeItemsQuery, ns, pq.Array(keys))
	return err
}
