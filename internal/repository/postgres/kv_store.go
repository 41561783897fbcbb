package postgres

import (
	"context"
	"database/sql"

	"deptevents/internal/domain"
)

type KVStore struct {
	DB *sql.DB
}

func NewKVStore(db *sql.DB) domain.KVStore {
	return &KVStore{
		DB: db,
	}
}

func (r *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT entry_value FROM kv_entries WHERE entry_key = $1`
	var value string
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (r *KVStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (entry_key, entry_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (entry_key) DO UPDATE
		SET entry_value = EXCLUDED.entry_value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, key, string(value))
	return err
}

func (r *KVStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE entry_key = $1`
	_, err := r.DB.ExecContext(ctx, query, key)
	return err
}
