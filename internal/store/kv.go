package store

import (
	"context"
	"database/sql"
)

// KV exposes the settings table as a byte-oriented key-value store. It is
// the durable storage behind the persisted session.
type KV struct {
	DB *sql.DB
}

// Load returns the bytes stored under key.
func (kv KV) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok, err := GetSetting(ctx, kv.DB, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	return []byte(value), true, nil
}

// Save stores value under key.
func (kv KV) Save(ctx context.Context, key string, value []byte) error {
	return PutSetting(ctx, kv.DB, key, string(value))
}

// Delete removes key.
func (kv KV) Delete(ctx context.Context, key string) error {
	return DeleteSetting(ctx, kv.DB, key)
}
