package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"serene/internal/adapters/storage"
)

// updatedLayout is fixed-width so updated_at compares correctly as text.
const updatedLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore implements Store on the record table.
type SQLiteStore struct {
	db  storage.SQLDB
	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a store over a migrated database.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, ns, key string) ([]byte, bool, error) {
	if err := checkKey(ns, key); err != nil {
		return nil, false, err
	}
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM record WHERE namespace = ? AND key = ?`, ns, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get record[%s/%s]: %w", ns, key, err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQLiteStore) Set(ctx context.Context, ns, key string, value []byte) error {
	if err := checkKey(ns, key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO record (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, ns, key, value, s.now().UTC().Format(updatedLayout))
	if err != nil {
		return fmt.Errorf("set record[%s/%s]: %w", ns, key, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, ns, key string) error {
	if err := checkKey(ns, key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM record WHERE namespace = ? AND key = ?`, ns, key); err != nil {
		return fmt.Errorf("delete record[%s/%s]: %w", ns, key, err)
	}
	return nil
}

// Keys implements Store.
func (s *SQLiteStore) Keys(ctx context.Context, ns string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM record WHERE namespace = ? ORDER BY key`, ns)
	if err != nil {
		return nil, fmt.Errorf("list record keys[%s]: %w", ns, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan record key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate record keys: %w", err)
	}
	return keys, nil
}

// Prune implements Store.
func (s *SQLiteStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM record WHERE namespace <> ? AND updated_at < ?`,
		AppNamespace, before.UTC().Format(updatedLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("prune records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune records: %w", err)
	}
	return n, nil
}
