package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"expenso/internal/core"
	"expenso/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Persister = (*SQLitePersister)(nil)

// SQLitePersister keeps the snapshot as one row of the kv_store table.
type SQLitePersister struct {
	db  *sql.DB
	key string
}

// NewSQLitePersister opens (creating if needed) the database at dbPath and
// migrates it.
func NewSQLitePersister(dbPath string) (*SQLitePersister, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLitePersister{db: db, key: core.StorageKey}, nil
}

func (p *SQLitePersister) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *SQLitePersister) Load(ctx context.Context) (core.Snapshot, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, p.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return core.InitialSnapshot(), nil
	}
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read %s: %w", p.key, err)
	}
	return Decode([]byte(value))
}

func (p *SQLitePersister) Save(ctx context.Context, snap core.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		p.key, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write %s: %w", p.key, err)
	}

	slog.DebugContext(ctx, "State saved to SQLite", "key", p.key, "bytes", len(data))
	return nil
}

// Ping reports whether the database is reachable.
func (p *SQLitePersister) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
