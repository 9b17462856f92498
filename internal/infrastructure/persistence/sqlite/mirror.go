// Package sqlite implements the durable mirror: a small key/value table
// holding the handful of onboarding keys that must survive a reload of
// the hosting shell.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Config holds mirror database configuration
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Mirror is the sqlite-backed key/value mirror.
type Mirror struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (and if needed creates) the mirror database.
func Open(cfg Config, logger *zap.Logger) (*Mirror, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create mirror directory: %w", err)
		}
	}

	// WAL keeps reads cheap while the shell writes on navigation changes
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", cfg.Path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mirror database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping mirror database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS onboarding_mirror (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create mirror table: %w", err)
	}

	logger.Info("Mirror database ready", zap.String("path", cfg.Path))
	return &Mirror{db: db, logger: logger}, nil
}

// Put upserts a mirrored key.
func (m *Mirror) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO onboarding_mirror (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := m.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("mirror put %s: %w", key, err)
	}
	return nil
}

// Get reads a mirrored key. A missing key is not an error.
func (m *Mirror) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := m.db.QueryRowContext(ctx, "SELECT value FROM onboarding_mirror WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mirror get %s: %w", key, err)
	}
	return value, true, nil
}

// Delete removes a mirrored key. Deleting an absent key is a no-op.
func (m *Mirror) Delete(ctx context.Context, key string) error {
	if _, err := m.db.ExecContext(ctx, "DELETE FROM onboarding_mirror WHERE key = ?", key); err != nil {
		return fmt.Errorf("mirror delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (m *Mirror) Close() error {
	return m.db.Close()
}
