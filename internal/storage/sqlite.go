package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/scamshield/scamshield/pkg/progress"
)

// SQLiteProgressStore implements ProgressStore on a local SQLite file. It is
// the on-device store used by the console client, where no Redis is running.
type SQLiteProgressStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure SQLiteProgressStore implements ProgressStore interface
var _ ProgressStore = (*SQLiteProgressStore)(nil)

// NewSQLiteProgressStore opens (or creates) the database file and runs the
// schema migration.
func NewSQLiteProgressStore(path string, logger *slog.Logger) (*SQLiteProgressStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// Single connection avoids write contention for our scale
	db.SetMaxOpenConns(1)

	s := &SQLiteProgressStore{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate db: %w", err)
	}
	return s, nil
}

func (s *SQLiteProgressStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS device_progress (
			device_id  TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`)
	return err
}

func (s *SQLiteProgressStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

func (s *SQLiteProgressStore) LoadProgress(ctx context.Context, deviceID string) (*progress.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM device_progress WHERE device_id = ?`, deviceID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to load progress", "device_id", deviceID, "error", err)
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	var rec progress.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		// Malformed persisted data is treated as absent, not fatal.
		s.logger.Warn("Discarding malformed progress record", "device_id", deviceID, "error", err)
		return nil, nil
	}
	rec.Normalize()
	return &rec, nil
}

func (s *SQLiteProgressStore) SaveProgress(ctx context.Context, deviceID string, rec *progress.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO device_progress (device_id, data, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(device_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		deviceID, string(data))
	if err != nil {
		s.logger.Error("Failed to save progress", "device_id", deviceID, "error", err)
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (s *SQLiteProgressStore) DeleteProgress(ctx context.Context, deviceID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM device_progress WHERE device_id = ?`, deviceID)
	if err != nil {
		s.logger.Error("Failed to delete progress", "device_id", deviceID, "error", err)
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}

func (s *SQLiteProgressStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close sqlite db", "error", err)
		return err
	}
	return nil
}
