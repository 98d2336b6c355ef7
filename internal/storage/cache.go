package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/google/uuid"
)

// Keys of the cache_state table.
const (
	KeyCurrentWeek  = "current_week"
	KeyLastLoadTime = "last_load_time"
	KeyDataHash     = "data_hash"
)

// GetCacheRecord reads the persisted cache record. Missing keys leave the
// corresponding field at its zero value.
func (s *SQLiteStorage) GetCacheRecord(ctx context.Context) (model.CacheRecord, error) {
	if err := validateContext(ctx); err != nil {
		return model.CacheRecord{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM cache_state`)
	if err != nil {
		return model.CacheRecord{}, fmt.Errorf("failed to read cache state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rec model.CacheRecord
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return model.CacheRecord{}, fmt.Errorf("failed to scan cache state: %w", err)
		}
		switch key {
		case KeyCurrentWeek:
			week, convErr := strconv.Atoi(value)
			if convErr != nil {
				return model.CacheRecord{}, fmt.Errorf("%w: current_week %q", common.ErrDatabaseCorrupted, value)
			}
			rec.CachedWeek = week
		case KeyLastLoadTime:
			at, parseErr := time.Parse(time.RFC3339Nano, value)
			if parseErr != nil {
				return model.CacheRecord{}, fmt.Errorf("%w: last_load_time %q", common.ErrDatabaseCorrupted, value)
			}
			rec.LastLoadTime = at
		case KeyDataHash:
			rec.Fingerprint = value
		}
	}
	if err := rows.Err(); err != nil {
		return model.CacheRecord{}, fmt.Errorf("failed to iterate cache state: %w", err)
	}

	return rec, nil
}

// CommitLoad writes week, fingerprint and load time in one transaction and
// appends the load to the history.
func (s *SQLiteStorage) CommitLoad(ctx context.Context, rec model.LoadRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLoadRecord(rec); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	values := map[string]string{
		KeyCurrentWeek:  strconv.Itoa(rec.Week),
		KeyLastLoadTime: rec.LoadedAt.Format(time.RFC3339Nano),
		KeyDataHash:     rec.Fingerprint,
	}
	for key, value := range values {
		if err := setKey(ctx, tx, key, value); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO load_history (id, week, fingerprint, course_count, reason, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Week, rec.Fingerprint, rec.Courses, rec.Reason, rec.LoadedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record load: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	return nil
}

// TouchLastLoad updates only the last load time.
func (s *SQLiteStorage) TouchLastLoad(ctx context.Context, at time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if at.IsZero() {
		return fmt.Errorf("%w: zero time", ErrInvalidLoadRecord)
	}
	return setKey(ctx, s.db, KeyLastLoadTime, at.Format(time.RFC3339Nano))
}

// ClearCache forgets the cached week, fingerprint and load time. The load
// history is kept.
func (s *SQLiteStorage) ClearCache(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_state`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// getValue returns a raw cache_state value.
func (s *SQLiteStorage) getValue(ctx context.Context, key string) (string, error) {
	if err := validateString(key, "key"); err != nil {
		return "", err
	}
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM cache_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setKey(ctx context.Context, db execer, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO cache_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
