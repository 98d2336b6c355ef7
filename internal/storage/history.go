package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/classwatch/internal/model"
)

// ListLoads returns the most recent loads, newest first. A non-positive
// limit returns every entry.
func (s *SQLiteStorage) ListLoads(ctx context.Context, limit int) ([]model.LoadRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, week, fingerprint, course_count, reason, loaded_at
		FROM load_history ORDER BY loaded_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query load history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var loads []model.LoadRecord
	for rows.Next() {
		var rec model.LoadRecord
		if err := rows.Scan(&rec.ID, &rec.Week, &rec.Fingerprint, &rec.Courses, &rec.Reason, &rec.LoadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan load history: %w", err)
		}
		loads = append(loads, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate load history: %w", err)
	}
	return loads, nil
}
