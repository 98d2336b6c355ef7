package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/classwatch/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrInvalidLoadRecord = errors.New("invalid load record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateLoadRecord checks the fields CommitLoad persists.
func validateLoadRecord(rec model.LoadRecord) error {
	if rec.Week <= 0 {
		return fmt.Errorf("%w: week must be positive, got %d", ErrInvalidLoadRecord, rec.Week)
	}
	if rec.Fingerprint == "" {
		return fmt.Errorf("%w: missing fingerprint", ErrInvalidLoadRecord)
	}
	if rec.LoadedAt.IsZero() {
		return fmt.Errorf("%w: missing load time", ErrInvalidLoadRecord)
	}
	return nil
}
