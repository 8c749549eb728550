package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/odysseus0/slh/internal/daypart"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// wrapNotFound turns a missing row for dp into ErrNotFound.
func wrapNotFound(entity string, dp daypart.DayPart, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no %s for %s: %w", entity, dp, ErrNotFound)
	}
	return err
}
