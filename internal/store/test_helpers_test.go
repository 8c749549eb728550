package store

import (
	"path/filepath"
	"testing"

	"github.com/odysseus0/slh/internal/daypart"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "progress.db")
	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewStore(db)
}

func dp(day, part int) daypart.DayPart {
	return daypart.DayPart{Day: day, Part: part}
}
