package store

import (
	"context"
	"fmt"
	"time"

	"github.com/odysseus0/slh/internal/daypart"
	"github.com/odysseus0/slh/internal/model"
)

// ReplaceStars overwrites the star count of every day with the calendar
// snapshot. stars must hold one entry per day, each between 0 and 2.
func (s *Store) ReplaceStars(ctx context.Context, stars []int) (err error) {
	if len(stars) != daypart.LastDay {
		return fmt.Errorf("got %d star entries, want %d: %w", len(stars), daypart.LastDay, ErrInvalidInput)
	}
	for i, n := range stars {
		if n < 0 || n > daypart.LastPart {
			return fmt.Errorf("day %d has %d stars: %w", i+1, n, ErrInvalidInput)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stars(day, count, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET count = excluded.count, updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := timeToDBString(time.Now())
	for i, n := range stars {
		if _, err = stmt.ExecContext(ctx, i+1, n, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Stars returns the last recorded star count per day, index 0 being day 1.
// Days never recorded count as zero.
func (s *Store) Stars(ctx context.Context) ([]int, error) {
	out := make([]int, daypart.LastDay)
	rows, err := s.db.QueryContext(ctx, `SELECT day, count FROM stars ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var day, count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		if day >= 1 && day <= daypart.LastDay {
			out[day-1] = count
		}
	}
	return out, rows.Err()
}

func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	var st Stats
	var starsUpdated, lastSubmitted *string
	if err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE((SELECT SUM(count) FROM stars), 0),
			COALESCE((SELECT COUNT(*) FROM stars WHERE count = 2), 0),
			(SELECT COUNT(*) FROM guesses),
			(SELECT COUNT(*) FROM submissions),
			(SELECT COUNT(*) FROM submissions WHERE verdict = ?),
			(SELECT MAX(updated_at) FROM stars),
			(SELECT MAX(submitted_at) FROM submissions)
	`, string(model.VerdictRight)).Scan(
		&st.Stars,
		&st.CompletedDays,
		&st.Guesses,
		&st.Submissions,
		&st.Right,
		&starsUpdated,
		&lastSubmitted,
	); err != nil {
		return Stats{}, err
	}
	st.StarsUpdatedAt = parseOptionalDBTime(starsUpdated)
	st.LastSubmittedAt = parseOptionalDBTime(lastSubmitted)
	return st, nil
}

// DayStatuses joins stars and guess counts for every day.
func (s *Store) DayStatuses(ctx context.Context) ([]DayStatus, error) {
	stars, err := s.Stars(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DayStatus, daypart.LastDay)
	for i := range out {
		out[i] = DayStatus{Day: i + 1, Stars: stars[i]}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT day, COUNT(*) FROM guesses GROUP BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var day, n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		if day >= 1 && day <= daypart.LastDay {
			out[day-1].Guesses = n
		}
	}
	return out, rows.Err()
}
