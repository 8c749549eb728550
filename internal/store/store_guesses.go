package store

import (
	"context"
	"time"

	"github.com/odysseus0/slh/internal/daypart"
)

// AddGuess records an answer produced for dp. It reports whether the answer
// had not been seen before for that day part.
func (s *Store) AddGuess(ctx context.Context, dp daypart.DayPart, answer string) (bool, error) {
	if err := validateDayPart(dp); err != nil {
		return false, err
	}
	answer, err := normalizeAnswer(answer)
	if err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO guesses(day, part, answer, created_at)
		VALUES (?, ?, ?, ?)
	`, dp.Day, dp.Part, answer, timeToDBString(time.Now()))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Store) ListGuesses(ctx context.Context, dp daypart.DayPart) ([]Guess, error) {
	if err := validateDayPart(dp); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day, part, answer, created_at
		FROM guesses
		WHERE day = ? AND part = ?
		ORDER BY id ASC
	`, dp.Day, dp.Part)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Guess
	for rows.Next() {
		g, err := scanGuess(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
