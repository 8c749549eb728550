package store

import (
	"context"
	"fmt"

	"github.com/odysseus0/slh/internal/daypart"
	"github.com/odysseus0/slh/internal/model"
)

const submissionColumns = `id, day, part, answer, verdict, message, submitted_at`

func (s *Store) RecordSubmission(ctx context.Context, sub Submission) (Submission, error) {
	if err := validateDayPart(daypart.DayPart{Day: sub.Day, Part: sub.Part}); err != nil {
		return Submission{}, err
	}
	answer, err := normalizeAnswer(sub.Answer)
	if err != nil {
		return Submission{}, err
	}
	sub.Answer = answer
	if sub.Verdict == "" {
		return Submission{}, fmt.Errorf("empty verdict: %w", ErrInvalidInput)
	}

	ts := timeToDBString(sub.SubmittedAt)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions(day, part, answer, verdict, message, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sub.Day, sub.Part, sub.Answer, string(sub.Verdict), sub.Message, ts)
	if err != nil {
		return Submission{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Submission{}, err
	}
	sub.ID = id
	if t, err := parseDBTime(ts); err == nil {
		sub.SubmittedAt = t
	}
	return sub, nil
}

func (s *Store) LastSubmission(ctx context.Context, dp daypart.DayPart) (Submission, error) {
	if err := validateDayPart(dp); err != nil {
		return Submission{}, err
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE day = ? AND part = ?
		ORDER BY submitted_at DESC, id DESC
		LIMIT 1
	`, dp.Day, dp.Part)
	sub, err := scanSubmission(row)
	if err != nil {
		return Submission{}, wrapNotFound("submission", dp, err)
	}
	return sub, nil
}

func (s *Store) ListSubmissions(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		ORDER BY submitted_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// HasRightAnswer reports whether a submission for dp was ever accepted.
func (s *Store) HasRightAnswer(ctx context.Context, dp daypart.DayPart) (bool, error) {
	if err := validateDayPart(dp); err != nil {
		return false, err
	}
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM submissions WHERE day = ? AND part = ? AND verdict = ?
	`, dp.Day, dp.Part, string(model.VerdictRight)).Scan(&n)
	return n > 0, err
}
