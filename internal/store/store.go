package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/odysseus0/slh/internal/daypart"
	"github.com/odysseus0/slh/internal/model"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func validateDayPart(dp daypart.DayPart) error {
	if !dp.Valid() {
		return fmt.Errorf("day part %s: %w", dp, ErrInvalidInput)
	}
	return nil
}

func normalizeAnswer(answer string) (string, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("empty answer: %w", ErrInvalidInput)
	}
	return answer, nil
}

func scanGuess(scanner rowScanner) (Guess, error) {
	var g Guess
	var createdAt string
	if err := scanner.Scan(&g.ID, &g.Day, &g.Part, &g.Answer, &createdAt); err != nil {
		return Guess{}, err
	}
	if t, err := parseDBTime(createdAt); err == nil {
		g.CreatedAt = t
	}
	return g, nil
}

func scanSubmission(scanner rowScanner) (Submission, error) {
	var s Submission
	var verdict string
	var message sql.NullString
	var submittedAt string
	if err := scanner.Scan(&s.ID, &s.Day, &s.Part, &s.Answer, &verdict, &message, &submittedAt); err != nil {
		return Submission{}, err
	}
	s.Verdict = model.Verdict(verdict)
	s.Message = message.String
	if t, err := parseDBTime(submittedAt); err == nil {
		s.SubmittedAt = t
	}
	return s, nil
}
