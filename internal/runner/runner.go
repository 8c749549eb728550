// Package runner executes solutions for a selection of day parts and
// classifies each answer against what is already known about the part.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/odysseus0/slh/internal/daypart"
	"github.com/odysseus0/slh/internal/plugin"
	"github.com/odysseus0/slh/internal/workspace"
)

var ErrInvalidCount = errors.New("count must be positive")

type Outcome string

const (
	OutcomeCorrect       Outcome = "correct"
	OutcomeIncorrect     Outcome = "incorrect"
	OutcomeUnsolved      Outcome = "unsolved"
	OutcomeNoAnswer      Outcome = "no_answer"
	OutcomeCancelled     Outcome = "cancelled"
	OutcomeNewGuess      Outcome = "new_guess"
	OutcomeRepeatedGuess Outcome = "repeated_guess"
	OutcomeFailed        Outcome = "failed"
)

type PartReport struct {
	DayPart  daypart.DayPart `json:"daypart"`
	Outcome  Outcome         `json:"outcome"`
	Answer   string          `json:"answer,omitempty"`
	Expected string          `json:"expected,omitempty"`
	Duration time.Duration   `json:"duration_ns"`
	Error    string          `json:"error,omitempty"`
}

type Report struct {
	Parts    []PartReport `json:"parts"`
	ExitCode int          `json:"exit_code"`
}

// GuessRecorder remembers answers already produced for a part.
type GuessRecorder interface {
	AddGuess(ctx context.Context, dp daypart.DayPart, answer string) (bool, error)
}

type Runner struct {
	Root    string
	Plugin  plugin.Plugin
	Guesses GuessRecorder
	Log     zerolog.Logger

	// OnResult, if set, is called as soon as a part has been classified.
	OnResult func(PartReport)
	// OnNewGuess, if set, is called after a new answer has been written to
	// an unsolved part's solution file. Its exit code is merged into the
	// report's.
	OnNewGuess func(ctx context.Context, dp daypart.DayPart) (int, error)
}

// Run executes every selected part count times and reports the mean
// duration. Unsolved parts are skipped when more than one part is selected.
// A cancelled solution stops the whole run.
func (r *Runner) Run(ctx context.Context, selections []daypart.DayPart, count int) (Report, error) {
	if count <= 0 {
		return Report{}, fmt.Errorf("%w, provided: %d", ErrInvalidCount, count)
	}

	var report Report
	layout := daypart.Layout{Root: r.Root}
	for _, dp := range selections {
		solutionFile := layout.SolutionFile(dp)
		solved := workspace.IsSolved(solutionFile)

		if !solved && len(selections) > 1 {
			r.emit(&report, PartReport{DayPart: dp, Outcome: OutcomeUnsolved})
			continue
		}

		pr, err := r.runPart(ctx, layout, dp, count)
		if err != nil {
			return report, err
		}

		switch pr.Outcome {
		case OutcomeCancelled:
			r.emit(&report, pr)
			report.ExitCode = 1
			return report, nil
		case OutcomeFailed, OutcomeNoAnswer:
			r.emit(&report, pr)
			report.ExitCode |= 1
			continue
		}

		if solved {
			expected, err := os.ReadFile(solutionFile)
			if err != nil {
				return report, err
			}
			pr.Expected = strings.TrimSpace(string(expected))
			pr.Outcome = OutcomeCorrect
			if pr.Answer != pr.Expected {
				pr.Outcome = OutcomeIncorrect
				report.ExitCode |= 1
			}
			r.emit(&report, pr)
			continue
		}

		isNew, err := r.Guesses.AddGuess(ctx, dp, pr.Answer)
		if err != nil {
			return report, err
		}
		if !isNew {
			pr.Outcome = OutcomeRepeatedGuess
			report.ExitCode |= 1
			r.emit(&report, pr)
			continue
		}

		if err := os.WriteFile(solutionFile, []byte(pr.Answer), 0o644); err != nil {
			return report, err
		}
		pr.Outcome = OutcomeNewGuess
		r.emit(&report, pr)

		if r.OnNewGuess != nil {
			code, err := r.OnNewGuess(ctx, dp)
			if err != nil {
				return report, err
			}
			report.ExitCode |= code
		}
	}
	return report, nil
}

func (r *Runner) runPart(ctx context.Context, layout daypart.Layout, dp daypart.DayPart, count int) (PartReport, error) {
	pr := PartReport{DayPart: dp}
	inputFile := layout.InputFile(dp)
	if _, err := os.Stat(inputFile); err != nil {
		return pr, fmt.Errorf("input for %s: %w", dp, err)
	}

	sol, err := r.Plugin.LoadSolution(ctx, r.Root, dp)
	if err != nil {
		pr.Outcome = OutcomeFailed
		pr.Error = err.Error()
		return pr, nil
	}

	var total time.Duration
	var last Result
	for i := 0; i < count; i++ {
		last = TimeIt(ctx, sol, inputFile)
		if last.Cancelled {
			pr.Outcome = OutcomeCancelled
			pr.Duration = last.Duration
			return pr, nil
		}
		if last.Err != nil {
			pr.Outcome = OutcomeFailed
			pr.Error = last.Err.Error()
			return pr, nil
		}
		total += last.Duration
	}

	pr.Duration = total / time.Duration(count)
	pr.Answer = strings.TrimSpace(last.Answer)
	if pr.Answer == "" {
		pr.Outcome = OutcomeNoAnswer
	}
	r.Log.Debug().Str("daypart", dp.String()).Dur("mean", pr.Duration).Int("count", count).Msg("solution timed")
	return pr, nil
}

func (r *Runner) emit(report *Report, pr PartReport) {
	report.Parts = append(report.Parts, pr)
	if r.OnResult != nil {
		r.OnResult(pr)
	}
}
