package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/odysseus0/slh/internal/aoc"
	"github.com/odysseus0/slh/internal/prompt"
	"github.com/odysseus0/slh/internal/store"
	"github.com/odysseus0/slh/internal/workspace"
)

const (
	exitInvalidInput = 2
	exitNotFound     = 3
	exitInternal     = 1
)

// exitError carries a non-zero exit code for outcomes that were already
// reported to the user, such as a wrong answer.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func isInvalidInput(err error) bool {
	if errors.Is(err, store.ErrInvalidInput) || errors.Is(err, prompt.ErrUnsupportedContent) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid output format")
}

func isAuthError(err error) bool {
	return errors.Is(err, workspace.ErrNoSession) || errors.Is(err, aoc.ErrNeedsAuth)
}

func ErrorExitCode(err error) int {
	var exitErr exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.code
	case isInvalidInput(err), isAuthError(err):
		return exitInvalidInput
	case errors.Is(err, store.ErrNotFound):
		return exitNotFound
	default:
		return exitInternal
	}
}

func FormatError(err error) string {
	var exitErr exitError
	switch {
	case err == nil, errors.As(err, &exitErr):
		return ""
	case isAuthError(err):
		return fmt.Sprintf("Error [auth]: %v", err)
	case isInvalidInput(err):
		return fmt.Sprintf("Error [invalid-input]: %v", err)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Sprintf("Error [not-found]: %v", err)
	default:
		return fmt.Sprintf("Error [internal]: %v", err)
	}
}

func PrintError(err error) {
	if msg := FormatError(err); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
}
