package aoc

import (
	"errors"
	"fmt"
)

// ErrNeedsAuth marks responses that mean the session cookie is missing,
// expired or for another account.
var ErrNeedsAuth = errors.New("session cookie rejected")

type FetchError struct {
	URL        string
	StatusCode int
	NeedsAuth  bool
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.NeedsAuth:
		return fmt.Sprintf("fetch %s: http %d: refresh the session cookie", e.URL, e.StatusCode)
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: http %d: %v", e.URL, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("fetch %s: http %d", e.URL, e.StatusCode)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrNeedsAuth && e.NeedsAuth
}
