package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/odysseus0/slh/internal/aoc"
	"github.com/odysseus0/slh/internal/prompt"
	"github.com/odysseus0/slh/internal/store"
	"github.com/odysseus0/slh/internal/workspace"
)

func TestErrorExitCodeAndFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "nil", err: nil, wantCode: 0, wantMsg: ""},
		{name: "reported outcome", err: exitError{code: 1}, wantCode: 1, wantMsg: ""},
		{name: "invalid input", err: fmt.Errorf("bad day: %w", store.ErrInvalidInput), wantCode: 2, wantMsg: "Error [invalid-input]:"},
		{name: "unsupported content", err: &prompt.UnsupportedContentError{Parent: "List", Kind: "text", Content: "x"}, wantCode: 2, wantMsg: "Error [invalid-input]:"},
		{name: "no session", err: fmt.Errorf("read: %w", workspace.ErrNoSession), wantCode: 2, wantMsg: "Error [auth]:"},
		{name: "rejected session", err: &aoc.FetchError{URL: "http://x/2023", StatusCode: 400, NeedsAuth: true}, wantCode: 2, wantMsg: "Error [auth]:"},
		{name: "not found", err: fmt.Errorf("solution: %w", store.ErrNotFound), wantCode: 3, wantMsg: "Error [not-found]:"},
		{name: "other", err: errors.New("disk full"), wantCode: 1, wantMsg: "Error [internal]: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorExitCode(tt.err); got != tt.wantCode {
				t.Fatalf("ErrorExitCode = %d, want %d", got, tt.wantCode)
			}
			got := FormatError(tt.err)
			if tt.wantMsg == "" {
				if got != "" {
					t.Fatalf("FormatError = %q, want empty", got)
				}
				return
			}
			if !strings.HasPrefix(got, tt.wantMsg) {
				t.Fatalf("FormatError = %q, want prefix %q", got, tt.wantMsg)
			}
		})
	}
}
