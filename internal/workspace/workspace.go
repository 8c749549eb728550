package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrNoSession = errors.New("no session cookie")

// FindRoot returns the top-level directory of the git repository that
// contains dir.
func FindRoot(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("find repository root: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}

// YearFromRoot reads the puzzle year from a root directory named aocYYYY.
func YearFromRoot(root string) (int, error) {
	name := filepath.Base(root)
	_, year, found := strings.Cut(name, "aoc")
	if !found {
		return 0, fmt.Errorf("failed to parse year from root directory %q: expected a name like aoc2023", name)
	}
	n, err := strconv.Atoi(year)
	if err != nil || n < 2015 {
		return 0, fmt.Errorf("failed to parse year from root directory %q: expected a name like aoc2023", name)
	}
	return n, nil
}

// ReadSession returns the session cookie value stored in path.
func ReadSession(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: create %s with the value of your session cookie", ErrNoSession, path)
	}
	if err != nil {
		return "", err
	}
	session := strings.TrimSpace(string(data))
	if session == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrNoSession, path)
	}
	return session, nil
}

// IsSolved reports whether a solution file exists and has been locked.
func IsSolved(solutionFile string) bool {
	info, err := os.Stat(solutionFile)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o222 == 0
}

// MarkSolved locks a solution file so later runs compare against it.
func MarkSolved(solutionFile string) error {
	return os.Chmod(solutionFile, 0o444)
}

// WriteReadOnly writes data and leaves the file read-only.
func WriteReadOnly(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil && info.Mode().Perm()&0o200 == 0 {
		if err := os.Chmod(path, 0o644); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	return os.Chmod(path, 0o444)
}
