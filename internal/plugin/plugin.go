// Package plugin adapts the workflow to the language puzzles are solved in.
// A plugin knows where a day part's source lives, how to scaffold the next
// one, and how to execute a solution against an input file.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/odysseus0/slh/internal/daypart"
)

var (
	ErrUnknownLanguage   = errors.New("unknown language")
	ErrDuplicateLanguage = errors.New("language already registered")
	ErrNoTests           = errors.New("no test support")
	ErrSrcExists         = errors.New("source file already exists")
)

// Solution computes the answer for the input stored at inputFile. An empty
// answer means the solution did not produce one.
type Solution func(ctx context.Context, inputFile string) (string, error)

type Plugin interface {
	Language() string
	// AllDayParts returns the existing day parts under root, sorted.
	AllDayParts(root string) ([]daypart.DayPart, error)
	SrcFile(root string, dp daypart.DayPart) string
	// GenerateNextFiles scaffolds the sources for next and returns the paths
	// it wrote.
	GenerateNextFiles(root string, year int, next daypart.DayPart, prev *daypart.DayPart) ([]string, error)
	// RunTests runs the language's test runner over dps, streaming its
	// output to out, and returns the runner's exit code.
	RunTests(ctx context.Context, root string, dps []daypart.DayPart, args []string, out io.Writer) (int, error)
	LoadSolution(ctx context.Context, root string, dp daypart.DayPart) (Solution, error)
}

type Registry struct {
	plugins []Plugin
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(p Plugin) error {
	lang := strings.ToLower(p.Language())
	for _, existing := range r.plugins {
		if strings.ToLower(existing.Language()) == lang {
			return fmt.Errorf("%q: %w", p.Language(), ErrDuplicateLanguage)
		}
	}
	r.plugins = append(r.plugins, p)
	return nil
}

// Select returns the plugin for language, compared case-insensitively.
func (r *Registry) Select(language string) (Plugin, error) {
	target := strings.ToLower(strings.TrimSpace(language))
	for _, p := range r.plugins {
		if strings.ToLower(p.Language()) == target {
			return p, nil
		}
	}
	return nil, fmt.Errorf("target language %q is not in list of available languages %v: %w",
		target, r.Languages(), ErrUnknownLanguage)
}

func (r *Registry) Languages() []string {
	out := make([]string, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, strings.ToLower(p.Language()))
	}
	sort.Strings(out)
	return out
}

// Default returns a registry holding the built-in python, go and c plugins.
func Default() *Registry {
	r := NewRegistry()
	for _, p := range []Plugin{NewPython(), NewGo(), NewC()} {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}
