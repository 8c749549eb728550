package plugin

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/odysseus0/slh/internal/daypart"
)

type C struct {
	filePlugin
	CC     string
	CFlags []string
}

func NewC() *C {
	cc := os.Getenv("CC")
	if cc == "" {
		cc = "cc"
	}
	return &C{filePlugin: newFilePlugin("c", "c"), CC: cc, CFlags: []string{"-O2", "-Wall"}}
}

func (p *C) LoadSolution(ctx context.Context, root string, dp daypart.DayPart) (Solution, error) {
	src := p.SrcFile(root, dp)
	if _, err := os.Stat(src); err != nil {
		return nil, err
	}
	exe := buildTarget(root, dp)
	if err := os.MkdirAll(filepath.Dir(exe), 0o755); err != nil {
		return nil, err
	}
	args := append(append([]string{}, p.CFlags...), "-o", exe, src)
	if _, err := p.exec(ctx, root, nil, p.CC, args...); err != nil {
		return nil, fmt.Errorf("build %s: %w", src, err)
	}

	return func(ctx context.Context, inputFile string) (string, error) {
		out, err := p.exec(ctx, root, nil, exe, inputFile)
		if err != nil {
			return "", err
		}
		return answerFromOutput(out), nil
	}, nil
}

func (p *C) RunTests(context.Context, string, []daypart.DayPart, []string, io.Writer) (int, error) {
	return 1, fmt.Errorf("c: %w", ErrNoTests)
}
