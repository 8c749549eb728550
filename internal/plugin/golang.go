package plugin

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/odysseus0/slh/internal/daypart"
)

// Go solutions are standalone main programs excluded from package builds by
// an ignore constraint, so every part can live next to the others.
type Go struct {
	filePlugin
	GoBin string
}

func NewGo() *Go {
	return &Go{filePlugin: newFilePlugin("go", "go"), GoBin: "go"}
}

func (p *Go) LoadSolution(ctx context.Context, root string, dp daypart.DayPart) (Solution, error) {
	exe, err := p.build(ctx, root, dp)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, inputFile string) (string, error) {
		out, err := p.exec(ctx, root, nil, exe, inputFile)
		if err != nil {
			return "", err
		}
		return answerFromOutput(out), nil
	}, nil
}

func (p *Go) build(ctx context.Context, root string, dp daypart.DayPart) (string, error) {
	src := p.SrcFile(root, dp)
	if _, err := os.Stat(src); err != nil {
		return "", err
	}
	exe := buildTarget(root, dp)
	if err := os.MkdirAll(filepath.Dir(exe), 0o755); err != nil {
		return "", err
	}
	if _, err := p.exec(ctx, root, nil, p.GoBin, "build", "-o", exe, src); err != nil {
		return "", fmt.Errorf("build %s: %w", src, err)
	}
	p.log.Debug().Str("exe", exe).Msg("built solution")
	return exe, nil
}

func (p *Go) RunTests(context.Context, string, []daypart.DayPart, []string, io.Writer) (int, error) {
	return 1, fmt.Errorf("go: %w", ErrNoTests)
}

func buildTarget(root string, dp daypart.DayPart) string {
	return filepath.Join(daypart.Layout{Root: root}.OutDir(dp), "build", fmt.Sprintf("part%d", dp.Part))
}
