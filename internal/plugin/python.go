package plugin

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/odysseus0/slh/internal/daypart"
)

// pythonRunner imports dayNN.partP from the workspace root and prints the
// result of solution(input) unless it is None.
const pythonRunner = `import importlib, sys
sys.path.insert(0, sys.argv[1])
mod = importlib.import_module(sys.argv[2])
with open(sys.argv[3]) as f:
    result = mod.solution(f.read())
if result is not None:
    print(result)
`

type Python struct {
	filePlugin
	Interpreter string
}

func NewPython() *Python {
	return &Python{filePlugin: newFilePlugin("python", "py"), Interpreter: "python3"}
}

func (p *Python) LoadSolution(ctx context.Context, root string, dp daypart.DayPart) (Solution, error) {
	if _, err := os.Stat(p.SrcFile(root, dp)); err != nil {
		return nil, err
	}
	module := fmt.Sprintf("day%02d.part%d", dp.Day, dp.Part)
	return func(ctx context.Context, inputFile string) (string, error) {
		out, err := p.exec(ctx, root, nil, p.Interpreter, "-c", pythonRunner, root, module, inputFile)
		if err != nil {
			return "", err
		}
		return answerFromOutput(out), nil
	}, nil
}

func (p *Python) RunTests(ctx context.Context, root string, dps []daypart.DayPart, args []string, out io.Writer) (int, error) {
	cmdArgs := append([]string{"-m", "pytest"}, args...)
	cmdArgs = append(cmdArgs, "--")
	cmdArgs = append(cmdArgs, p.srcFiles(root, dps)...)

	_, err := p.exec(ctx, root, out, p.Interpreter, cmdArgs...)
	if err == nil {
		return 0, nil
	}
	if code, ok := exitCode(err); ok {
		return code, nil
	}
	return 1, err
}
