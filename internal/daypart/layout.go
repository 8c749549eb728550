package daypart

import (
	"fmt"
	"path/filepath"
)

// Layout resolves the files of a part inside a workspace root.
type Layout struct {
	Root string
}

func (l Layout) OutDir(dp DayPart) string {
	return filepath.Join(l.Root, fmt.Sprintf("day%02d", dp.Day))
}

func (l Layout) InputFile(dp DayPart) string {
	return filepath.Join(l.OutDir(dp), "input.txt")
}

func (l Layout) SolutionFile(dp DayPart) string {
	return filepath.Join(l.OutDir(dp), fmt.Sprintf("solution%d.txt", dp.Part))
}

func (l Layout) PromptFile(dp DayPart) string {
	return filepath.Join(l.OutDir(dp), "prompt.md")
}

func (l Layout) SrcFile(dp DayPart, ext string) string {
	return filepath.Join(l.OutDir(dp), fmt.Sprintf("part%d.%s", dp.Part, ext))
}
