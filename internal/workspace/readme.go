package workspace

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const starTableHeader = "|  day  | stars |"

var starCells = [...]string{"       ", "  ⭐   ", "  ⭐⭐ "}

// UpdateReadmeStars rewrites the star table in the README at path, keeping
// the lines around it. The table is appended when none exists yet.
func UpdateReadmeStars(path string, stars []int) error {
	var lines []string
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if len(lines) == 1 && lines[0] == "" {
			lines = nil
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return err
	}

	before, after := splitOnStarTable(lines)
	out := make([]string, 0, len(before)+len(stars)+2+len(after)+1)
	out = append(out, before...)
	table, err := StarTable(stars)
	if err != nil {
		return err
	}
	out = append(out, table...)
	out = append(out, after...)
	out = append(out, "")
	return os.WriteFile(path, []byte(strings.Join(out, "\n")), 0o644)
}

// StarTable renders stars as markdown table lines.
func StarTable(stars []int) ([]string, error) {
	lines := []string{starTableHeader, "| ----- | ----- |"}
	for i, n := range stars {
		if n < 0 || n >= len(starCells) {
			return nil, fmt.Errorf("invalid star count %d for day %d", n, i+1)
		}
		lines = append(lines, fmt.Sprintf("|   %02d  |%s|", i+1, starCells[n]))
	}
	return lines, nil
}

func splitOnStarTable(lines []string) (before, after []string) {
	start := -1
	for i, line := range lines {
		if line == starTableHeader {
			start = i
			break
		}
	}
	if start < 0 {
		return lines, nil
	}
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "| ") {
			end = i
			break
		}
	}
	return lines[:start], lines[end:]
}
