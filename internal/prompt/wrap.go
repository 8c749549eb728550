package prompt

import (
	"strings"
	"unicode/utf8"
)

// wrap greedily fills lines up to width runes, breaking only at whitespace.
// The first line starts with first and every later line with rest; both
// count toward the width. Words longer than a line are kept whole.
func wrap(text string, width int, first, rest string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 1+len(text)/width)
	var b strings.Builder
	b.WriteString(first)
	lineLen := utf8.RuneCountInString(first)
	empty := true
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		if !empty && lineLen+1+n > width {
			lines = append(lines, b.String())
			b.Reset()
			b.WriteString(rest)
			lineLen = utf8.RuneCountInString(rest)
			empty = true
		}
		if !empty {
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(w)
		lineLen += n
		empty = false
	}
	return append(lines, b.String())
}

// collapseDoubleSpaces turns every run of exactly two spaces into one;
// longer runs such as list continuation indents are left alone.
func collapseDoubleSpaces(s string) string {
	if !strings.Contains(s, "  ") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != ' ' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] == ' ' {
			j++
		}
		if j-i == 2 {
			b.WriteByte(' ')
		} else {
			b.WriteString(s[i:j])
		}
		i = j
	}
	return b.String()
}
