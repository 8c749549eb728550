package prompt

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Days is the number of puzzle days on a calendar.
const Days = 25

var dayLabelRegexp = regexp.MustCompile(`^Day (\d\d?)(?:, (one star|two stars))?$`)

var starsByLabel = map[string]int{
	"":          0,
	"one star":  1,
	"two stars": 2,
}

// ParseCalendarStars reads the star count of every day from a calendar page.
// The result always has Days entries, index day-1, each 0, 1 or 2. Later
// anchors for the same day win.
func ParseCalendarStars(doc string) ([]int, error) {
	stars := make([]int, Days)
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return stars, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.A {
				continue
			}
			day, count, ok := parseDayLabel(tok)
			if !ok {
				continue
			}
			stars[day-1] = count
		}
	}
}

func parseDayLabel(tok html.Token) (day, count int, ok bool) {
	for _, a := range tok.Attr {
		if !strings.EqualFold(a.Key, "aria-label") {
			continue
		}
		m := dayLabelRegexp.FindStringSubmatch(a.Val)
		if m == nil {
			return 0, 0, false
		}
		day, err := strconv.Atoi(m[1])
		if err != nil || day < 1 || day > Days {
			return 0, 0, false
		}
		return day, starsByLabel[m[2]], true
	}
	return 0, 0, false
}
