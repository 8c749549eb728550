package daypart

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"time"
)

const (
	LastDay  = 25
	LastPart = 2
)

var (
	ErrFinished = errors.New("it's over, go home")
	ErrInvalid  = errors.New("invalid day/part")
)

var emoji = [LastDay]string{
	"🔔", "📦", "👼", "🌟", "🎄",
	"🎤", "🎶", "🔥", "❄️", "☃️",
	"🍴", "🍷", "🍺", "🦌", "🥕",
	"🍂", "🧁", "🧦", "☕", "📝",
	"🎁", "🍪", "🥛", "🤶", "🎅",
}

// releaseZone is the judge's clock: puzzles unlock at midnight UTC-5.
var releaseZone = time.FixedZone("UTC-5", -5*60*60)

type DayPart struct {
	Day  int `json:"day"`
	Part int `json:"part"`
}

func First() DayPart {
	return DayPart{Day: 1, Part: 1}
}

func (dp DayPart) Valid() bool {
	return dp.Day >= 1 && dp.Day <= LastDay && (dp.Part == 1 || dp.Part == 2)
}

func (dp DayPart) Next() (DayPart, error) {
	if dp == (DayPart{Day: LastDay, Part: LastPart}) {
		return DayPart{}, ErrFinished
	}
	if !dp.Valid() {
		return DayPart{}, fmt.Errorf("%w: cannot determine the next part after %s", ErrInvalid, dp)
	}
	if dp.Part == 1 {
		return DayPart{Day: dp.Day, Part: 2}, nil
	}
	return DayPart{Day: dp.Day + 1, Part: 1}, nil
}

func (dp DayPart) Less(other DayPart) bool {
	if dp.Day != other.Day {
		return dp.Day < other.Day
	}
	return dp.Part < other.Part
}

func (dp DayPart) Emoji() string {
	if dp.Day < 1 || dp.Day > LastDay {
		return "❓"
	}
	return emoji[dp.Day-1]
}

func (dp DayPart) String() string {
	return fmt.Sprintf("%02d/%d", dp.Day, dp.Part)
}

// ReleaseTime is when the puzzle for day unlocks.
func ReleaseTime(year, day int) time.Time {
	return time.Date(year, time.December, day, 0, 0, 0, 0, releaseZone)
}

var partFileRegexp = regexp.MustCompile(`(?:^|/)day(\d\d)/part(\d)\.([A-Za-z0-9]+)$`)

// Parse extracts the day and part from a solution path like
// "day07/part2.py". The extension must match ext.
func Parse(path, ext string) (DayPart, error) {
	m := partFileRegexp.FindStringSubmatch(filepath.ToSlash(path))
	if m == nil || m[3] != ext {
		return DayPart{}, fmt.Errorf("%w: %q is not a dayNN/partN.%s file", ErrInvalid, path, ext)
	}
	day, _ := strconv.Atoi(m[1])
	part, _ := strconv.Atoi(m[2])
	dp := DayPart{Day: day, Part: part}
	if !dp.Valid() {
		return DayPart{}, fmt.Errorf("%w: %q", ErrInvalid, path)
	}
	return dp, nil
}

// Sort orders parts by day, then part.
func Sort(dps []DayPart) {
	slices.SortFunc(dps, func(a, b DayPart) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
}

// Selection narrows the existing parts a command operates on.
type Selection struct {
	All   bool
	Days  []int
	Parts []int
}

// Select applies sel to all, which must be sorted. Without any filter only
// the most recent part is selected; parts alone apply to the most recent
// day; days (or All) pick days, with parts defaulting to both.
func Select(all []DayPart, sel Selection) []DayPart {
	if len(all) == 0 {
		return nil
	}
	latest := all[len(all)-1]
	if !sel.All && len(sel.Days) == 0 && len(sel.Parts) == 0 {
		return []DayPart{latest}
	}

	days := sel.Days
	if !sel.All && len(days) == 0 {
		days = []int{latest.Day}
	}
	parts := sel.Parts
	if len(parts) == 0 {
		parts = []int{1, 2}
	}

	out := make([]DayPart, 0, len(all))
	for _, dp := range all {
		if len(days) > 0 && !slices.Contains(days, dp.Day) {
			continue
		}
		if !slices.Contains(parts, dp.Part) {
			continue
		}
		out = append(out, dp)
	}
	return out
}
