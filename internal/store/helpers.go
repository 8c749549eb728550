package store

import (
	"fmt"
	"strings"
	"time"
)

func parseDBTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	layouts := []string{
		dbTimeLayout,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", v)
}

// dbTimeLayout is fixed width so stored times order correctly as text.
const dbTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func timeToDBString(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(dbTimeLayout)
}

func parseOptionalDBTime(v *string) *time.Time {
	if v == nil {
		return nil
	}
	t, err := parseDBTime(*v)
	if err != nil {
		return nil
	}
	return &t
}
