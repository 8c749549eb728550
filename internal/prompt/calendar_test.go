package prompt

import (
	"fmt"
	"strings"
	"testing"
)

func calendarPage(labels map[int]string) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Advent of Code 2023</title></head><body><main><pre class="calendar">`)
	for day := Days; day >= 1; day-- {
		label, ok := labels[day]
		if !ok {
			label = fmt.Sprintf("Day %d", day)
		}
		fmt.Fprintf(&b, `<a aria-label="%s" href="/2023/day/%d" class="calendar-day%d">  <span class="calendar-day">%2d</span></a>`+"\n", label, day, day, day)
	}
	b.WriteString(`</pre></main></body></html>`)
	return b.String()
}

func TestParseCalendarStars(t *testing.T) {
	doc := calendarPage(map[int]string{
		1: "Day 1, two stars",
		2: "Day 2, one star",
		3: "Day 3, two stars",
	})
	stars, err := ParseCalendarStars(doc)
	if err != nil {
		t.Fatalf("ParseCalendarStars: %v", err)
	}
	if len(stars) != Days {
		t.Fatalf("len = %d, want %d", len(stars), Days)
	}
	want := make([]int, Days)
	want[0], want[1], want[2] = 2, 1, 2
	for i := range want {
		if stars[i] != want[i] {
			t.Fatalf("day %d = %d, want %d (all: %v)", i+1, stars[i], want[i], stars)
		}
	}
}

func TestParseCalendarStars_PartialAndNoisyPages(t *testing.T) {
	doc := `<html><body>
<a href="/2023/about">About</a>
<a aria-label="Day 7, one star">7</a>
<a aria-label="Daylight">x</a>
<a aria-label="Day 26, two stars">26</a>
<a aria-label="Day 7, two stars">7 again</a>
<span aria-label="Day 9, two stars">not an anchor</span>
<a aria-label="Day 10, three stars">10</a>
</body></html>`
	stars, err := ParseCalendarStars(doc)
	if err != nil {
		t.Fatalf("ParseCalendarStars: %v", err)
	}
	if len(stars) != Days {
		t.Fatalf("len = %d, want %d", len(stars), Days)
	}
	for i, v := range stars {
		want := 0
		if i == 6 {
			want = 2
		}
		if v != want {
			t.Fatalf("day %d = %d, want %d (all: %v)", i+1, v, want, stars)
		}
	}
}

func TestParseCalendarStars_Empty(t *testing.T) {
	stars, err := ParseCalendarStars("")
	if err != nil {
		t.Fatalf("ParseCalendarStars: %v", err)
	}
	if len(stars) != Days {
		t.Fatalf("len = %d, want %d", len(stars), Days)
	}
}
