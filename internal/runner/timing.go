package runner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/odysseus0/slh/internal/plugin"
)

// Result is a single timed execution of a solution.
type Result struct {
	Answer    string
	Duration  time.Duration
	Cancelled bool
	Err       error
}

// TimeIt runs sol on inputFile and measures it. A solution interrupted by
// ctx is reported as Cancelled rather than as an error.
func TimeIt(ctx context.Context, sol plugin.Solution, inputFile string) Result {
	start := time.Now()
	answer, err := sol(ctx, inputFile)
	d := time.Since(start)

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return Result{Duration: d, Cancelled: true}
	}
	return Result{Answer: answer, Duration: d, Err: err}
}

// FormatDuration renders d with one decimal in the largest unit whose
// power of a thousand fits the nanosecond count: ns, μs, ms, then seconds
// (switching to minutes from one minute on).
func FormatDuration(d time.Duration) string {
	ns := d.Nanoseconds()
	if ns < 0 {
		ns = 0
	}
	unit := (len(strconv.FormatInt(ns, 10)) - 1) / 3

	switch unit {
	case 0:
		return fmt.Sprintf("%.1f ns", float64(ns))
	case 1:
		return fmt.Sprintf("%.1f μs", float64(ns)/1e3)
	case 2:
		return fmt.Sprintf("%.1f ms", float64(ns)/1e6)
	}
	secs := float64(ns) / 1e9
	if secs >= 60 {
		return fmt.Sprintf("%.1f min", secs/60)
	}
	return fmt.Sprintf("%.1f  s", secs)
}
