package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/odysseus0/slh/internal/daypart"
)

func newTestApp(t *testing.T, baseURL string) *App {
	t.Helper()
	app, err := NewApp(context.Background(), testConfig(baseURL), appOptions{root: newWorkspace(t), log: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestWaitForRelease(t *testing.T) {
	release := daypart.ReleaseTime(2023, 5)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "already released", now: release.Add(time.Hour)},
		{name: "within the grace period", now: release.Add(-3 * time.Second)},
		{name: "more than an hour away", now: release.Add(-2 * time.Hour), wantErr: errTooEarly},
		{name: "exactly an hour away", now: release.Add(-time.Hour), wantErr: errTooEarly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, "")
			app.now = func() time.Time { return tt.now }
			f := newFlow(app, io.Discard, io.Discard, OutputTable)

			err := f.waitForRelease(context.Background(), 2023, 5)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("waitForRelease err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWaitForReleaseCountsDownUntilCancelled(t *testing.T) {
	release := daypart.ReleaseTime(2023, 5)
	app := newTestApp(t, "")
	app.now = func() time.Time { return release.Add(-90 * time.Second) }

	var errOut bytes.Buffer
	f := newFlow(app, io.Discard, &errOut, OutputTable)
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	err := f.waitForRelease(ctx, 2023, 5)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("waitForRelease err = %v, want deadline exceeded", err)
	}
	if !strings.Contains(errOut.String(), "waiting for the next input to go live! 00:01:30") {
		t.Fatalf("countdown output = %q", errOut.String())
	}
}

func TestWaitForReleaseStopsWhenReleased(t *testing.T) {
	release := daypart.ReleaseTime(2023, 5)
	app := newTestApp(t, "")
	calls := 0
	app.now = func() time.Time {
		calls++
		if calls < 3 {
			return release.Add(-10 * time.Second)
		}
		return release
	}

	var errOut bytes.Buffer
	f := newFlow(app, io.Discard, &errOut, OutputTable)
	if err := f.waitForRelease(context.Background(), 2023, 5); err != nil {
		t.Fatalf("waitForRelease: %v", err)
	}
	if calls != 3 {
		t.Fatalf("now called %d times, want 3", calls)
	}
	if !strings.HasSuffix(errOut.String(), "\n") {
		t.Fatalf("countdown should end with a newline, got %q", errOut.String())
	}
}

func TestFlowPrintfIsQuietInJSONMode(t *testing.T) {
	var out bytes.Buffer
	f := &flow{out: &out, format: OutputJSON}
	f.printf("hello %d\n", 1)
	if out.Len() != 0 {
		t.Fatalf("printf wrote %q in JSON mode", out.String())
	}
	f.format = OutputTable
	f.printf("hello %d\n", 1)
	if out.String() != "hello 1\n" {
		t.Fatalf("printf wrote %q", out.String())
	}
}

func TestFlowFinishCarriesExitCode(t *testing.T) {
	var out bytes.Buffer
	f := &flow{out: &out, format: OutputJSON}
	f.resp.ExitCode = 1
	err := f.finish()
	if ErrorExitCode(err) != 1 {
		t.Fatalf("finish err = %v, want exit code 1", err)
	}
	if !strings.Contains(out.String(), `"exit_code": 1`) {
		t.Fatalf("JSON output = %q", out.String())
	}
}
