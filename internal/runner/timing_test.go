package runner

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0.0 ns"},
		{1, "1.0 ns"},
		{999, "999.0 ns"},
		{1234, "1.2 μs"},
		{1_234_567, "1.2 ms"},
		{999_999_999, "1000.0 ms"},
		{1_234_567_890, "1.2  s"},
		{59 * time.Second, "59.0  s"},
		{60 * time.Second, "1.0 min"},
		{72 * time.Second, "1.2 min"},
		{2 * time.Hour, "120.0 min"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", int64(tt.in), got, tt.want)
		}
	}
}

func TestTimeIt(t *testing.T) {
	res := TimeIt(context.Background(), func(ctx context.Context, input string) (string, error) {
		if input != "in.txt" {
			t.Errorf("input = %q", input)
		}
		time.Sleep(2 * time.Millisecond)
		return "5", nil
	}, "in.txt")
	if res.Cancelled || res.Err != nil || res.Answer != "5" {
		t.Fatalf("TimeIt = %+v", res)
	}
	if res.Duration < 2*time.Millisecond {
		t.Fatalf("Duration = %s, want >= 2ms", res.Duration)
	}
}

func TestTimeIt_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	res := TimeIt(ctx, func(ctx context.Context, _ string) (string, error) {
		cancel()
		<-ctx.Done()
		return "", ctx.Err()
	}, "in.txt")
	if !res.Cancelled {
		t.Fatalf("Cancelled = false, want true (%+v)", res)
	}
	if res.Err != nil {
		t.Fatalf("Err = %v, want nil for cancellation", res.Err)
	}
}

func TestTimeIt_Error(t *testing.T) {
	boom := errors.New("boom")
	res := TimeIt(context.Background(), func(context.Context, string) (string, error) {
		return "", boom
	}, "in.txt")
	if res.Cancelled || !errors.Is(res.Err, boom) {
		t.Fatalf("TimeIt = %+v, want boom error", res)
	}
}
