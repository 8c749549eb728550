package aoc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/odysseus0/slh/internal/daypart"
	"github.com/odysseus0/slh/internal/model"
)

func newTestClient(t *testing.T, baseURL string, retryMax int) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL:      baseURL + "/",
		Session:      "abc123\n",
		UserAgent:    "slh-test/1.0",
		Timeout:      5 * time.Second,
		RetryMax:     retryMax,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 2 * time.Millisecond,
	})
}

func TestFetchInput_SendsSessionAndTrims(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2023/day/4/input" {
			http.NotFound(w, r)
			return
		}
		c, err := r.Cookie("session")
		if err != nil || c.Value != "abc123" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got := r.Header.Get("User-Agent"); got != "slh-test/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		_, _ = fmt.Fprint(w, "1 2 3\n4 5 6\n")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	got, err := c.FetchInput(context.Background(), 2023, 4)
	if err != nil {
		t.Fatalf("FetchInput: %v", err)
	}
	if got != "1 2 3\n4 5 6" {
		t.Fatalf("FetchInput = %q", got)
	}
}

func TestFetchInput_RetriesUntilUnlocked(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "Please don't repeatedly request this endpoint before it unlocks!", http.StatusNotFound)
			return
		}
		_, _ = fmt.Fprint(w, "ready")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5)
	got, err := c.FetchInput(context.Background(), 2023, 1)
	if err != nil {
		t.Fatalf("FetchInput: %v", err)
	}
	if got != "ready" {
		t.Fatalf("FetchInput = %q", got)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("calls = %d, want 3", n)
	}
}

func TestFetchInput_GivesUpAfterRetryMax(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2)
	_, err := c.FetchInput(context.Background(), 2023, 1)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusNotFound || fe.NeedsAuth {
		t.Fatalf("FetchError = %+v", fe)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("calls = %d, want 3", n)
	}
}

func TestFetchPrompt_NotFoundIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5)
	if _, err := c.FetchPrompt(context.Background(), 2023, 1); err == nil {
		t.Fatalf("FetchPrompt error = nil, want error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
}

func TestFetch_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Puzzle inputs differ by user.  Please log in to get your puzzle input.", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	_, err := c.FetchCalendar(context.Background(), 2023)
	if !errors.Is(err, ErrNeedsAuth) {
		t.Fatalf("err = %v, want ErrNeedsAuth", err)
	}
	if !strings.Contains(err.Error(), "session cookie") {
		t.Fatalf("error %q does not mention session cookie", err)
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newTestClient(t, srv.URL, 50)
	if _, err := c.FetchInput(ctx, 2023, 1); err == nil {
		t.Fatalf("FetchInput error = nil, want context error")
	}
}

func TestSubmitAnswer_PostsForm(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Method != http.MethodPost || r.URL.Path != "/2023/day/7/answer" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		if r.PostForm.Get("level") != "2" || r.PostForm.Get("answer") != "6440" {
			t.Errorf("form = %v", r.PostForm)
		}
		_, _ = fmt.Fprint(w, `<html><body><main><article><p>That's the right answer!  You are <span class="day-success">one gold star</span> closer.</p></article></main></body></html>`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	res, err := c.SubmitAnswer(context.Background(), 2023, daypart.DayPart{Day: 7, Part: 2}, " 6440\n")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if res.Verdict != model.VerdictRight {
		t.Fatalf("Verdict = %q, want right", res.Verdict)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
}

func TestSubmitAnswer_ServerErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	_, err := c.SubmitAnswer(context.Background(), 2023, daypart.DayPart{Day: 1, Part: 1}, "1")
	var fe *FetchError
	if !errors.As(err, &fe) || fe.StatusCode != http.StatusBadGateway {
		t.Fatalf("err = %v, want 502 FetchError", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
}

func TestSubmitAnswer_UnknownVerdictLinksAreAbsolute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<html><body><main><article><p>Please <a href="/2023/day/7">return to day 7</a>.</p></article></main></body></html>`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	res, err := c.SubmitAnswer(context.Background(), 2023, daypart.DayPart{Day: 7, Part: 1}, "1")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if res.Verdict != model.VerdictUnknown {
		t.Fatalf("Verdict = %q, want unknown", res.Verdict)
	}
	want := "[return to day 7](" + srv.URL + "/2023/day/7)"
	if !strings.Contains(res.Message, want) {
		t.Fatalf("Message = %q, want link %q", res.Message, want)
	}
}
