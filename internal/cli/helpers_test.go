package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/odysseus0/slh/internal/config"
)

const testSession = "test-session"

func setEnvForTest(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("set env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnvForTest(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOME",
		"XDG_CONFIG_HOME",
		"SLH_LANGUAGE",
		"SLH_SESSION_FILE",
		"SLH_BASE_URL",
		"SLH_DB_PATH",
		"SLH_HTTP_TIMEOUT_SECONDS",
		"SLH_USER_AGENT",
		"SLH_RETRY_MAX",
	} {
		unsetEnvForTest(t, key)
	}
}

func testConfig(baseURL string) config.Config {
	return config.Config{
		Language:    "python",
		SessionFile: ".session",
		BaseURL:     baseURL,
		DBPath:      ".slh/progress.db",
		HTTPTimeout: 5 * time.Second,
		UserAgent:   "slh-test/1.0",
		RetryMax:    0,
	}
}

// newWorkspace creates an aoc2023 root holding a session file.
func newWorkspace(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "aoc2023")
	writeTestFile(t, filepath.Join(root, ".session"), testSession+"\n")
	return root
}

func writeTestFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// writeSolvedPart lays out a python part whose answer was stored after its
// source was last edited.
func writeSolvedPart(t *testing.T, root string, day, part int, answer string) {
	t.Helper()
	dir := filepath.Join(root, fmt.Sprintf("day%02d", day))
	src := filepath.Join(dir, fmt.Sprintf("part%d.py", part))
	sol := filepath.Join(dir, fmt.Sprintf("solution%d.txt", part))
	writeTestFile(t, src, "def solution(input):\n    return "+answer+"\n")
	writeTestFile(t, filepath.Join(dir, "input.txt"), "1\n2\n")
	writeTestFile(t, sol, answer)

	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(src, old, old); err != nil {
		t.Fatalf("chtimes %s: %v", src, err)
	}
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, cfg config.Config, root string, stdin string, args ...string) cliResult {
	t.Helper()
	cmd := NewRootCmd(cfg)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	if root != "" {
		args = append([]string{"--root", root}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

const (
	rightVerdict = "That's the right answer! You are one gold star closer to saving Christmas."
	wrongVerdict = "That's not the right answer. If you're stuck, make sure you're using the full input data."
)

// fakeJudge serves the pages the workflow needs for year 2023.
type fakeJudge struct {
	mu        sync.Mutex
	verdict   string
	stars     map[int]int
	submitted []string
	requests  []string
}

func newFakeJudge(t *testing.T) (*fakeJudge, *httptest.Server) {
	t.Helper()
	j := &fakeJudge{verdict: rightVerdict, stars: map[int]int{}}
	srv := httptest.NewServer(j)
	t.Cleanup(srv.Close)
	return j, srv
}

func (j *fakeJudge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.requests = append(j.requests, r.Method+" "+r.URL.Path)

	if c, err := r.Cookie("session"); err != nil || c.Value != testSession {
		http.Error(w, "Puzzle inputs differ by user.", http.StatusBadRequest)
		return
	}

	var day int
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/answer"):
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, _ = fmt.Sscanf(r.URL.Path, "/2023/day/%d/answer", &day)
		j.submitted = append(j.submitted, fmt.Sprintf("%d/%s=%s", day, r.Form.Get("level"), r.Form.Get("answer")))
		fmt.Fprintf(w, "<html><body><main><article><p>%s</p></article></main></body></html>", j.verdict)
	case r.URL.Path == "/2023":
		fmt.Fprint(w, "<html><body><main><pre class=\"calendar\">")
		for d := 1; d <= 25; d++ {
			label := fmt.Sprintf("Day %d", d)
			switch j.stars[d] {
			case 1:
				label += ", one star"
			case 2:
				label += ", two stars"
			}
			fmt.Fprintf(w, "<a aria-label=%q href=\"/2023/day/%d\">%d</a>\n", label, d, d)
		}
		fmt.Fprint(w, "</pre></main></body></html>")
	case strings.HasSuffix(r.URL.Path, "/input"):
		fmt.Fprint(w, "1\n2\n3\n")
	case strings.HasPrefix(r.URL.Path, "/2023/day/"):
		_, _ = fmt.Sscanf(r.URL.Path, "/2023/day/%d", &day)
		fmt.Fprintf(w, "<html><head><title>Day %d - Advent of Code 2023</title></head><body><main>"+
			"<article class=\"day-desc\"><h2>--- Day %d: Test ---</h2><p>Count the <em>numbers</em>.</p></article>"+
			"</main></body></html>", day, day)
	default:
		http.NotFound(w, r)
	}
}

func (j *fakeJudge) submissions() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.submitted...)
}

func (j *fakeJudge) setVerdict(v string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.verdict = v
}

func (j *fakeJudge) setStars(day, n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.stars[day] = n
}
