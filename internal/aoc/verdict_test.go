package aoc

import (
	"strings"
	"testing"

	"github.com/odysseus0/slh/internal/model"
)

func answerPage(body string) string {
	return `<!DOCTYPE html><html><head><title>Day 1 - Advent of Code 2023</title><script>var x = "That's the right answer!";</script></head>` +
		`<body><header><h1>Advent of Code</h1></header><main><article>` + body + `</article></main></body></html>`
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		verdict model.Verdict
		message string
	}{
		{
			name:    "right",
			page:    answerPage(`<p>That's the right answer!  You are <span class="day-success">one gold star</span> closer to restoring snow operations.</p>`),
			verdict: model.VerdictRight,
			message: "That's the right answer!",
		},
		{
			name:    "too low",
			page:    answerPage(`<p>That's not the right answer; your answer is too low.  If you're stuck, make sure you're using the full input data.</p>`),
			verdict: model.VerdictWrong,
			message: "That's not the right answer; your answer is too low.",
		},
		{
			name:    "too soon",
			page:    answerPage(`<p>You gave an answer too recently; you have to wait after submitting an answer before trying again.  You have 4m 37s left to wait. <a href="/2023/day/1">[Return to Day 1]</a></p>`),
			verdict: model.VerdictTooSoon,
			message: "You gave an answer too recently; you have to wait after submitting an answer before trying again. You have 4m 37s left to wait.",
		},
		{
			name:    "already solved",
			page:    answerPage(`<p>You don't seem to be solving the right level.  Did you already complete it? <a href="/2023/day/1">[Return to Day 1]</a></p>`),
			verdict: model.VerdictAlreadySolved,
			message: "You don't seem to be solving the right level. Did you already complete it?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseVerdict(tt.page)
			if got.Verdict != tt.verdict {
				t.Fatalf("Verdict = %q, want %q", got.Verdict, tt.verdict)
			}
			if got.Message != tt.message {
				t.Fatalf("Message = %q, want %q", got.Message, tt.message)
			}
		})
	}
}

func TestParseVerdict_UnknownRendersMarkdown(t *testing.T) {
	got := ParseVerdict(answerPage(`<p>Something <em>unexpected</em> happened.</p>`))
	if got.Verdict != model.VerdictUnknown {
		t.Fatalf("Verdict = %q, want unknown", got.Verdict)
	}
	if !strings.Contains(got.Message, "Something _unexpected_ happened.") {
		t.Fatalf("Message = %q, want markdown rendering", got.Message)
	}
	if strings.Contains(got.Message, "<script") || strings.Contains(got.Message, "var x") {
		t.Fatalf("Message leaked script content: %q", got.Message)
	}
}

func TestParseVerdict_IgnoresTextOutsideArticle(t *testing.T) {
	page := `<html><body><main><p>That's the right answer!</p><article><p>Nope.</p></article></main></body></html>`
	if got := ParseVerdict(page); got.Verdict != model.VerdictUnknown {
		t.Fatalf("Verdict = %q, want unknown", got.Verdict)
	}
}

func TestMainContent(t *testing.T) {
	page := `<html><head><style>p{}</style></head><body><nav>menu</nav><main><!-- c --><p onclick="x()">Hi</p><script>bad()</script></main></body></html>`
	got := MainContent(page)
	if got != "<p>Hi</p>" {
		t.Fatalf("MainContent = %q, want <p>Hi</p>", got)
	}
}

func TestParseVerdict_UnknownKeepsRelativeLinksWithoutBase(t *testing.T) {
	got := ParseVerdict(answerPage(`<p>See <a href="/2023/day/1">day 1</a>.</p>`))
	if !strings.Contains(got.Message, "[day 1](/2023/day/1)") {
		t.Fatalf("Message = %q, want relative link", got.Message)
	}
}

func TestCompactText(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "  a \n\t b  ", max: 0, want: "a b"},
		{in: "short", max: 10, want: "short"},
		{in: "abcdef", max: 4, want: "abc..."},
		{in: "⭐⭐⭐⭐⭐", max: 3, want: "⭐⭐..."},
	}
	for _, tt := range tests {
		if got := compactText(tt.in, tt.max); got != tt.want {
			t.Fatalf("compactText(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
