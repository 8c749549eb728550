package aoc

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/odysseus0/slh/internal/model"
)

// Result is the judge's reply to a submitted answer.
type Result struct {
	Verdict model.Verdict `json:"verdict"`
	Message string        `json:"message"`
}

const rightAnswer = "That's the right answer!"

var verdictPatterns = []struct {
	verdict model.Verdict
	re      *regexp.Regexp
}{
	{model.VerdictTooSoon, regexp.MustCompile(`You gave an answer too recently.*to wait\.`)},
	{model.VerdictWrong, regexp.MustCompile(`That's not the right answer.*?\.`)},
	{model.VerdictAlreadySolved, regexp.MustCompile(`You don't seem to be solving.*\?`)},
}

var defaultRenderer = NewRenderer("")

// ParseVerdict classifies the page returned after posting an answer. Pages
// that match no known sentence yield VerdictUnknown with the page rendered
// as markdown.
func ParseVerdict(page string) Result {
	return parseVerdict(page, defaultRenderer)
}

func parseVerdict(page string, r *Renderer) Result {
	text := articleText(page)
	for _, p := range verdictPatterns {
		if m := p.re.FindString(text); m != "" {
			return Result{Verdict: p.verdict, Message: m}
		}
	}
	if strings.Contains(text, rightAnswer) {
		return Result{Verdict: model.VerdictRight, Message: rightAnswer}
	}
	return Result{Verdict: model.VerdictUnknown, Message: r.HTMLToMarkdown(MainContent(page))}
}

func articleText(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return compactText(page, 0)
	}
	sel := doc.Find("main article")
	if sel.Length() == 0 {
		sel = doc.Find("body")
	}
	return compactText(sel.Text(), 0)
}
