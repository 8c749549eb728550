package aoc

import (
	"net/url"
	"strings"

	markdown "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

const maxFallbackRunes = 4000

// Renderer turns judge pages the verdict parser does not recognize into
// markdown. Relative links are resolved against the judge's base URL.
type Renderer struct {
	converter *markdown.Converter
}

func NewRenderer(baseURL string) *Renderer {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || base.Host == "" {
		base = nil
	}
	opts := &markdown.Options{
		GetAbsoluteURL: func(_ *goquery.Selection, raw, _ string) string {
			if base == nil {
				return raw
			}
			ref, err := url.Parse(raw)
			if err != nil || ref.Scheme == "data" {
				return raw
			}
			return base.ResolveReference(ref).String()
		},
	}
	return &Renderer{converter: markdown.NewConverter("", true, opts)}
}

// HTMLToMarkdown renders html, falling back to its plain text when the
// converter rejects it.
func (r *Renderer) HTMLToMarkdown(html string) string {
	html = strings.TrimSpace(html)
	if html == "" {
		return ""
	}
	out, err := r.converter.ConvertString(html)
	if err != nil {
		return compactText(articleText(html), maxFallbackRunes)
	}
	return strings.TrimSpace(out)
}
