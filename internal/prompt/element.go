package prompt

import (
	"strings"
)

const wrapWidth = 80

type kind int

const (
	kindArticle kind = iota + 1
	kindParagraph
	kindHeading
	kindList
	kindListItem
	kindCode
	kindEmphasis
	kindLink
	kindSpan
)

var kindNames = map[kind]string{
	kindArticle:   "Article",
	kindParagraph: "Paragraph",
	kindHeading:   "Heading",
	kindList:      "UnorderedList",
	kindListItem:  "ListItem",
	kindCode:      "CodeBlock",
	kindEmphasis:  "Emphasis",
	kindLink:      "Link",
	kindSpan:      "Span",
}

func (k kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// tagKinds lists the only tags tracked inside a region. Anything else is
// dropped and its text flows into the enclosing element.
var tagKinds = map[string]kind{
	"a":       kindLink,
	"article": kindArticle,
	"code":    kindCode,
	"em":      kindEmphasis,
	"h2":      kindHeading,
	"li":      kindListItem,
	"p":       kindParagraph,
	"span":    kindSpan,
	"ul":      kindList,
}

type element struct {
	kind  kind
	tag   string
	attrs map[string]string
	parts []string
	// last holds the single retained value of Link and Span.
	last string
}

func newElement(k kind, tag string, attrs map[string]string) *element {
	return &element{kind: k, tag: tag, attrs: attrs}
}

func (e *element) addText(s string) error {
	switch e.kind {
	case kindArticle, kindList:
		if strings.TrimSpace(s) != "" {
			return &UnsupportedContentError{Parent: e.kind.String(), Kind: "text", Content: s}
		}
	case kindLink, kindSpan:
		e.last = s
	default:
		e.parts = append(e.parts, s)
	}
	return nil
}

func (e *element) addChild(child *element) error {
	rendered := child.render()
	switch e.kind {
	case kindList:
		if child.kind != kindListItem {
			return &UnsupportedContentError{Parent: e.kind.String(), Kind: child.kind.String(), Content: rendered}
		}
		e.parts = append(e.parts, rendered)
	case kindLink, kindSpan:
		e.last = rendered
	default:
		e.parts = append(e.parts, rendered)
	}
	return nil
}

func (e *element) render() string {
	joined := strings.Join(e.parts, "")
	switch e.kind {
	case kindArticle:
		return strings.Join(e.parts, "\n\n")
	case kindList:
		return strings.Join(e.parts, "\n")
	case kindParagraph:
		return strings.Join(wrap(joined, wrapWidth, "", ""), "\n")
	case kindHeading:
		return "## " + joined
	case kindListItem:
		return strings.Join(wrap(joined, wrapWidth, "- ", "    "), "\n")
	case kindCode:
		code := strings.TrimSpace(joined)
		if strings.Contains(code, "\n") {
			return "```\n" + code + "\n```"
		}
		return "`" + code + "`"
	case kindEmphasis:
		if len(e.attrs) > 0 {
			return "**" + joined + "**"
		}
		return "*" + joined + "*"
	case kindLink:
		return "[" + e.last + "](" + e.attrs["href"] + ")"
	case kindSpan:
		return e.last
	}
	return joined
}
