// Package prompt converts puzzle pages into markdown-flavoured text.
//
// Only a narrow subset of HTML is understood: the region selected by a
// Selector is rendered, everything outside it is ignored, and unknown tags
// inside it are dropped while their text is kept.
package prompt

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// Selector picks the region of interest by tag name and one attribute value.
type Selector struct {
	Tag   string
	Attr  string
	Value string
}

// DaySelector matches the puzzle description articles of a day page.
var DaySelector = Selector{Tag: "article", Attr: "class", Value: "day-desc"}

func (s Selector) matches(tag string, attrs map[string]string) bool {
	if tag != s.Tag {
		return false
	}
	if s.Attr == "" {
		return true
	}
	v, ok := attrs[s.Attr]
	return ok && v == s.Value
}

// Document is the converted page: its title and one rendering per matched
// region, in document order.
type Document struct {
	Title   string
	Regions []string
}

// Markdown joins the title and the regions into the final text.
func (d Document) Markdown() string {
	body := strings.TrimRight(strings.Join(d.Regions, "\n\n"), "\n")
	return collapseDoubleSpaces("# "+d.Title+"\n\n"+body) + "\n"
}

type Option func(*parser)

func WithSelector(sel Selector) Option {
	return func(p *parser) {
		p.sel = sel
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(p *parser) {
		p.log = log
	}
}

// Parse converts a complete HTML document. It fails only when a region
// breaks the structural assumptions of the renderers, see
// UnsupportedContentError.
func Parse(doc string, opts ...Option) (Document, error) {
	p := &parser{sel: DaySelector, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.feed(doc); err != nil {
		return Document{}, err
	}
	return Document{Title: p.title, Regions: p.regions}, nil
}

// ToMarkdown is Parse followed by Document.Markdown.
func ToMarkdown(doc string, opts ...Option) (string, error) {
	d, err := Parse(doc, opts...)
	if err != nil {
		return "", err
	}
	return d.Markdown(), nil
}

type parser struct {
	sel Selector
	log zerolog.Logger

	inRegion     bool
	readingTitle bool
	title        string
	stack        []*element
	regions      []string
}

func (p *parser) feed(doc string) error {
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			return nil
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if err := p.startTag(tok.Data, attrMap(tok)); err != nil {
				return err
			}
			if tt == html.SelfClosingTagToken {
				if err := p.endTag(tok.Data); err != nil {
					return err
				}
			}
		case html.EndTagToken:
			tok := z.Token()
			if err := p.endTag(tok.Data); err != nil {
				return err
			}
		case html.TextToken:
			if err := p.text(z.Token().Data); err != nil {
				return err
			}
		case html.CommentToken:
			// The body arrives inside the comment token itself, so the text
			// after a comment is regular content and is kept.
		}
	}
}

func (p *parser) startTag(name string, attrs map[string]string) error {
	if name == "title" {
		p.readingTitle = true
		return nil
	}

	if !p.inRegion {
		if !p.sel.matches(name, attrs) {
			return nil
		}
		p.log.Debug().Str("tag", name).Msg("region start")
		p.inRegion = true
		p.stack = append(p.stack, newElement(kindArticle, name, attrs))
		return nil
	}

	k, ok := tagKinds[name]
	if !ok {
		p.log.Debug().Str("tag", name).Str("stack", p.stackString()).Msg("ignoring tag")
		return nil
	}
	if top := p.top(); top != nil && top.kind == k {
		p.log.Debug().Str("tag", name).Msg("repeated tag, closing the open one instead")
		return p.closeTop()
	}
	p.stack = append(p.stack, newElement(k, name, attrs))
	return nil
}

func (p *parser) endTag(name string) error {
	if !p.inRegion {
		return nil
	}
	top := p.top()
	if top == nil || top.tag != name {
		p.log.Debug().Str("tag", name).Str("stack", p.stackString()).Msg("ignoring end tag")
		return nil
	}
	return p.closeTop()
}

func (p *parser) closeTop() error {
	el := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) == 0 {
		p.log.Debug().Str("tag", el.tag).Msg("region end")
		p.regions = append(p.regions, el.render())
		p.inRegion = false
		return nil
	}
	return p.top().addChild(el)
}

func (p *parser) text(s string) error {
	if p.readingTitle {
		p.title = s
		p.readingTitle = false
		return nil
	}
	if !p.inRegion {
		return nil
	}
	return p.top().addText(s)
}

func (p *parser) top() *element {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) stackString() string {
	tags := make([]string, 0, len(p.stack))
	for _, el := range p.stack {
		tags = append(tags, el.tag)
	}
	return strings.Join(tags, ", ")
}

func attrMap(tok html.Token) map[string]string {
	m := make(map[string]string, len(tok.Attr))
	for _, a := range tok.Attr {
		m[strings.ToLower(a.Key)] = a.Val
	}
	return m
}
