package aoc

import (
	"strings"

	"golang.org/x/net/html"
)

var blockedTags = map[string]struct{}{
	"head":     {},
	"link":     {},
	"meta":     {},
	"noscript": {},
	"script":   {},
	"style":    {},
	"iframe":   {},
	"form":     {},
	"input":    {},
}

// MainContent returns the sanitized markup of the page's <main> element, or
// of <body> when there is none.
func MainContent(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	root := findElement(doc, "main")
	if root == nil {
		root = findElement(doc, "body")
	}
	if root == nil {
		return raw
	}

	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		sanitized := sanitizeNode(c)
		if sanitized == nil {
			continue
		}
		_ = html.Render(&b, sanitized)
	}
	return strings.TrimSpace(b.String())
}

func findElement(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func sanitizeNode(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	switch n.Type {
	case html.TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Data}
	case html.CommentNode:
		return nil
	case html.ElementNode:
		tag := strings.ToLower(strings.TrimSpace(n.Data))
		if _, blocked := blockedTags[tag]; blocked {
			return nil
		}
		clone := &html.Node{Type: html.ElementNode, Data: n.Data, Namespace: n.Namespace}
		for _, a := range n.Attr {
			k := strings.ToLower(strings.TrimSpace(a.Key))
			if k == "" || strings.HasPrefix(k, "on") || k == "style" {
				continue
			}
			if k == "href" && strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "javascript:") {
				continue
			}
			clone.Attr = append(clone.Attr, a)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			child := sanitizeNode(c)
			if child != nil {
				clone.AppendChild(child)
			}
		}
		return clone
	default:
		return nil
	}
}
