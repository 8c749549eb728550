package prompt

import (
	"errors"
	"fmt"
)

// ErrUnsupportedContent reports that a page no longer has the shape the
// converter renders. It usually means the site changed its markup.
var ErrUnsupportedContent = errors.New("unsupported content")

// UnsupportedContentError names the element that refused content and what
// it was given. Kind is "text" for literal text, otherwise an element kind.
type UnsupportedContentError struct {
	Parent  string
	Kind    string
	Content string
}

func (e *UnsupportedContentError) Error() string {
	return fmt.Sprintf("content of type %q is unsupported by parent of type %q: %s", e.Kind, e.Parent, e.Content)
}

func (e *UnsupportedContentError) Is(target error) bool {
	return target == ErrUnsupportedContent
}
