package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	// ErrFormNotFound reports that no element matched the form selector.
	ErrFormNotFound = errors.New("dom: form not found")
	// ErrInvalidSelector reports a selector that cascadia refused to compile.
	ErrInvalidSelector = errors.New("dom: invalid selector")
)

// Document wraps a parsed HTML tree. All form lookups and field state
// mutations go through it; rendering it back out reflects every marker the
// validator applied.
type Document struct {
	doc *goquery.Document
}

// Parse reads and parses an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString parses an HTML document held in memory.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Form returns the first element matching selector. The selector is compiled
// up front so a malformed one fails here instead of panicking later.
func (d *Document) Form(selector string) (*Form, error) {
	matcher, err := compileSelector(selector)
	if err != nil {
		return nil, err
	}

	sel := d.doc.FindMatcher(matcher).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: selector %q", ErrFormNotFound, selector)
	}
	return &Form{sel: sel}, nil
}

// HTML renders the document, including any validation markers applied since
// parsing.
func (d *Document) HTML() (string, error) {
	out, err := goquery.OuterHtml(d.doc.Selection)
	if err != nil {
		return "", fmt.Errorf("dom: render document: %w", err)
	}
	return out, nil
}

// CheckSelector reports whether raw compiles as a CSS selector. Callers that
// hand a selector to Field.Has or Field.WriteError validate it here first.
func CheckSelector(raw string) error {
	_, err := compileSelector(raw)
	return err
}

func compileSelector(raw string) (cascadia.Selector, error) {
	matcher, err := cascadia.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, raw, err)
	}
	return matcher, nil
}
