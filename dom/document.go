// Package dom provides DOM-like document on top of golang.org/x/net/html
// nodes: editable root, single range selection and range primitives needed to
// mutate selected markup.
package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Document is a parsed tree with an editable root element and its selection.
type Document struct {
	top  *html.Node
	root *html.Node
	sel  *Selection
}

type parseOptions struct {
	enc encoding.Encoding
}

type ParseOption func(*parseOptions)

// WithEncoding forces input encoding instead of detecting it.
func WithEncoding(enc encoding.Encoding) ParseOption {
	return func(o *parseOptions) {
		o.enc = enc
	}
}

func decodeInput(r io.Reader, opts []ParseOption) (io.Reader, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.enc != nil {
		return transform.NewReader(r, o.enc.NewDecoder()), nil
	}
	rd, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("unable to detect input encoding: %w", err)
	}
	return rd, nil
}

// ParseFragment reads editor content, it becomes children of a detached "div"
// root.
func ParseFragment(r io.Reader, opts ...ParseOption) (*Document, error) {
	rd, err := decodeInput(r, opts)
	if err != nil {
		return nil, err
	}
	root := CreateElement("div")
	nodes, err := html.ParseFragment(rd, root)
	if err != nil {
		return nil, fmt.Errorf("unable to parse fragment: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &Document{top: root, root: root, sel: NewSelection()}, nil
}

// ParseFragmentString is a convenience wrapper for already decoded markup.
func ParseFragmentString(markup string) (*Document, error) {
	return ParseFragment(strings.NewReader(markup), WithEncoding(encoding.Nop))
}

// ParseDocument reads complete page, first element matching rootSelector
// becomes editable root.
func ParseDocument(r io.Reader, rootSelector string, opts ...ParseOption) (*Document, error) {
	rd, err := decodeInput(r, opts)
	if err != nil {
		return nil, err
	}
	matcher, err := cascadia.Compile(rootSelector)
	if err != nil {
		return nil, fmt.Errorf("bad root selector %q: %w", rootSelector, err)
	}
	doc, err := goquery.NewDocumentFromReader(rd)
	if err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}
	found := doc.FindMatcher(matcher).First()
	if found.Length() == 0 {
		return nil, fmt.Errorf("root element %q: %w", rootSelector, ErrNotFound)
	}
	return &Document{top: doc.Nodes[0], root: found.Get(0), sel: NewSelection()}, nil
}

// Root returns editable root element.
func (d *Document) Root() *html.Node {
	return d.root
}

func (d *Document) Selection() *Selection {
	return d.sel
}

// Range returns active selection range which must be inside editable root.
func (d *Document) Range() (*Range, error) {
	r, err := d.sel.RangeAt(0)
	if err != nil {
		return nil, fmt.Errorf("no active selection: %w", errors.Join(ErrInvalidState, err))
	}
	if !IsInclusiveAncestor(d.root, r.StartContainer()) || !IsInclusiveAncestor(d.root, r.EndContainer()) {
		return nil, fmt.Errorf("selection %s is outside of editable root: %w", r, ErrNotFound)
	}
	return r, nil
}

// Select replaces active selection.
func (d *Document) Select(r *Range) {
	d.sel.RemoveAllRanges()
	d.sel.AddRange(r)
}

func (d *Document) ClearSelection() {
	d.sel.RemoveAllRanges()
}

// HTML returns editable root markup.
func (d *Document) HTML() (string, error) {
	return InnerHTML(d.root)
}

// Render writes whole document, for fragments only root content is written.
func (d *Document) Render(w io.Writer) error {
	if d.top == d.root {
		for c := d.root.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(w, c); err != nil {
				return err
			}
		}
		return nil
	}
	return html.Render(w, d.top)
}

// Query returns the first element under editable root matching selector.
func (d *Document) Query(selector string) (*html.Node, error) {
	nodes, err := QueryAll(d.root, selector)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("element %q: %w", selector, ErrNotFound)
	}
	return nodes[0], nil
}

// QueryAll returns descendants of n (n itself excluded) matching CSS selector
// in tree order.
func QueryAll(n *html.Node, selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("bad selector %q: %w", selector, err)
	}
	return MatchAll(n, sel), nil
}

// MatchAll is QueryAll for precompiled matcher.
func MatchAll(n *html.Node, m cascadia.Matcher) []*html.Node {
	var out []*html.Node
	for _, found := range cascadia.QueryAll(n, m) {
		if found != n {
			out = append(out, found)
		}
	}
	return out
}

// ParseContextual parses markup the way it would be parsed as content of
// context element. Text and comment contexts are replaced by their parent.
func ParseContextual(markup string, context *html.Node) ([]*html.Node, error) {
	for context != nil && context.Type != html.ElementNode {
		if context.Type == html.DocumentNode {
			context = nil
			break
		}
		context = context.Parent
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("unable to parse markup in context of %s: %w", describe(context), err)
	}
	return nodes, nil
}
