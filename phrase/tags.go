package phrase

import (
	"regexp"

	"golang.org/x/net/html"

	"mephrase/dom"
)

var (
	leadingClosingTags  = regexp.MustCompile(`^(</[^>]+>)*`)
	trailingOpeningTags = regexp.MustCompile(`(<[^/>][^>]*>)*$`)
)

// AddTags wraps markup in phrase tags. Serialized selections may start with
// closing tags or end with opening tags of partially selected elements, those
// are kept outside of the wrapper: `a<b>` becomes `<span>a</span><b>` and
// `</b>a` becomes `</b><span>a</span>`. Renderer writes void elements
// self-closed, so `a<br/>` becomes `<span>a</span><br/>`. Nothing is wrapped
// when only such tags are present.
func (c *Config) AddTags(markup string) string {
	var closingAtStart, openingAtEnd string

	if loc := leadingClosingTags.FindStringIndex(markup); loc != nil {
		closingAtStart, markup = markup[:loc[1]], markup[loc[1]:]
	}
	if loc := trailingOpeningTags.FindStringIndex(markup); loc != nil {
		markup, openingAtEnd = markup[:loc[0]], markup[loc[0]:]
	}
	if len(markup) > 0 {
		markup = c.openingTag + markup + c.closingTag
	}
	return closingAtStart + markup + openingAtEnd
}

// StripTags unwraps phrase elements under container keeping their content in
// place and returns number of unwrapped elements.
func (c *Config) StripTags(container *html.Node) (int, error) {
	phrases := c.FindAll(container)
	for _, p := range phrases {
		if err := dom.Unwrap(p); err != nil {
			return 0, err
		}
	}
	return len(phrases), nil
}

// FindAll returns phrase elements under n in tree order.
func (c *Config) FindAll(n *html.Node) []*html.Node {
	var out []*html.Node
	for _, found := range dom.MatchAll(n, c.matcher()) {
		if c.Matches(found) {
			out = append(out, found)
		}
	}
	return out
}
