package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Default selection markers recognized by SelectMarked.
const (
	DefaultOpenMarker  = "[["
	DefaultCloseMarker = "]]"
)

// SelectMarked looks for open and close marker strings in text under editable
// root, removes them and selects everything in between. Close marker is
// searched after open one.
func SelectMarked(d *Document, open, close string) error {
	if len(open) == 0 || len(close) == 0 {
		return fmt.Errorf("empty selection marker: %w", ErrInvalidState)
	}

	var (
		startNode, endNode     *html.Node
		startOffset, endOffset int
	)
	walkText(d.root, func(n *html.Node) bool {
		from := 0
		if startNode == nil {
			i := strings.Index(n.Data, open)
			if i < 0 {
				return true
			}
			n.Data = n.Data[:i] + n.Data[i+len(open):]
			startNode, startOffset, from = n, i, i
		}
		i := strings.Index(n.Data[from:], close)
		if i < 0 {
			return true
		}
		n.Data = n.Data[:from+i] + n.Data[from+i+len(close):]
		endNode, endOffset = n, from+i
		return false
	})

	if startNode == nil {
		return fmt.Errorf("selection start marker %q: %w", open, ErrNotFound)
	}
	if endNode == nil {
		return fmt.Errorf("selection end marker %q: %w", close, ErrNotFound)
	}

	r := NewRange(d.root)
	if err := r.SetStart(startNode, startOffset); err != nil {
		return err
	}
	if err := r.SetEnd(endNode, endOffset); err != nil {
		return err
	}
	d.Select(r)
	return nil
}

// SelectBySelector selects contents of the first element matching selector.
func SelectBySelector(d *Document, selector string) error {
	n, err := d.Query(selector)
	if err != nil {
		return err
	}
	r := NewRange(d.root)
	if err := r.SelectNodeContents(n); err != nil {
		return err
	}
	d.Select(r)
	return nil
}

// walkText visits text nodes in tree order until fn returns false.
func walkText(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if !fn(c) {
				return false
			}
			continue
		}
		if !walkText(c, fn) {
			return false
		}
	}
	return true
}
