package phrase

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"mephrase/dom"
)

// removeAncestorPhrase handles selection inside of a phrase element. Markup
// before and after the selection stays phrase, selection is replaced by a
// selected sentinel text node and the original selected markup is returned
// so the caller could put it back without phrase tags.
func (e *Engine) removeAncestorPhrase(anc *html.Node) (string, error) {
	snapshot, err := e.cloneSelection()
	if err != nil {
		return "", err
	}
	selected, err := dom.InnerHTML(snapshot)
	if err != nil {
		return "", err
	}

	marker := e.ph.marker()
	if err := e.replaceSelection([]*html.Node{marker}, false); err != nil {
		return "", err
	}
	if !dom.IsInclusiveAncestor(anc, marker) {
		return "", fmt.Errorf("selection escaped phrase element: %w", dom.ErrInvalidState)
	}

	parent := anc.Parent
	before, middle, after := splitAround(anc, marker)

	var pieces []*html.Node
	wrapped, err := e.rewrap(before, parent)
	if err != nil {
		return "", err
	}
	pieces = append(pieces, wrapped...)
	pieces = append(pieces, middle)
	if wrapped, err = e.rewrap(after, parent); err != nil {
		return "", err
	}
	pieces = append(pieces, wrapped...)

	if err := dom.ReplaceWith(anc, pieces...); err != nil {
		return "", err
	}

	text := e.ph.textNode()
	marker.Parent.InsertBefore(text, marker.NextSibling)
	dom.Detach(marker)

	r := dom.NewRange(e.doc.Root())
	if err := r.SelectNode(text); err != nil {
		return "", err
	}
	e.doc.Select(r)

	e.log.Debug("Phrase split around selection", zap.Int("pieces", len(pieces)))
	return selected, nil
}

// rewrap turns fragment into phrase markup parsed in context of parent.
// Empty fragments produce nothing.
func (e *Engine) rewrap(fragment []*html.Node, parent *html.Node) ([]*html.Node, error) {
	if len(fragment) == 0 {
		return nil, nil
	}
	markup, err := dom.RenderNodes(fragment)
	if err != nil {
		return nil, err
	}
	if len(markup) == 0 {
		return nil, nil
	}
	return dom.ParseContextual(e.cfg.AddTags(markup), parent)
}

// splitAround cuts anc content into parts before and after marker. Elements
// between anc and marker are copied around both parts and around marker
// itself (middle), so only anc is missing from the middle part. Empty text
// nodes and elements left without content by the cut are dropped.
func splitAround(anc, marker *html.Node) (before []*html.Node, middle *html.Node, after []*html.Node) {
	var beforeTail, afterHead *html.Node
	middle = marker
	for cur := marker; ; {
		p := cur.Parent
		bs := takeSiblings(p.FirstChild, cur)
		as := takeSiblings(cur.NextSibling, nil)
		if beforeTail != nil {
			bs = append(bs, beforeTail)
		}
		if afterHead != nil {
			as = append([]*html.Node{afterHead}, as...)
		}
		if p == anc {
			return bs, middle, as
		}
		beforeTail = cloneWith(p, bs)
		afterHead = cloneWith(p, as)

		dom.Detach(middle)
		m := dom.CloneNode(p, false)
		m.AppendChild(middle)
		middle = m
		cur = p
	}
}

// takeSiblings detaches siblings starting at from up to (not including) to.
func takeSiblings(from, to *html.Node) []*html.Node {
	var out []*html.Node
	for n := from; n != nil && n != to; {
		next := n.NextSibling
		dom.Detach(n)
		if n.Type != html.TextNode || len(n.Data) > 0 {
			out = append(out, n)
		}
		n = next
	}
	return out
}

func cloneWith(n *html.Node, children []*html.Node) *html.Node {
	if len(children) == 0 {
		return nil
	}
	c := dom.CloneNode(n, false)
	for _, ch := range children {
		c.AppendChild(ch)
	}
	return c
}
