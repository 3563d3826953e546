package phrase

import (
	"github.com/google/uuid"
	"golang.org/x/net/html"

	"mephrase/dom"
)

const placeholderAttr = "data-phrase-placeholder"

// placeholders creates transient sentinel nodes for a single toggle and keeps
// track of them so none survives the operation. Sentinel values are unique
// per operation and cannot collide with user content.
type placeholders struct {
	id    string
	text  string
	nodes []*html.Node
}

func newPlaceholders() *placeholders {
	id := uuid.NewString()
	return &placeholders{
		id:   id,
		text: "\u2063" + id + "\u2063",
	}
}

// textNode returns new sentinel text node. Text node is needed because
// selection boundaries are expected to be in text.
func (p *placeholders) textNode() *html.Node {
	n := dom.CreateTextNode(p.text)
	p.nodes = append(p.nodes, n)
	return n
}

// marker returns new sentinel element.
func (p *placeholders) marker() *html.Node {
	n := dom.CreateElement("div", html.Attribute{Key: placeholderAttr, Val: p.id})
	p.nodes = append(p.nodes, n)
	return n
}

func (p *placeholders) isPlaceholder(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return n.Data == p.text
	case html.ElementNode:
		for _, a := range n.Attr {
			if a.Key == placeholderAttr && a.Val == p.id {
				return true
			}
		}
	}
	return false
}

// strip removes copies of sentinels from detached snapshot.
func (p *placeholders) strip(container *html.Node) {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if p.isPlaceholder(c) {
				found = append(found, c)
				continue
			}
			walk(c)
		}
	}
	walk(container)
	for _, n := range found {
		dom.Detach(n)
	}
}

// sweep removes sentinels still present in the live tree keeping range
// boundaries valid.
func (p *placeholders) sweep(r *dom.Range) {
	for _, n := range p.nodes {
		if n.Parent != nil {
			r.RemoveNode(n)
		}
	}
}

// cleanup detaches whatever is left, used when operation is abandoned.
func (p *placeholders) cleanup() {
	for _, n := range p.nodes {
		dom.Detach(n)
	}
	p.nodes = nil
}
