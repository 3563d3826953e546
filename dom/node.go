package dom

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CreateElement returns detached element with consistent atom so it could be
// used as parsing context.
func CreateElement(tag string, attrs ...html.Attribute) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
		Attr:     attrs,
	}
}

func CreateTextNode(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// CloneNode copies node, when deep is set all descendants are copied as well.
// Result is always detached.
func CloneNode(n *html.Node, deep bool) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	if deep {
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			c.AppendChild(CloneNode(ch, true))
		}
	}
	return c
}

// Index returns position of node among its siblings.
func Index(n *html.Node) int {
	i := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		i++
	}
	return i
}

// Length is node length in DOM terms: number of bytes for character data,
// number of children otherwise.
func Length(n *html.Node) int {
	if isCharacterData(n) {
		return len(n.Data)
	}
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

func isCharacterData(n *html.Node) bool {
	return n.Type == html.TextNode || n.Type == html.CommentNode
}

func childAt(n *html.Node, i int) *html.Node {
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

func rootOf(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// IsInclusiveAncestor reports whether a is n or one of its ancestors.
func IsInclusiveAncestor(a, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == a {
			return true
		}
	}
	return false
}

// TextContent concatenates all descendant text.
func TextContent(n *html.Node) string {
	if isCharacterData(n) {
		return n.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				sb.WriteString(c.Data)
			case html.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

// InnerHTML serializes node children.
func InnerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// OuterHTML serializes node itself.
func OuterHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderNodes serializes list of (possibly detached) nodes.
func RenderNodes(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// SetInnerHTML replaces children of n with markup parsed in n context.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := ParseContextual(markup, n)
	if err != nil {
		return err
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// SetOuterHTML replaces n with markup parsed in context of its parent.
func SetOuterHTML(n *html.Node, markup string) error {
	if n.Parent == nil {
		return fmt.Errorf("%s has no parent: %w", describe(n), ErrHierarchyRequest)
	}
	nodes, err := ParseContextual(markup, n.Parent)
	if err != nil {
		return err
	}
	return ReplaceWith(n, nodes...)
}

// Detach removes node from its parent if any.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// ReplaceWith puts nodes in place of n, n is detached afterwards.
func ReplaceWith(n *html.Node, nodes ...*html.Node) error {
	if n.Parent == nil {
		return ErrHierarchyRequest
	}
	for _, c := range nodes {
		if c == n {
			continue
		}
		Detach(c)
		n.Parent.InsertBefore(c, n)
	}
	Detach(n)
	return nil
}

// Unwrap replaces element with its own children.
func Unwrap(n *html.Node) error {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return ReplaceWith(n, children...)
}

// TraverseUp returns closest inclusive ancestor element of n satisfying test.
// Walk stops at root which itself is never tested, nodes outside of root
// produce nil.
func TraverseUp(root, n *html.Node, test func(*html.Node) bool) *html.Node {
	for ; n != nil && n != root; n = n.Parent {
		if n.Type == html.ElementNode && test(n) {
			if IsInclusiveAncestor(root, n) {
				return n
			}
			return nil
		}
	}
	return nil
}

// FirstTextDescendant returns first non-empty text node under n in tree order.
func FirstTextDescendant(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if len(c.Data) > 0 {
				return c
			}
			continue
		}
		if t := FirstTextDescendant(c); t != nil {
			return t
		}
	}
	return nil
}

// LastTextDescendant returns last non-empty text node under n in tree order.
func LastTextDescendant(n *html.Node) *html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.TextNode {
			if len(c.Data) > 0 {
				return c
			}
			continue
		}
		if t := LastTextDescendant(c); t != nil {
			return t
		}
	}
	return nil
}

// HasClass checks class attribute membership.
func HasClass(n *html.Node, class string) bool {
	return slices.Contains(Classes(n), class)
}

// Classes returns whitespace separated values of class attribute.
func Classes(n *html.Node) []string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			return strings.Fields(a.Val)
		}
	}
	return nil
}

// compareTreeOrder returns -1 when a precedes b, 1 when it follows and 0 for
// the same node or nodes from different trees.
func compareTreeOrder(a, b *html.Node) int {
	if a == b {
		return 0
	}
	pa, pb := ancestry(a), ancestry(b)
	i := 0
	for i < len(pa) && i < len(pb) && pa[i] == pb[i] {
		i++
	}
	switch {
	case i == 0:
		return 0
	case i == len(pa):
		return -1
	case i == len(pb):
		return 1
	case Index(pa[i]) < Index(pb[i]):
		return -1
	default:
		return 1
	}
}

// ancestry returns path from tree root down to n.
func ancestry(n *html.Node) []*html.Node {
	var path []*html.Node
	for ; n != nil; n = n.Parent {
		path = append(path, n)
	}
	slices.Reverse(path)
	return path
}
