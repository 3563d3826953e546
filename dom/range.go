package dom

import (
	"cmp"
	"fmt"

	"golang.org/x/net/html"
)

// Range is a pair of boundary points in the tree. Offset is child index for
// element containers and byte offset for text and comment containers.
// Boundaries are maintained the way live DOM ranges are only for mutations
// performed through Range methods.
type Range struct {
	startNode   *html.Node
	startOffset int
	endNode     *html.Node
	endOffset   int
}

// NewRange returns range collapsed at the beginning of n.
func NewRange(n *html.Node) *Range {
	return &Range{startNode: n, endNode: n}
}

func (r *Range) StartContainer() *html.Node { return r.startNode }
func (r *Range) StartOffset() int           { return r.startOffset }
func (r *Range) EndContainer() *html.Node   { return r.endNode }
func (r *Range) EndOffset() int             { return r.endOffset }

func (r *Range) Collapsed() bool {
	return r.startNode == r.endNode && r.startOffset == r.endOffset
}

func (r *Range) Clone() *Range {
	c := *r
	return &c
}

func (r *Range) String() string {
	return fmt.Sprintf("[%s@%d - %s@%d]", describe(r.startNode), r.startOffset, describe(r.endNode), r.endOffset)
}

func checkBoundary(n *html.Node, offset int) error {
	if n == nil {
		return fmt.Errorf("boundary container is nil: %w", ErrInvalidNodeType)
	}
	if n.Type == html.DoctypeNode {
		return fmt.Errorf("boundary container is doctype: %w", ErrInvalidNodeType)
	}
	if offset < 0 || offset > Length(n) {
		return fmt.Errorf("offset %d for %s (length %d): %w", offset, describe(n), Length(n), ErrIndexSize)
	}
	return nil
}

// SetStart moves start boundary, end is collapsed to it when it would precede
// start.
func (r *Range) SetStart(n *html.Node, offset int) error {
	if err := checkBoundary(n, offset); err != nil {
		return err
	}
	if r.endNode == nil || rootOf(n) != rootOf(r.endNode) || comparePoints(n, offset, r.endNode, r.endOffset) > 0 {
		r.endNode, r.endOffset = n, offset
	}
	r.startNode, r.startOffset = n, offset
	return nil
}

// SetEnd moves end boundary, start is collapsed to it when it would follow
// end.
func (r *Range) SetEnd(n *html.Node, offset int) error {
	if err := checkBoundary(n, offset); err != nil {
		return err
	}
	if r.startNode == nil || rootOf(n) != rootOf(r.startNode) || comparePoints(n, offset, r.startNode, r.startOffset) < 0 {
		r.startNode, r.startOffset = n, offset
	}
	r.endNode, r.endOffset = n, offset
	return nil
}

func (r *Range) SetStartBefore(n *html.Node) error {
	if n.Parent == nil {
		return fmt.Errorf("%s has no parent: %w", describe(n), ErrInvalidNodeType)
	}
	return r.SetStart(n.Parent, Index(n))
}

func (r *Range) SetStartAfter(n *html.Node) error {
	if n.Parent == nil {
		return fmt.Errorf("%s has no parent: %w", describe(n), ErrInvalidNodeType)
	}
	return r.SetStart(n.Parent, Index(n)+1)
}

func (r *Range) SetEndBefore(n *html.Node) error {
	if n.Parent == nil {
		return fmt.Errorf("%s has no parent: %w", describe(n), ErrInvalidNodeType)
	}
	return r.SetEnd(n.Parent, Index(n))
}

func (r *Range) SetEndAfter(n *html.Node) error {
	if n.Parent == nil {
		return fmt.Errorf("%s has no parent: %w", describe(n), ErrInvalidNodeType)
	}
	return r.SetEnd(n.Parent, Index(n)+1)
}

// SelectNode makes range to contain exactly n.
func (r *Range) SelectNode(n *html.Node) error {
	if n.Parent == nil {
		return fmt.Errorf("%s has no parent: %w", describe(n), ErrInvalidNodeType)
	}
	i := Index(n)
	r.startNode, r.startOffset = n.Parent, i
	r.endNode, r.endOffset = n.Parent, i+1
	return nil
}

// SelectNodeContents makes range to span everything inside n.
func (r *Range) SelectNodeContents(n *html.Node) error {
	if n.Type == html.DoctypeNode {
		return fmt.Errorf("cannot select doctype contents: %w", ErrInvalidNodeType)
	}
	r.startNode, r.startOffset = n, 0
	r.endNode, r.endOffset = n, Length(n)
	return nil
}

func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.endNode, r.endOffset = r.startNode, r.startOffset
		return
	}
	r.startNode, r.startOffset = r.endNode, r.endOffset
}

// CommonAncestor returns the deepest node containing both boundaries.
func (r *Range) CommonAncestor() *html.Node {
	ca := r.startNode
	for ca != nil && !IsInclusiveAncestor(ca, r.endNode) {
		ca = ca.Parent
	}
	return ca
}

// CloneContents copies everything range spans into detached "div" container.
// Partially selected elements are copied shallowly with only selected part of
// their content.
func (r *Range) CloneContents() *html.Node {
	container := CreateElement("div")
	for _, n := range cloneContents(r.startNode, r.startOffset, r.endNode, r.endOffset) {
		container.AppendChild(n)
	}
	return container
}

func cloneContents(sn *html.Node, so int, en *html.Node, eo int) []*html.Node {
	if sn == en && so == eo {
		return nil
	}
	if sn == en && isCharacterData(sn) {
		c := CloneNode(sn, false)
		c.Data = sn.Data[so:eo]
		return []*html.Node{c}
	}

	ca := sn
	for !IsInclusiveAncestor(ca, en) {
		ca = ca.Parent
	}

	var firstPartial, lastPartial *html.Node
	if !IsInclusiveAncestor(sn, en) {
		for c := ca.FirstChild; c != nil; c = c.NextSibling {
			if IsInclusiveAncestor(c, sn) {
				firstPartial = c
				break
			}
		}
	}
	if !IsInclusiveAncestor(en, sn) {
		for c := ca.LastChild; c != nil; c = c.PrevSibling {
			if IsInclusiveAncestor(c, en) {
				lastPartial = c
				break
			}
		}
	}

	var out []*html.Node
	if firstPartial != nil {
		if isCharacterData(firstPartial) {
			c := CloneNode(sn, false)
			c.Data = sn.Data[so:]
			out = append(out, c)
		} else {
			c := CloneNode(firstPartial, false)
			for _, n := range cloneContents(sn, so, firstPartial, Length(firstPartial)) {
				c.AppendChild(n)
			}
			out = append(out, c)
		}
	}
	for c := ca.FirstChild; c != nil; c = c.NextSibling {
		if contained(c, sn, so, en, eo) {
			out = append(out, CloneNode(c, true))
		}
	}
	if lastPartial != nil {
		if isCharacterData(lastPartial) {
			c := CloneNode(en, false)
			c.Data = en.Data[:eo]
			out = append(out, c)
		} else {
			c := CloneNode(lastPartial, false)
			for _, n := range cloneContents(lastPartial, 0, en, eo) {
				c.AppendChild(n)
			}
			out = append(out, c)
		}
	}
	return out
}

// DeleteContents removes everything range spans, partially selected elements
// stay in place with selected part of their content removed. Range is
// collapsed afterwards.
func (r *Range) DeleteContents() {
	if r.Collapsed() {
		return
	}
	sn, so, en, eo := r.startNode, r.startOffset, r.endNode, r.endOffset

	if sn == en && isCharacterData(sn) {
		sn.Data = sn.Data[:so] + sn.Data[eo:]
		r.endNode, r.endOffset = sn, so
		return
	}

	var remove []*html.Node
	var collect func(*html.Node)
	collect = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case contained(c, sn, so, en, eo):
				remove = append(remove, c)
			case IsInclusiveAncestor(c, sn) || IsInclusiveAncestor(c, en):
				collect(c)
			}
		}
	}
	collect(r.CommonAncestor())

	newNode, newOffset := sn, so
	if !IsInclusiveAncestor(sn, en) {
		ref := sn
		for ref.Parent != nil && !IsInclusiveAncestor(ref.Parent, en) {
			ref = ref.Parent
		}
		newNode, newOffset = ref.Parent, Index(ref)+1
	}

	if isCharacterData(sn) {
		sn.Data = sn.Data[:so]
	}
	for _, n := range remove {
		n.Parent.RemoveChild(n)
	}
	if isCharacterData(en) {
		en.Data = en.Data[eo:]
	}

	r.startNode, r.startOffset = newNode, newOffset
	r.endNode, r.endOffset = newNode, newOffset
}

// InsertNodes puts nodes at the start of the range, splitting text container
// when necessary. Collapsed range is extended to cover inserted nodes.
func (r *Range) InsertNodes(nodes ...*html.Node) error {
	sn, so := r.startNode, r.startOffset
	if sn.Type == html.CommentNode || (sn.Type == html.TextNode && sn.Parent == nil) {
		return fmt.Errorf("cannot insert into %s: %w", describe(sn), ErrHierarchyRequest)
	}
	for _, n := range nodes {
		if IsInclusiveAncestor(n, sn) {
			return fmt.Errorf("%s contains insertion point: %w", describe(n), ErrHierarchyRequest)
		}
	}

	var parent, ref *html.Node
	if sn.Type == html.TextNode {
		parent, ref = sn.Parent, r.splitText(sn, so)
	} else {
		parent, ref = sn, childAt(sn, so)
	}

	collapsed := r.Collapsed()
	for _, n := range nodes {
		Detach(n)
		r.insertBefore(parent, n, ref)
	}
	if collapsed {
		if ref == nil {
			r.endNode, r.endOffset = parent, Length(parent)
		} else {
			r.endNode, r.endOffset = parent, Index(ref)
		}
	}
	return nil
}

// InsertBefore inserts detached n into parent before ref (nil ref appends),
// adjusting range boundaries the way DOM does for live ranges.
func (r *Range) InsertBefore(parent, n, ref *html.Node) error {
	if n.Parent != nil {
		return fmt.Errorf("%s is attached: %w", describe(n), ErrHierarchyRequest)
	}
	if ref != nil && ref.Parent != parent {
		return fmt.Errorf("%s is not a child of %s: %w", describe(ref), describe(parent), ErrNotFound)
	}
	r.insertBefore(parent, n, ref)
	return nil
}

func (r *Range) insertBefore(parent, n, ref *html.Node) {
	index := Length(parent)
	if ref != nil {
		index = Index(ref)
	}
	parent.InsertBefore(n, ref)
	if r.startNode == parent && r.startOffset > index {
		r.startOffset++
	}
	if r.endNode == parent && r.endOffset > index {
		r.endOffset++
	}
}

// RemoveNode detaches n adjusting range boundaries the way DOM does for live
// ranges.
func (r *Range) RemoveNode(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	index := Index(n)
	adjust := func(node *html.Node, offset int) (*html.Node, int) {
		switch {
		case IsInclusiveAncestor(n, node):
			return parent, index
		case node == parent && offset > index:
			return node, offset - 1
		}
		return node, offset
	}
	r.startNode, r.startOffset = adjust(r.startNode, r.startOffset)
	r.endNode, r.endOffset = adjust(r.endNode, r.endOffset)
	parent.RemoveChild(n)
}

// splitText cuts text node at offset and returns newly created tail node.
func (r *Range) splitText(n *html.Node, offset int) *html.Node {
	tail := CreateTextNode(n.Data[offset:])
	n.Data = n.Data[:offset]
	r.insertBefore(n.Parent, tail, n.NextSibling)
	if r.endNode == n && r.endOffset > offset {
		r.endNode, r.endOffset = tail, r.endOffset-offset
	}
	return tail
}

// contained reports whether node lies entirely inside range boundaries.
func contained(n, sn *html.Node, so int, en *html.Node, eo int) bool {
	return comparePoints(n, 0, sn, so) > 0 && comparePoints(n, Length(n), en, eo) < 0
}

// comparePoints returns position of boundary point A relative to boundary
// point B.
func comparePoints(nodeA *html.Node, offsetA int, nodeB *html.Node, offsetB int) int {
	if nodeA == nodeB {
		return cmp.Compare(offsetA, offsetB)
	}
	if compareTreeOrder(nodeA, nodeB) > 0 {
		return -comparePoints(nodeB, offsetB, nodeA, offsetA)
	}
	if IsInclusiveAncestor(nodeA, nodeB) {
		child := nodeB
		for child.Parent != nodeA {
			child = child.Parent
		}
		if Index(child) < offsetA {
			return 1
		}
	}
	return -1
}

func describe(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case html.TextNode:
		return fmt.Sprintf("#text(%q)", n.Data)
	case html.ElementNode:
		return "<" + n.Data + ">"
	case html.DocumentNode:
		return "#document"
	case html.CommentNode:
		return "#comment"
	default:
		return "#node"
	}
}
