package dom

import (
	"strings"

	"golang.org/x/net/html"

	"mephrase/utils/debug"
)

// Dump renders editable root as indented tree with selection boundaries, it is
// meant for debug logs.
func Dump(d *Document) string {
	var r *Range
	if d.sel.RangeCount() > 0 {
		r = d.sel.ranges[0]
	}
	tw := debug.NewTreeWriter()
	dumpNode(tw, d.root, 0, r)
	return tw.String()
}

func dumpNode(tw *debug.TreeWriter, n *html.Node, depth int, r *Range) {
	carets := func(offset int) {
		if r == nil {
			return
		}
		if r.startNode == n && r.startOffset == offset {
			tw.Caret(depth+1, "start", offset)
		}
		if r.endNode == n && r.endOffset == offset {
			tw.Caret(depth+1, "end", offset)
		}
	}

	switch n.Type {
	case html.TextNode:
		tw.TextBlock(depth, "#text", n.Data)
		if r != nil && r.startNode == n {
			tw.Caret(depth+1, "start", r.startOffset)
		}
		if r != nil && r.endNode == n {
			tw.Caret(depth+1, "end", r.endOffset)
		}
		return
	case html.CommentNode:
		tw.TextBlock(depth, "#comment", n.Data)
		return
	case html.ElementNode:
		var sb strings.Builder
		sb.WriteString(n.Data)
		for _, a := range n.Attr {
			sb.WriteString(" ")
			sb.WriteString(a.Key)
			sb.WriteString("=")
			sb.WriteString(a.Val)
		}
		tw.Line(depth, "<%s>", sb.String())
	default:
		tw.Line(depth, "%s", describe(n))
	}

	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		carets(i)
		dumpNode(tw, c, depth+1, r)
		i++
	}
	carets(i)
}
