package dom

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

const page = `<!DOCTYPE html>
<html><head><title>t</title></head>
<body><nav>menu</nav><div class="editor" id="main"><p>one</p><p>two</p></div></body></html>`

func TestParseDocument(t *testing.T) {
	d, err := ParseDocument(strings.NewReader(page), "div.editor")
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if got := rootHTML(t, d); got != `<p>one</p><p>two</p>` {
		t.Fatalf("root content = %s", got)
	}

	if err := SelectBySelector(d, "p:last-child"); err != nil {
		t.Fatalf("SelectBySelector() error = %v", err)
	}
	r, err := d.Range()
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	r.DeleteContents()

	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `<nav>menu</nav>`) || !strings.Contains(out, `<p>one</p><p></p></div>`) {
		t.Fatalf("Render() = %s", out)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatalf("Render() lost doctype: %s", out)
	}
}

func TestParseDocumentErrors(t *testing.T) {
	if _, err := ParseDocument(strings.NewReader(page), "article"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing root error = %v", err)
	}
	if _, err := ParseDocument(strings.NewReader(page), "div["); err == nil {
		t.Fatalf("bad selector accepted")
	}
}

func TestParseFragmentEncoding(t *testing.T) {
	src, err := charmap.Windows1251.NewEncoder().String("<p>Привет</p>")
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}
	d, err := ParseFragment(strings.NewReader(src), WithEncoding(charmap.Windows1251))
	if err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	if got := rootHTML(t, d); got != `<p>Привет</p>` {
		t.Fatalf("decoded content = %s", got)
	}

	utf := `<meta charset="utf-8"><p>ü</p>`
	if d, err = ParseFragment(strings.NewReader(utf)); err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	if got := TextContent(d.Root()); got != "ü" {
		t.Fatalf("detected content = %q", got)
	}
}

func TestDocumentRange(t *testing.T) {
	d := parse(t, `<p>a</p>`)
	if _, err := d.Range(); !errors.Is(err, ErrInvalidState) || !errors.Is(err, ErrIndexSize) {
		t.Fatalf("Range() without selection error = %v", err)
	}

	outside := CreateElement("p")
	outside.AppendChild(CreateTextNode("x"))
	r := NewRange(outside)
	if err := r.SelectNodeContents(outside); err != nil {
		t.Fatalf("SelectNodeContents() error = %v", err)
	}
	d.Select(r)
	if _, err := d.Range(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Range() outside of root error = %v", err)
	}

	d.ClearSelection()
	if d.Selection().RangeCount() != 0 || !d.Selection().IsCollapsed() {
		t.Fatalf("selection was not cleared")
	}
}

func TestSelectionSingleRange(t *testing.T) {
	s := NewSelection()
	a, b := NewRange(CreateElement("a")), NewRange(CreateElement("b"))
	s.AddRange(a)
	s.AddRange(b)
	s.AddRange(nil)
	if s.RangeCount() != 1 {
		t.Fatalf("RangeCount() = %d, want 1", s.RangeCount())
	}
	if got, _ := s.RangeAt(0); got != a {
		t.Fatalf("RangeAt(0) is not the first added range")
	}
	if _, err := s.RangeAt(1); !errors.Is(err, ErrIndexSize) {
		t.Fatalf("RangeAt(1) error = %v", err)
	}
}

func TestParseContextual(t *testing.T) {
	d := parse(t, `<table><tbody><tr><td>x</td></tr></tbody></table>`)
	tbody, err := d.Query("tbody")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	nodes, err := ParseContextual(`<tr><td>y</td></tr>`, tbody)
	if err != nil {
		t.Fatalf("ParseContextual() error = %v", err)
	}
	if len(nodes) != 1 || nodes[0].Data != "tr" {
		t.Fatalf("ParseContextual() in tbody = %v", nodes)
	}

	td, err := d.Query("td")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	// text context is replaced by its parent
	if nodes, err = ParseContextual(`<b>z</b>`, td.FirstChild); err != nil {
		t.Fatalf("ParseContextual() error = %v", err)
	}
	if len(nodes) != 1 || nodes[0].Type != html.ElementNode || nodes[0].Data != "b" {
		t.Fatalf("ParseContextual() in text = %v", nodes)
	}
}

func TestQueryAll(t *testing.T) {
	d := parse(t, `<span class="a"><span class="a">x</span></span><span>y</span>`)
	found, err := QueryAll(d.Root(), "span.a")
	if err != nil {
		t.Fatalf("QueryAll() error = %v", err)
	}
	if len(found) != 2 || found[0] != d.Root().FirstChild {
		t.Fatalf("QueryAll() = %v", found)
	}
	inner, err := QueryAll(found[0], "span.a")
	if err != nil {
		t.Fatalf("QueryAll() error = %v", err)
	}
	if len(inner) != 1 || inner[0] != found[1] {
		t.Fatalf("QueryAll() must exclude starting node, got %v", inner)
	}
	if _, err := d.Query("em"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Query() error = %v", err)
	}
}
