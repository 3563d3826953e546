package dom

import (
	"errors"
	"testing"

	"golang.org/x/net/html"
)

func parse(t *testing.T, markup string) *Document {
	t.Helper()
	d, err := ParseFragmentString(markup)
	if err != nil {
		t.Fatalf("ParseFragmentString() error = %v", err)
	}
	return d
}

func marked(t *testing.T, markup string) (*Document, *Range) {
	t.Helper()
	d := parse(t, markup)
	if err := SelectMarked(d, DefaultOpenMarker, DefaultCloseMarker); err != nil {
		t.Fatalf("SelectMarked() error = %v", err)
	}
	r, err := d.Range()
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	return d, r
}

func rootHTML(t *testing.T, d *Document) string {
	t.Helper()
	out, err := d.HTML()
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	return out
}

func TestRangeCloneContents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single_text", `ab[[cd]]ef`, `cd`},
		{"across_elements", `<p>a[[b<b>c</b>d</p><p>e]]f</p>`, `<p>b<b>c</b>d</p><p>e</p>`},
		{"partial_nested", `<i>x<b>y[[z</b></i>w]]`, `<i><b>z</b></i>w`},
		{"collapsed", `ab[[]]cd`, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, r := marked(t, tt.input)
			before := rootHTML(t, d)
			got, err := InnerHTML(r.CloneContents())
			if err != nil {
				t.Fatalf("InnerHTML() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("CloneContents() = %s, want %s", got, tt.want)
			}
			if rootHTML(t, d) != before {
				t.Fatalf("CloneContents() modified tree")
			}
		})
	}
}

func TestRangeDeleteContents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single_text", `ab[[cd]]ef`, `abef`},
		{"across_elements", `<p>a[[b<b>c</b>d</p><p>e]]f</p>`, `<p>a</p><p>f</p>`},
		{"whole_element", `x[[<b>y</b>]]z`, `xz`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, r := marked(t, tt.input)
			r.DeleteContents()
			if !r.Collapsed() {
				t.Fatalf("range is not collapsed after DeleteContents(): %s", r)
			}
			if got := rootHTML(t, d); got != tt.want {
				t.Fatalf("DeleteContents() result = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("collapse_point", func(t *testing.T) {
		d, r := marked(t, `<p>a[[b</p><p>c]]d</p>`)
		r.DeleteContents()
		if r.StartContainer() != d.Root() || r.StartOffset() != 1 {
			t.Fatalf("DeleteContents() collapsed to %s", r)
		}
	})
}

func TestRangeInsertNodes(t *testing.T) {
	t.Run("into_text", func(t *testing.T) {
		d, r := marked(t, `ab[[]]cd`)
		b := CreateElement("b")
		b.AppendChild(CreateTextNode("x"))
		if err := r.InsertNodes(b); err != nil {
			t.Fatalf("InsertNodes() error = %v", err)
		}
		if got, want := rootHTML(t, d), `ab<b>x</b>cd`; got != want {
			t.Fatalf("InsertNodes() result = %s, want %s", got, want)
		}
		got, err := InnerHTML(r.CloneContents())
		if err != nil {
			t.Fatalf("InnerHTML() error = %v", err)
		}
		if got != `<b>x</b>` {
			t.Fatalf("collapsed range was not extended over inserted node: %s", got)
		}
	})

	t.Run("into_element_end", func(t *testing.T) {
		d := parse(t, `<p>a</p>`)
		p := d.Root().FirstChild
		r := NewRange(d.Root())
		if err := r.SetStart(p, 1); err != nil {
			t.Fatalf("SetStart() error = %v", err)
		}
		if err := r.InsertNodes(CreateTextNode("b"), CreateTextNode("c")); err != nil {
			t.Fatalf("InsertNodes() error = %v", err)
		}
		if got, want := rootHTML(t, d), `<p>abc</p>`; got != want {
			t.Fatalf("InsertNodes() result = %s, want %s", got, want)
		}
		if r.EndContainer() != p || r.EndOffset() != 3 {
			t.Fatalf("unexpected range end %s", r)
		}
	})

	t.Run("ancestor_rejected", func(t *testing.T) {
		d, r := marked(t, `<p>a[[]]b</p>`)
		err := r.InsertNodes(d.Root().FirstChild)
		if !errors.Is(err, ErrHierarchyRequest) {
			t.Fatalf("InsertNodes() error = %v, want ErrHierarchyRequest", err)
		}
	})
}

func TestRangeLiveAdjustment(t *testing.T) {
	d := parse(t, `<i>a</i><b>b</b><u>c</u>`)
	root := d.Root()
	r := NewRange(root)
	if err := r.SetStart(root, 1); err != nil {
		t.Fatalf("SetStart() error = %v", err)
	}
	if err := r.SetEnd(root, 3); err != nil {
		t.Fatalf("SetEnd() error = %v", err)
	}

	if err := r.InsertBefore(root, CreateTextNode("x"), root.FirstChild); err != nil {
		t.Fatalf("InsertBefore() error = %v", err)
	}
	if r.StartOffset() != 2 || r.EndOffset() != 4 {
		t.Fatalf("insert before range: %s", r)
	}

	r.RemoveNode(root.FirstChild)
	if r.StartOffset() != 1 || r.EndOffset() != 3 {
		t.Fatalf("remove before range: %s", r)
	}

	b := root.FirstChild.NextSibling
	if err := r.SetStart(b.FirstChild, 1); err != nil {
		t.Fatalf("SetStart() error = %v", err)
	}
	r.RemoveNode(b)
	if r.StartContainer() != root || r.StartOffset() != 1 || r.EndOffset() != 2 {
		t.Fatalf("remove boundary container: %s", r)
	}

	if err := r.InsertBefore(root, root.FirstChild, nil); !errors.Is(err, ErrHierarchyRequest) {
		t.Fatalf("InsertBefore() attached node error = %v", err)
	}
}

func TestRangeBoundaries(t *testing.T) {
	d := parse(t, `<p>abc</p><p>def</p>`)
	first, second := d.Root().FirstChild, d.Root().LastChild

	r := NewRange(d.Root())
	if err := r.SetStart(first.FirstChild, 4); !errors.Is(err, ErrIndexSize) {
		t.Fatalf("SetStart() past text end error = %v", err)
	}
	if err := r.SetEnd(second.FirstChild, 1); err != nil {
		t.Fatalf("SetEnd() error = %v", err)
	}
	if err := r.SetStart(first.FirstChild, 1); err != nil {
		t.Fatalf("SetStart() error = %v", err)
	}
	if r.Collapsed() || r.CommonAncestor() != d.Root() {
		t.Fatalf("unexpected range %s", r)
	}

	// start after end collapses
	if err := r.SetStart(second.FirstChild, 2); err != nil {
		t.Fatalf("SetStart() error = %v", err)
	}
	if !r.Collapsed() || r.EndContainer() != second.FirstChild || r.EndOffset() != 2 {
		t.Fatalf("range was not collapsed: %s", r)
	}

	if err := r.SelectNode(second); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}
	if r.StartContainer() != d.Root() || r.StartOffset() != 1 || r.EndOffset() != 2 {
		t.Fatalf("SelectNode() = %s", r)
	}
	if err := r.SelectNode(d.Root()); !errors.Is(err, ErrInvalidNodeType) {
		t.Fatalf("SelectNode(root) error = %v", err)
	}

	c := r.Clone()
	c.Collapse(true)
	if r.Collapsed() || !c.Collapsed() {
		t.Fatalf("Clone() shares state with original")
	}
}

func TestCompareTreeOrder(t *testing.T) {
	d := parse(t, `<p><b>x</b></p><i>y</i>`)
	p := d.Root().FirstChild
	b := p.FirstChild
	i := d.Root().LastChild

	cases := []struct {
		a, b *html.Node
		want int
	}{
		{p, b, -1},
		{b, p, 1},
		{b, i, -1},
		{i, b.FirstChild, 1},
		{i, i, 0},
		{i, CreateElement("div"), 0},
	}
	for n, c := range cases {
		if got := compareTreeOrder(c.a, c.b); got != c.want {
			t.Errorf("case %d: compareTreeOrder() = %d, want %d", n, got, c.want)
		}
	}
}
