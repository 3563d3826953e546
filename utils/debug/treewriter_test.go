package debug

import (
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", format: "<p>", want: "<p>\n"},
		{name: "indented", depth: 2, format: "<b>", want: "    <b>\n"},
		{name: "formatted", depth: 1, format: "<%s>", args: []any{"span class=x"}, want: "  <span class=x>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		value string
		want  string
	}{
		{name: "empty text visible", value: "", want: "#text: \"\"\n"},
		{name: "whitespace", depth: 1, value: " a ", want: "  #text: \" a \"\n"},
		{name: "quotes", value: `say "hi"`, want: "#text: \"say \\\"hi\\\"\"\n"},
		{name: "newline", value: "a\nb", want: "#text: \"a\\nb\"\n"},
		{name: "invisible separator", value: "\u2063", want: "#text: \"\\u2063\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, "#text", tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Tree(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "<div>")
	tw.Caret(1, "start", 0)
	tw.Line(1, "<span>")
	tw.TextBlock(2, "#text", "abc")
	tw.Caret(3, "end", 2)

	want := "<div>\n  ^ start@0\n  <span>\n    #text: \"abc\"\n      ^ end@2\n"
	if got := tw.String(); got != want {
		t.Errorf("tree dump:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
