package stringutil

import (
	"strings"
	"testing"
)

func TestTakeLines(t *testing.T) {
	s := "Lorem\nipsum\ndolor\nsit\namet"

	cases := []struct {
		start, end int
		want       string
	}{
		{1, 3, "ipsum\ndolor"},
		{0, -1, s},
		{3, -1, "sit\namet"},
		{0, 1, "Lorem"},
		{4, 100, "amet"},
		{100, 200, ""},
		{3, 2, ""},
	}
	for _, tc := range cases {
		if got := TakeLines(s, tc.start, tc.end); got != tc.want {
			t.Errorf("TakeLines(%d, %d) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestTakeLines_Reassembly(t *testing.T) {
	s := "a\nb\nc\nd"
	joined := TakeLines(s, 0, 2) + "\n" + TakeLines(s, 2, -1)
	if joined != s {
		t.Errorf("adjacent ranges must reassemble the input, got %q", joined)
	}
}

func TestTakeAnchoredLines(t *testing.T) {
	s := strings.Join([]string{
		"before",
		"// ANCHOR: example",
		"fn main() {",
		"// ANCHOR: inner",
		"}",
		"// ANCHOR_END: example",
		"after",
	}, "\n")

	got := TakeAnchoredLines(s, "example")
	want := "fn main() {\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := TakeAnchoredLines(s, "missing"); got != "" {
		t.Errorf("expected nothing for a missing anchor, got %q", got)
	}
}

func TestNormalizeID(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Heading Text", "heading-text"},
		{"Mixed_Case-1", "mixed_case-1"},
		{"Punctuation! Stripped?", "punctuation-stripped"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeID(tc.in); got != tc.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBracketEscape(t *testing.T) {
	if got := BracketEscape("a <b> c"); got != "a &lt;b&gt; c" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := NormalizePath("a/b/c.md"); got != "a/b/c.md" {
		t.Errorf("got %q", got)
	}
}
