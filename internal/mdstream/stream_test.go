package mdstream

import (
	"reflect"
	"strings"
	"testing"
)

// stripOffsets drops positions so tests can compare event shape only.
func stripOffsets(events []Event) []Event {
	out := make([]Event, len(events))
	for i, ev := range events {
		ev.Offset = 0
		out[i] = ev
	}
	return out
}

func TestParse_HeadingAndParagraph(t *testing.T) {
	src := []byte("## Title\n\nSome text.\n")
	got := stripOffsets(Parse(src, Options{}))

	want := []Event{
		{Kind: KindStart, Tag: TagHeading, Level: 2},
		{Kind: KindText, Text: "Title"},
		{Kind: KindEnd, Tag: TagHeading, Level: 2},
		{Kind: KindStart, Tag: TagParagraph},
		{Kind: KindText, Text: "Some text."},
		{Kind: KindEnd, Tag: TagParagraph},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected events:\ngot  %v\nwant %v", got, want)
	}
}

func TestParse_InlineStyling(t *testing.T) {
	src := []byte("*em* and **strong** and `code`\n")
	got := stripOffsets(Parse(src, Options{}))

	want := []Event{
		{Kind: KindStart, Tag: TagParagraph},
		{Kind: KindStart, Tag: TagEmphasis},
		{Kind: KindText, Text: "em"},
		{Kind: KindEnd, Tag: TagEmphasis},
		{Kind: KindText, Text: " and "},
		{Kind: KindStart, Tag: TagStrong},
		{Kind: KindText, Text: "strong"},
		{Kind: KindEnd, Tag: TagStrong},
		{Kind: KindText, Text: " and "},
		{Kind: KindCode, Text: "code"},
		{Kind: KindEnd, Tag: TagParagraph},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected events:\ngot  %v\nwant %v", got, want)
	}
}

func TestParse_Link(t *testing.T) {
	src := []byte("[label](dest.md)\n")
	got := stripOffsets(Parse(src, Options{}))

	want := []Event{
		{Kind: KindStart, Tag: TagParagraph},
		{Kind: KindStart, Tag: TagLink, Dest: "dest.md"},
		{Kind: KindText, Text: "label"},
		{Kind: KindEnd, Tag: TagLink, Dest: "dest.md"},
		{Kind: KindEnd, Tag: TagParagraph},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected events:\ngot  %v\nwant %v", got, want)
	}
}

func TestParse_AutoLink(t *testing.T) {
	src := []byte("<https://example.com>\n")
	events := Parse(src, Options{})

	var link *Event
	for i := range events {
		if events[i].Kind == KindStart && events[i].Tag == TagLink {
			link = &events[i]
			break
		}
	}
	if link == nil {
		t.Fatal("expected a link event")
	}
	if !link.Auto || link.Dest != "https://example.com" {
		t.Errorf("unexpected autolink event: %+v", link)
	}
}

func TestParse_FencedCode(t *testing.T) {
	src := []byte("```rust\nfn main() {}\n```\n")
	got := stripOffsets(Parse(src, Options{}))

	want := []Event{
		{Kind: KindStart, Tag: TagCodeBlock, Info: "rust"},
		{Kind: KindText, Text: "fn main() {}\n"},
		{Kind: KindEnd, Tag: TagCodeBlock, Info: "rust"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected events:\ngot  %v\nwant %v", got, want)
	}
}

func TestParse_TightList(t *testing.T) {
	src := []byte("- one\n- two\n")
	got := stripOffsets(Parse(src, Options{}))

	want := []Event{
		{Kind: KindStart, Tag: TagList},
		{Kind: KindStart, Tag: TagItem},
		{Kind: KindStart, Tag: TagParagraph},
		{Kind: KindText, Text: "one"},
		{Kind: KindEnd, Tag: TagParagraph},
		{Kind: KindEnd, Tag: TagItem},
		{Kind: KindStart, Tag: TagItem},
		{Kind: KindStart, Tag: TagParagraph},
		{Kind: KindText, Text: "two"},
		{Kind: KindEnd, Tag: TagParagraph},
		{Kind: KindEnd, Tag: TagItem},
		{Kind: KindEnd, Tag: TagList},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected events:\ngot  %v\nwant %v", got, want)
	}
}

func TestParse_LineBreaks(t *testing.T) {
	src := []byte("soft\nbreak\n\nhard  \nbreak\n")
	events := Parse(src, Options{})

	var soft, hard int
	for _, ev := range events {
		switch ev.Kind {
		case KindSoftBreak:
			soft++
		case KindHardBreak:
			hard++
		}
	}
	if soft != 1 || hard != 1 {
		t.Errorf("expected 1 soft and 1 hard break, got %d and %d", soft, hard)
	}
}

func TestParse_Rule(t *testing.T) {
	src := []byte("before\n\n---\n\nafter\n")
	events := Parse(src, Options{})

	var rules int
	for _, ev := range events {
		if ev.Kind == KindRule {
			rules++
		}
	}
	if rules != 1 {
		t.Errorf("expected 1 rule, got %d", rules)
	}
}

func TestParse_HTMLBlock(t *testing.T) {
	src := []byte("<!-- a comment -->\n")
	events := Parse(src, Options{})

	if len(events) == 0 || events[0].Kind != KindHTML {
		t.Fatalf("expected an HTML event, got %v", events)
	}
	if events[0].Text != "<!-- a comment -->\n" {
		t.Errorf("unexpected HTML text %q", events[0].Text)
	}
}

func TestParse_InlineHTML(t *testing.T) {
	src := []byte("before <span class=\"x\">inline</span> after\n")
	events := Parse(src, Options{})

	var raw []string
	for _, ev := range events {
		if ev.Kind == KindHTML {
			raw = append(raw, ev.Text)
		}
	}
	if len(raw) != 2 || raw[0] != `<span class="x">` || raw[1] != "</span>" {
		t.Errorf("unexpected raw HTML events %q", raw)
	}
}

func TestParse_Table(t *testing.T) {
	src := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")
	events := Parse(src, Options{})

	counts := map[Tag]int{}
	for _, ev := range events {
		if ev.Kind == KindStart {
			counts[ev.Tag]++
		}
	}
	if counts[TagTable] != 1 {
		t.Errorf("expected 1 table, got %d", counts[TagTable])
	}
	if counts[TagTableHead] != 1 {
		t.Errorf("expected 1 table head, got %d", counts[TagTableHead])
	}
	if counts[TagTableRow] != 1 {
		t.Errorf("expected 1 body row, got %d", counts[TagTableRow])
	}
	if counts[TagTableCell] != 4 {
		t.Errorf("expected 4 cells, got %d", counts[TagTableCell])
	}
}

func TestParse_ExtensionInlines(t *testing.T) {
	src := []byte("~~gone~~\n\n- [x] done\n")
	events := Parse(src, Options{})

	var strickenStart, taskMarkers int
	for _, ev := range events {
		if ev.Kind == KindStart && ev.Tag == TagStrikethrough {
			strickenStart++
		}
		if ev.Kind == KindTaskMarker {
			taskMarkers++
		}
	}
	if strickenStart != 1 {
		t.Errorf("expected 1 strikethrough, got %d", strickenStart)
	}
	if taskMarkers != 1 {
		t.Errorf("expected 1 task marker, got %d", taskMarkers)
	}
}

func TestParse_CurlyQuotes(t *testing.T) {
	joined := func(events []Event) string {
		var s string
		for _, ev := range events {
			if ev.Kind == KindText {
				s += ev.Text
			}
		}
		return s
	}

	src := []byte("\"quoted\"\n")
	if got := joined(Parse(src, Options{})); got != "\"quoted\"" {
		t.Errorf("expected straight quotes, got %q", got)
	}

	// The substitutions must be the characters themselves, never HTML
	// entity strings.
	cases := []struct {
		md   string
		want string
	}{
		{"\"quoted\"\n", "“quoted”"},
		{"it's\n", "it’s"},
		{"a -- b\n", "a – b"},
		{"wait...\n", "wait…"},
	}
	for _, tc := range cases {
		got := joined(Parse([]byte(tc.md), Options{CurlyQuotes: true}))
		if got != tc.want {
			t.Errorf("Parse(%q) text = %q, want %q", tc.md, got, tc.want)
		}
		if strings.Contains(got, "&") {
			t.Errorf("Parse(%q) leaked an entity: %q", tc.md, got)
		}
	}
}

func TestParse_PlainDisablesExtensions(t *testing.T) {
	src := []byte("| a |\n|---|\n| 1 |\n\n~~x~~\n\n- [x] item\n\n[^1]: note\n")
	events := Parse(src, Options{Plain: true})

	for _, ev := range events {
		switch {
		case ev.Tag == TagTable, ev.Tag == TagTableHead, ev.Tag == TagTableRow, ev.Tag == TagTableCell:
			t.Fatalf("plain parsing produced a table event: %v", ev)
		case ev.Tag == TagStrikethrough:
			t.Fatalf("plain parsing produced a strikethrough event: %v", ev)
		case ev.Tag == TagFootnoteDefinition, ev.Kind == KindFootnoteRef:
			t.Fatalf("plain parsing produced a footnote event: %v", ev)
		case ev.Kind == KindTaskMarker:
			t.Fatalf("plain parsing produced a task marker: %v", ev)
		}
	}

	var text string
	for _, ev := range events {
		if ev.Kind == KindText {
			text += ev.Text
		}
	}
	if !strings.Contains(text, "~~x~~") {
		t.Errorf("extension syntax must stay literal text, got %q", text)
	}
}

func TestPosition(t *testing.T) {
	src := []byte("first\nsecond line\nthird\n")

	cases := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 0},
		{3, 1, 3},
		{6, 2, 1},
		{13, 2, 8},
		{18, 3, 1},
	}
	for _, tc := range cases {
		line, col := Position(src, tc.offset)
		if line != tc.line || col != tc.col {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tc.offset, line, col, tc.line, tc.col)
		}
	}
}

func TestPosition_MultibyteColumn(t *testing.T) {
	src := []byte("a\néé x\n")

	// The x sits after two 2-byte runes and a space on line 2.
	offset := 2 + 2 + 2 + 1
	line, col := Position(src, offset)
	if line != 2 || col != 4 {
		t.Errorf("got %d:%d, want 2:4", line, col)
	}
}

func TestPosition_ClampsPastEnd(t *testing.T) {
	src := []byte("ab\n")
	line, col := Position(src, 100)
	if line != 2 || col != 1 {
		t.Errorf("got %d:%d, want 2:1", line, col)
	}
}
