// Package mdstream flattens a goldmark AST into the event stream consumed
// by the summary parser and the markup transpiler. Start/end events bracket
// every construct so a consumer can skip an unsupported construct by
// draining events until the matching end tag.
package mdstream

import (
	"bytes"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Options controls how the Markdown source is parsed.
type Options struct {
	// CurlyQuotes enables typographic punctuation substitution.
	CurlyQuotes bool
	// Plain disables the table, footnote, strikethrough and task-list
	// extensions. SUMMARY.md is parsed plain, chapter content is not.
	Plain bool
}

// typographer substitutes punctuation with the actual Unicode characters.
// The extension's defaults are HTML entity strings, which would end up as
// literal text in non-HTML output.
var typographer = extension.NewTypographer(
	extension.WithTypographicSubstitutions(extension.TypographicSubstitutions{
		extension.LeftSingleQuote:  []byte("‘"),
		extension.RightSingleQuote: []byte("’"),
		extension.LeftDoubleQuote:  []byte("“"),
		extension.RightDoubleQuote: []byte("”"),
		extension.EnDash:           []byte("–"),
		extension.EmDash:           []byte("—"),
		extension.Ellipsis:         []byte("…"),
		extension.LeftAngleQuote:   []byte("«"),
		extension.RightAngleQuote:  []byte("»"),
		extension.Apostrophe:       []byte("’"),
	}),
)

// Parse runs the source through goldmark (tables, footnotes, strikethrough
// and task lists enabled unless Plain is set) and returns the flattened
// event sequence.
func Parse(src []byte, opts Options) []Event {
	var exts []goldmark.Extender
	if !opts.Plain {
		exts = append(exts,
			extension.Table,
			extension.Footnote,
			extension.Strikethrough,
			extension.TaskList,
		)
	}
	if opts.CurlyQuotes {
		exts = append(exts, typographer)
	}

	md := goldmark.New(goldmark.WithExtensions(exts...))
	doc := md.Parser().Parse(text.NewReader(src))

	b := &builder{src: src}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		b.emit(n)
	}
	return b.events
}

type builder struct {
	src    []byte
	events []Event
	offset int
}

func (b *builder) push(ev Event) {
	ev.Offset = b.offset
	b.events = append(b.events, ev)
}

// note records the position of a node when one is known; events emitted
// afterwards inherit it.
func (b *builder) note(n ast.Node) {
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		if lines.Len() > 0 {
			b.offset = lines.At(0).Start
		}
	}
	if t, ok := n.(*ast.Text); ok {
		b.offset = t.Segment.Start
	}
}

func (b *builder) emit(n ast.Node) {
	b.note(n)

	switch node := n.(type) {
	case *ast.Heading:
		b.bracket(n, Event{Kind: KindStart, Tag: TagHeading, Level: node.Level})

	case *ast.Paragraph:
		b.bracket(n, Event{Kind: KindStart, Tag: TagParagraph})

	case *ast.TextBlock:
		// Tight list items wrap their inlines in a TextBlock; consumers
		// treat it like a paragraph.
		b.bracket(n, Event{Kind: KindStart, Tag: TagParagraph})

	case *ast.Blockquote:
		b.bracket(n, Event{Kind: KindStart, Tag: TagBlockQuote})

	case *ast.List:
		b.bracket(n, Event{Kind: KindStart, Tag: TagList})

	case *ast.ListItem:
		b.bracket(n, Event{Kind: KindStart, Tag: TagItem})

	case *ast.ThematicBreak:
		b.push(Event{Kind: KindRule})

	case *ast.FencedCodeBlock:
		var info string
		if node.Info != nil {
			info = string(node.Info.Segment.Value(b.src))
		}
		b.push(Event{Kind: KindStart, Tag: TagCodeBlock, Info: info})
		b.codeLines(n)
		b.push(Event{Kind: KindEnd, Tag: TagCodeBlock, Info: info})

	case *ast.CodeBlock:
		b.push(Event{Kind: KindStart, Tag: TagCodeBlock})
		b.codeLines(n)
		b.push(Event{Kind: KindEnd, Tag: TagCodeBlock})

	case *ast.HTMLBlock:
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(b.src))
		}
		if node.HasClosure() {
			buf.Write(node.ClosureLine.Value(b.src))
		}
		b.push(Event{Kind: KindHTML, Text: buf.String()})

	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			buf.Write(seg.Value(b.src))
		}
		b.push(Event{Kind: KindHTML, Text: buf.String()})

	case *ast.Text:
		seg := node.Segment
		if seg.Len() > 0 {
			b.push(Event{Kind: KindText, Text: string(seg.Value(b.src))})
		}
		if node.HardLineBreak() {
			b.push(Event{Kind: KindHardBreak})
		} else if node.SoftLineBreak() {
			b.push(Event{Kind: KindSoftBreak})
		}

	case *ast.String:
		b.push(Event{Kind: KindText, Text: string(node.Value)})

	case *ast.CodeSpan:
		var buf bytes.Buffer
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Segment.Value(b.src))
			}
		}
		b.push(Event{Kind: KindCode, Text: buf.String()})

	case *ast.Emphasis:
		tag := TagEmphasis
		if node.Level >= 2 {
			tag = TagStrong
		}
		b.bracket(n, Event{Kind: KindStart, Tag: tag})

	case *ast.Link:
		b.bracket(n, Event{
			Kind:  KindStart,
			Tag:   TagLink,
			Dest:  string(node.Destination),
			Title: string(node.Title),
		})

	case *ast.AutoLink:
		url := string(node.URL(b.src))
		b.push(Event{Kind: KindStart, Tag: TagLink, Dest: url, Auto: true})
		b.push(Event{Kind: KindText, Text: string(node.Label(b.src))})
		b.push(Event{Kind: KindEnd, Tag: TagLink, Dest: url, Auto: true})

	case *ast.Image:
		b.bracket(n, Event{
			Kind:  KindStart,
			Tag:   TagImage,
			Dest:  string(node.Destination),
			Title: string(node.Title),
		})

	case *east.Table:
		b.bracket(n, Event{Kind: KindStart, Tag: TagTable})
	case *east.TableHeader:
		b.bracket(n, Event{Kind: KindStart, Tag: TagTableHead})
	case *east.TableRow:
		b.bracket(n, Event{Kind: KindStart, Tag: TagTableRow})
	case *east.TableCell:
		b.bracket(n, Event{Kind: KindStart, Tag: TagTableCell})

	case *east.Strikethrough:
		b.bracket(n, Event{Kind: KindStart, Tag: TagStrikethrough})

	case *east.FootnoteList:
		// The list node is an artifact of goldmark's rendering model;
		// only the definitions themselves become events.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			b.emit(c)
		}
	case *east.Footnote:
		b.bracket(n, Event{Kind: KindStart, Tag: TagFootnoteDefinition})
	case *east.FootnoteLink:
		b.push(Event{Kind: KindFootnoteRef})
	case *east.FootnoteBacklink:
		// no representation in the stream

	case *east.TaskCheckBox:
		b.push(Event{Kind: KindTaskMarker})

	default:
		// Unknown node: surface its children so no text silently
		// disappears from the stream.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			b.emit(c)
		}
	}
}

// bracket emits the start event, the node's children, then the matching
// end event.
func (b *builder) bracket(n ast.Node, start Event) {
	b.push(start)
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.emit(c)
	}
	end := start
	end.Kind = KindEnd
	b.push(end)
}

// codeLines emits the literal lines of a code block as text events.
func (b *builder) codeLines(n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.offset = seg.Start
		b.push(Event{Kind: KindText, Text: string(seg.Value(b.src))})
	}
}

// Position converts a byte offset into a 1-based line and column. The
// column counts characters from the preceding newline inclusive, so on
// lines past the first it is 1-based.
func Position(src []byte, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	sol := bytes.LastIndexByte(before, '\n')
	if sol < 0 {
		sol = 0
	}
	col = utf8.RuneCount(src[sol:offset])
	return line, col
}
