package mdstream

import "fmt"

// Kind classifies a stream event.
type Kind int

const (
	KindStart Kind = iota
	KindEnd
	KindText
	KindCode
	KindHTML
	KindSoftBreak
	KindHardBreak
	KindRule
	KindFootnoteRef
	KindTaskMarker
)

// Tag identifies which construct a start/end event opens or closes.
type Tag int

const (
	TagNone Tag = iota
	TagParagraph
	TagHeading
	TagBlockQuote
	TagCodeBlock
	TagList
	TagItem
	TagFootnoteDefinition
	TagTable
	TagTableHead
	TagTableRow
	TagTableCell
	TagEmphasis
	TagStrong
	TagStrikethrough
	TagLink
	TagImage
)

// Event is one element of the flat stream produced by parsing Markdown.
// Only the fields relevant to the Kind/Tag combination are populated.
type Event struct {
	Kind  Kind
	Tag   Tag    // valid for KindStart and KindEnd
	Level int    // heading level, when Tag == TagHeading
	Dest  string // destination, when Tag is TagLink or TagImage
	Title string // link/image title
	Info  string // info string, when Tag == TagCodeBlock (empty for indented blocks)
	Auto  bool   // autolink rather than an inline link, when Tag == TagLink
	Text  string // payload for KindText, KindCode, KindHTML, KindFootnoteRef

	// Offset is the best known byte offset of this event in the source,
	// used to report line/column positions in errors.
	Offset int
}

func (e Event) String() string {
	switch e.Kind {
	case KindStart:
		return fmt.Sprintf("Start(%s)", tagName(e.Tag))
	case KindEnd:
		return fmt.Sprintf("End(%s)", tagName(e.Tag))
	case KindText:
		return fmt.Sprintf("Text(%q)", e.Text)
	case KindCode:
		return fmt.Sprintf("Code(%q)", e.Text)
	case KindHTML:
		return fmt.Sprintf("HTML(%q)", e.Text)
	case KindSoftBreak:
		return "SoftBreak"
	case KindHardBreak:
		return "HardBreak"
	case KindRule:
		return "Rule"
	case KindFootnoteRef:
		return fmt.Sprintf("FootnoteRef(%q)", e.Text)
	case KindTaskMarker:
		return "TaskMarker"
	}
	return "Unknown"
}

func tagName(t Tag) string {
	switch t {
	case TagParagraph:
		return "Paragraph"
	case TagHeading:
		return "Heading"
	case TagBlockQuote:
		return "BlockQuote"
	case TagCodeBlock:
		return "CodeBlock"
	case TagList:
		return "List"
	case TagItem:
		return "Item"
	case TagFootnoteDefinition:
		return "FootnoteDefinition"
	case TagTable:
		return "Table"
	case TagTableHead:
		return "TableHead"
	case TagTableRow:
		return "TableRow"
	case TagTableCell:
		return "TableCell"
	case TagEmphasis:
		return "Emphasis"
	case TagStrong:
		return "Strong"
	case TagStrikethrough:
		return "Strikethrough"
	case TagLink:
		return "Link"
	case TagImage:
		return "Image"
	}
	return "None"
}
