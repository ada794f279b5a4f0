package summary

import (
	"fmt"
	"strings"

	"github.com/dgallion1/ftdbook/internal/mdstream"
)

// Parse reads the given SUMMARY.md source and produces a Summary.
// Unsupported Markdown constructs are skipped; structurally invalid input
// yields a *ParseError with the offending line and column.
func Parse(source string) (*Summary, error) {
	src := []byte(source)
	// The SUMMARY grammar is plain CommonMark; extension constructs stay
	// literal text here.
	events := mdstream.Parse(src, mdstream.Options{Plain: true})
	p := &parser{src: src, cur: mdstream.NewCursor(events)}
	return p.parse()
}

// ParseError reports malformed SUMMARY.md structure.
type ParseError struct {
	Line int // 1-based
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse SUMMARY.md line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

type parser struct {
	src    []byte
	cur    *mdstream.Cursor
	offset int
}

func (p *parser) next() (mdstream.Event, bool) {
	ev, ok := p.cur.Next()
	if ok {
		p.offset = ev.Offset
	}
	return ev, ok
}

func (p *parser) parse() (*Summary, error) {
	title := p.parseTitle()

	prefix, err := p.parseAffix(true)
	if err != nil {
		return nil, fmt.Errorf("parsing the prefix chapters: %w", err)
	}
	numbered, err := p.parseParts()
	if err != nil {
		return nil, fmt.Errorf("parsing the numbered chapters: %w", err)
	}
	suffix, err := p.parseAffix(false)
	if err != nil {
		return nil, fmt.Errorf("parsing the suffix chapters: %w", err)
	}

	return &Summary{
		Title:            title,
		PrefixChapters:   prefix,
		NumberedChapters: numbered,
		SuffixChapters:   suffix,
	}, nil
}

// parseTitle consumes a leading level-1 heading, skipping any HTML such as
// a comment line in front of it.
func (p *parser) parseTitle() string {
	for {
		ev, ok := p.next()
		if !ok {
			return ""
		}
		switch {
		case isHeading1Start(ev):
			return stringify(p.collectUntil(isHeading1End))
		case ev.Kind == mdstream.KindHTML:
			// skip
		default:
			p.cur.PushBack(ev)
			return ""
		}
	}
}

// parseAffix parses the flat prefix or suffix chapter region.
func (p *parser) parseAffix(isPrefix bool) ([]Item, error) {
	var items []Item
	for {
		ev, ok := p.next()
		if !ok {
			return items, nil
		}
		switch {
		case isListStart(ev) || isHeading1Start(ev):
			if isPrefix {
				// The numbered section begins here.
				p.cur.PushBack(ev)
				return items, nil
			}
			return nil, p.parseError("Suffix chapters cannot be followed by a list")
		case isLinkStart(ev):
			items = append(items, p.parseLink(ev))
		case ev.Kind == mdstream.KindRule:
			items = append(items, Separator{})
		}
	}
}

// parseParts parses the numbered section: any number of parts, each with
// an optional level-1 heading title followed by chapter lists.
func (p *parser) parseParts() ([]Item, error) {
	var parts []Item

	// Section numbers continue through all parts, so the counters live
	// out here.
	rootNumber := SectionNumber{}
	rootItems := uint32(0)

	for {
		var title string
		var hasTitle bool

		ev, ok := p.next()
		if !ok {
			break
		}
		switch {
		case isParagraphStart(ev):
			// The suffix chapters begin here.
			p.cur.PushBack(ev)
			return parts, nil
		case isHeading1Start(ev):
			title = stringify(p.collectUntil(isHeading1End))
			hasTitle = true
		default:
			p.cur.PushBack(ev)
		}

		numbered, err := p.parseNumbered(&rootItems, rootNumber)
		if err != nil {
			return nil, err
		}

		if hasTitle {
			parts = append(parts, PartTitle(title))
		}
		parts = append(parts, numbered...)
	}

	return parts, nil
}

// parseNumbered parses one numbered block: the lists (and separators)
// making up a part. It stops at a new part heading, at the start of the
// suffix chapters, or at end of input.
func (p *parser) parseNumbered(rootItems *uint32, rootNumber SectionNumber) ([]Item, error) {
	var items []Item

	// The very first paragraph marks the start of the list and is
	// skipped; any later one means the suffix chapters have begun.
	first := true

	for {
		ev, ok := p.next()
		if !ok {
			return items, nil
		}
		switch {
		case isParagraphStart(ev):
			if !first {
				p.cur.PushBack(ev)
				return items, nil
			}
		case isHeading1Start(ev):
			// A new part begins.
			p.cur.PushBack(ev)
			return items, nil
		case isListStart(ev):
			p.cur.PushBack(ev)
			bunch, err := p.parseNestedNumbered(rootNumber)
			if err != nil {
				return nil, err
			}

			// Root sections of a list that follows a separator or an
			// earlier part restart at 1; re-base them so numbering is
			// continuous.
			updateSectionNumbers(bunch, 0, *rootItems)
			*rootItems += uint32(len(bunch))
			items = append(items, bunch...)
		case ev.Kind == mdstream.KindStart:
			p.skipUntilEnd(ev.Tag)
		case ev.Kind == mdstream.KindRule:
			items = append(items, Separator{})
		}

		first = false
	}
}

// parseNestedNumbered parses the items of one list level, recursing when a
// nested list follows an item.
func (p *parser) parseNestedNumbered(parent SectionNumber) ([]Item, error) {
	var items []Item

	for {
		ev, ok := p.next()
		if !ok {
			return items, nil
		}
		switch {
		case ev.Kind == mdstream.KindStart && ev.Tag == mdstream.TagItem:
			item, err := p.parseNestedItem(parent, len(items))
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case isListStart(ev):
			// A list with no preceding items is a stray wrapper, not a
			// nested level.
			if len(items) == 0 {
				continue
			}
			last := lastLink(items)
			if last == nil {
				return nil, p.parseError("the list of summary items doesn't contain any links")
			}
			sub, err := p.parseNestedNumbered(last.Number)
			if err != nil {
				return nil, err
			}
			last.NestedItems = sub
		case ev.Kind == mdstream.KindEnd && ev.Tag == mdstream.TagList:
			return items, nil
		}
	}
}

// parseNestedItem parses a single list item, which must contain exactly
// one hyperlink.
func (p *parser) parseNestedItem(parent SectionNumber, numExisting int) (Item, error) {
	for {
		ev, ok := p.next()
		if !ok {
			break
		}
		switch {
		case isParagraphStart(ev):
			continue
		case isLinkStart(ev):
			link := p.parseLink(ev)
			link.Number = parent.Child(uint32(numExisting))
			return link, nil
		}
		break
	}
	return nil, p.parseError("The link items for nested chapters must only contain a hyperlink")
}

// parseLink finishes parsing a link once its start event has been read.
func (p *parser) parseLink(start mdstream.Event) *Link {
	href := strings.ReplaceAll(start.Dest, "%20", " ")
	content := p.collectUntil(func(ev mdstream.Event) bool {
		return ev.Kind == mdstream.KindEnd && ev.Tag == mdstream.TagLink
	})
	return &Link{
		Name:     stringify(content),
		Location: href,
	}
}

// collectUntil consumes and returns events up to (excluding) the first one
// matching the delimiter, or to end of input.
func (p *parser) collectUntil(match func(mdstream.Event) bool) []mdstream.Event {
	var events []mdstream.Event
	for {
		ev, ok := p.next()
		if !ok || match(ev) {
			return events
		}
		events = append(events, ev)
	}
}

// skipUntilEnd drains the contents of an unsupported construct.
func (p *parser) skipUntilEnd(tag mdstream.Tag) {
	for {
		ev, ok := p.next()
		if !ok {
			return
		}
		if ev.Kind == mdstream.KindEnd && ev.Tag == tag {
			return
		}
	}
}

func (p *parser) parseError(msg string) error {
	line, col := mdstream.Position(p.src, p.offset)
	return &ParseError{Line: line, Col: col, Msg: msg}
}

// updateSectionNumbers adds `by` to the section number component at the
// given depth for every link in the tree.
func updateSectionNumbers(items []Item, level int, by uint32) {
	for _, item := range items {
		link, ok := item.(*Link)
		if !ok {
			continue
		}
		if level < len(link.Number) {
			link.Number[level] += by
		}
		updateSectionNumbers(link.NestedItems, level, by)
	}
}

// lastLink returns the most recently added link, or nil if there is none.
func lastLink(items []Item) *Link {
	for i := len(items) - 1; i >= 0; i-- {
		if link, ok := items[i].(*Link); ok {
			return link
		}
	}
	return nil
}

// stringify removes styling from a sequence of events and returns the
// plain text.
func stringify(events []mdstream.Event) string {
	var b strings.Builder
	for _, ev := range events {
		switch ev.Kind {
		case mdstream.KindText, mdstream.KindCode:
			b.WriteString(ev.Text)
		case mdstream.KindSoftBreak:
			b.WriteString(" ")
		}
	}
	return b.String()
}

func isHeading1Start(ev mdstream.Event) bool {
	return ev.Kind == mdstream.KindStart && ev.Tag == mdstream.TagHeading && ev.Level == 1
}

func isHeading1End(ev mdstream.Event) bool {
	return ev.Kind == mdstream.KindEnd && ev.Tag == mdstream.TagHeading && ev.Level == 1
}

func isListStart(ev mdstream.Event) bool {
	return ev.Kind == mdstream.KindStart && ev.Tag == mdstream.TagList
}

func isLinkStart(ev mdstream.Event) bool {
	return ev.Kind == mdstream.KindStart && ev.Tag == mdstream.TagLink
}

func isParagraphStart(ev mdstream.Event) bool {
	return ev.Kind == mdstream.KindStart && ev.Tag == mdstream.TagParagraph
}
