// Package markup converts Markdown to FTD document markup. It consumes
// the flat event stream from mdstream and rewrites each event into an FTD
// emission, tracking which construct is currently open so text is
// attributed to the enclosing heading, paragraph or link.
package markup

import (
	"fmt"
	"strings"

	"github.com/dgallion1/ftdbook/internal/mdstream"
)

// Names of the constructs the rewriter tracks across events.
const (
	tagHeading   = "heading"
	tagParagraph = "paragraph"
	tagLink      = "link"
)

// Render converts a Markdown string to FTD markup.
func Render(md string, curlyQuotes bool) string {
	return RenderWithPath(md, curlyQuotes, "")
}

// RenderWithPath converts a Markdown string to FTD markup. When path is
// the non-empty book-relative location of the source chapter, relative and
// fragment-only links are rewritten to point at the chapter's permanent
// output location; this is what the aggregate print page relies on.
func RenderWithPath(md string, curlyQuotes bool, path string) string {
	events := mdstream.Parse([]byte(md), mdstream.Options{CurlyQuotes: curlyQuotes})
	events = preprocess(events, path)

	var out strings.Builder
	out.Grow(len(md) * 3 / 2)

	currentTag := ""
	tagStarted := false
	pending := ""

	for _, ev := range events {
		var parsed string
		parsed, currentTag, tagStarted = renderEvent(ev, currentTag, tagStarted)

		if !tagStarted {
			// The construct just closed; how its text joins the output
			// depends on which construct it was. Downstream FTD tooling
			// depends on this exact ordering.
			switch currentTag {
			case tagLink:
				pending = parsed + pending + "\n"
			case tagHeading:
				pending = pending + parsed + "\n"
			default:
				pending = pending + "\n" + parsed
			}
			out.WriteString(pending)
			pending = ""
		} else {
			pending = parsed
		}
	}

	return out.String()
}

// preprocess applies the event rewrites in pipeline order: fenced-info
// normalization, link adjustment, table wrapping.
func preprocess(events []mdstream.Event, path string) []mdstream.Event {
	out := make([]mdstream.Event, 0, len(events)+4)
	for _, ev := range events {
		ev = cleanCodeBlockInfo(ev)
		ev = adjustLinks(ev, path)

		switch {
		case ev.Kind == mdstream.KindStart && ev.Tag == mdstream.TagTable:
			out = append(out, mdstream.Event{Kind: mdstream.KindHTML, Text: `<div class="table-wrapper">`}, ev)
		case ev.Kind == mdstream.KindEnd && ev.Tag == mdstream.TagTable:
			out = append(out, ev, mdstream.Event{Kind: mdstream.KindHTML, Text: `</div>`})
		default:
			out = append(out, ev)
		}
	}
	return out
}

// renderEvent maps one event to its FTD emission and threads the
// open-construct state. Constructs without an emission rule still flip
// tagStarted, so that the assembly step above sees them.
func renderEvent(ev mdstream.Event, currentTag string, tagStarted bool) (string, string, bool) {
	var result string

	switch ev.Kind {
	case mdstream.KindStart:
		tagStarted = true
		switch ev.Tag {
		case mdstream.TagHeading:
			currentTag = tagHeading
			result = fmt.Sprintf("-- ds.h%d: ", ev.Level)
		case mdstream.TagParagraph:
			currentTag = tagParagraph
			result = "-- ds.markdown: "
		case mdstream.TagLink:
			if !ev.Auto {
				currentTag = tagLink
				parsedURL := strings.ReplaceAll(ev.Dest, ".ftd", "")
				result = fmt.Sprintf("(/%s/)", parsedURL)
			}
		case mdstream.TagImage:
			imageURL := strings.ReplaceAll(ev.Dest, "/", ".")
			result = "-- ds.image: \n                src: $assets.files" + imageURL + "\n                align: center"
		}

	case mdstream.KindText:
		tagStarted = false
		switch currentTag {
		case tagHeading:
			result = " " + ev.Text
		case tagLink:
			result = "[" + ev.Text + "]"
		case tagParagraph:
			result = ev.Text
		}

	case mdstream.KindEnd:
		tagStarted = false
	}

	return result, currentTag, tagStarted
}

// cleanCodeBlockInfo folds the whitespace inside a fenced code block's
// info string into single comma delimiters, since downstream consumers
// treat the info string as a token list.
func cleanCodeBlockInfo(ev mdstream.Event) mdstream.Event {
	if ev.Kind == mdstream.KindStart && ev.Tag == mdstream.TagCodeBlock {
		ev.Info = cleanInfo(ev.Info)
	}
	return ev
}

func cleanInfo(info string) string {
	var b strings.Builder
	for _, ch := range info {
		switch ch {
		case ' ', '\t':
			b.WriteRune(',')
		case '\n', '\v', '\f', '\r':
			// dropped
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}
