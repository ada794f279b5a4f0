// Package summary parses SUMMARY.md, the table of contents describing how
// a book is laid out. Supported constructs are an optional title heading,
// flat lists of prefix/suffix links, part headings and (nested) numbered
// chapter lists; everything else is ignored or rejected.
package summary

import "slices"

// Summary is the parsed SUMMARY.md.
type Summary struct {
	// Title from the leading level-1 heading, if any.
	Title string
	// PrefixChapters come before the main text (e.g. an introduction).
	PrefixChapters []Item
	// NumberedChapters are the main chapters, broken into one or more
	// possibly named parts.
	NumberedChapters []Item
	// SuffixChapters come after the main text (e.g. a conclusion).
	SuffixChapters []Item
}

// Item is a single entry of a summary section: a *Link, a Separator, or a
// PartTitle. Consumers switch exhaustively over these three types.
type Item interface {
	summaryItem()
}

// Link is an entry referencing a chapter's source file, roughly the
// equivalent of `[Some section](./path/to/file.md)`.
type Link struct {
	// Name of the chapter.
	Name string
	// Location of the chapter's source file relative to the book's src
	// directory. Empty for a draft chapter.
	Location string
	// Number of this chapter, when it is in the numbered section.
	Number SectionNumber
	// NestedItems are the sub-entries of this chapter.
	NestedItems []Item
}

// Separator is a thematic break (`---`) between entries.
type Separator struct{}

// PartTitle names a group of consecutive numbered chapters.
type PartTitle string

func (*Link) summaryItem()     {}
func (Separator) summaryItem() {}
func (PartTitle) summaryItem() {}

// SectionNumber is a hierarchical chapter number such as "1.2.3.".
type SectionNumber []uint32

// Child returns a copy of the number extended with index+1, the number of
// the child at the given zero-based sibling index.
func (s SectionNumber) Child(index uint32) SectionNumber {
	child := make(SectionNumber, len(s), len(s)+1)
	copy(child, s)
	return append(child, index+1)
}

// String renders the dotted form with a trailing dot; an empty number
// renders as "0".
func (s SectionNumber) String() string {
	if len(s) == 0 {
		return "0"
	}
	var buf []byte
	for _, n := range s {
		buf = appendUint(buf, n)
		buf = append(buf, '.')
	}
	return string(buf)
}

// Equal reports whether two section numbers have identical sequences.
func (s SectionNumber) Equal(other SectionNumber) bool {
	return slices.Equal(s, other)
}

// Compare orders section numbers lexicographically by sequence.
func (s SectionNumber) Compare(other SectionNumber) int {
	return slices.Compare(s, other)
}

func appendUint(buf []byte, n uint32) []byte {
	if n >= 10 {
		buf = appendUint(buf, n/10)
	}
	return append(buf, byte('0'+n%10))
}
