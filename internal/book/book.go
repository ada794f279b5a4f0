// Package book holds the in-memory model of a loaded book: a tree of
// chapters mirroring the SUMMARY.md structure, with depth-first iteration
// and a controlled mutate-in-place traversal.
package book

import (
	"fmt"

	"github.com/dgallion1/ftdbook/internal/summary"
)

// Book is a tree of BookItems, accessible either by iterating immutably
// with Iter or by recursively applying a function with ForEachMut.
type Book struct {
	// Sections are the top-level items of the book.
	Sections []BookItem
}

// BookItem is one node of the book tree: a *Chapter, a Separator, or a
// PartTitle.
type BookItem interface {
	bookItem()
}

// Chapter usually maps to a single file on disk, though it may contain
// multiple sub-chapters.
type Chapter struct {
	// Name of the chapter.
	Name string
	// Content is the raw Markdown text. Empty for a draft chapter.
	Content string
	// Number is set when the chapter is in the numbered section.
	Number summary.SectionNumber
	// SubItems are the nested items of this chapter.
	SubItems []BookItem
	// Path is the chapter's location relative to the SUMMARY.md file.
	// Empty for a draft chapter.
	Path string
	// SourcePath is the chapter's source file relative to the SUMMARY.md
	// file. Equal to Path at load time; later rewriting may change Path.
	SourcePath string
	// ParentNames lists the name of every chapter above this one,
	// root first.
	ParentNames []string
}

// Separator is a section separator.
type Separator struct{}

// PartTitle is the title of a part.
type PartTitle string

func (*Chapter) bookItem()  {}
func (Separator) bookItem() {}
func (PartTitle) bookItem() {}

// NewChapter creates a chapter backed by a source file.
func NewChapter(name, content, path string, parentNames []string) *Chapter {
	return &Chapter{
		Name:        name,
		Content:     content,
		Path:        path,
		SourcePath:  path,
		ParentNames: parentNames,
	}
}

// NewDraftChapter creates a chapter that has no source file and thus no
// content.
func NewDraftChapter(name string, parentNames []string) *Chapter {
	return &Chapter{
		Name:        name,
		ParentNames: parentNames,
	}
}

// IsDraft reports whether the chapter has no backing source file.
func (c *Chapter) IsDraft() bool {
	return c.Path == ""
}

// String renders the chapter's number (when present) and name.
func (c *Chapter) String() string {
	if len(c.Number) > 0 {
		return fmt.Sprintf("%s %s", c.Number, c.Name)
	}
	return c.Name
}

// Iter returns a fresh depth-first iterator over the items in the book.
func (b *Book) Iter() *Items {
	pending := make([]BookItem, len(b.Sections))
	copy(pending, b.Sections)
	return &Items{pending: pending}
}

// ForEachMut recursively applies fn to a pointer at every item slot in the
// book, descending into a chapter's sub-items before visiting the chapter
// itself. It exists instead of a mutable iterator so structural mutation
// cannot invalidate an in-flight traversal.
func (b *Book) ForEachMut(fn func(*BookItem)) {
	forEachMut(fn, b.Sections)
}

func forEachMut(fn func(*BookItem), items []BookItem) {
	for i := range items {
		if ch, ok := items[i].(*Chapter); ok {
			forEachMut(fn, ch.SubItems)
		}
		fn(&items[i])
	}
}

// PushItem appends a top-level item to the book.
func (b *Book) PushItem(item BookItem) *Book {
	b.Sections = append(b.Sections, item)
	return b
}

// Items is a depth-first iterator over the items of a book. Create one
// with Book.Iter.
type Items struct {
	pending []BookItem
}

// Next returns the next item in pre-order, or false when the traversal is
// done.
func (it *Items) Next() (BookItem, bool) {
	if len(it.pending) == 0 {
		return nil, false
	}
	item := it.pending[0]
	it.pending = it.pending[1:]

	if ch, ok := item.(*Chapter); ok && len(ch.SubItems) > 0 {
		// Prepend the sub-items so natural order is preserved.
		next := make([]BookItem, 0, len(ch.SubItems)+len(it.pending))
		next = append(next, ch.SubItems...)
		next = append(next, it.pending...)
		it.pending = next
	}

	return item, true
}
