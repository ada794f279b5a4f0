package preprocess

import (
	"path/filepath"
	"strings"

	"github.com/dgallion1/ftdbook/internal/book"
)

// Index renames README chapters to index so their output lands at each
// directory's index location. Only the output path changes; SourcePath
// keeps pointing at the file that was read.
type Index struct{}

// NewIndex returns the README-renaming preprocessor.
func NewIndex() *Index { return &Index{} }

func (*Index) Name() string { return "index" }

func (*Index) Run(ctx *Context, b *book.Book) error {
	b.ForEachMut(func(item *book.BookItem) {
		ch, ok := (*item).(*book.Chapter)
		if !ok || ch.IsDraft() {
			return
		}
		if isReadme(ch.Path) {
			ch.Path = filepath.Join(filepath.Dir(ch.Path), "index.md")
		}
	})
	return nil
}

func isReadme(path string) bool {
	base := filepath.Base(path)
	return strings.EqualFold(base, "README.md")
}
