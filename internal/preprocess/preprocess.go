// Package preprocess rewrites a loaded book before rendering. The links
// preprocessor expands include directives, the index preprocessor moves
// README chapters to the index location.
package preprocess

import (
	"log/slog"

	"github.com/dgallion1/ftdbook/internal/book"
)

// Context is what a preprocessor needs to resolve paths and report
// problems.
type Context struct {
	// Root is the book's root directory.
	Root string
	// SrcDir is the directory containing the chapter sources.
	SrcDir string
	Log    *slog.Logger
}

// Preprocessor mutates a book in place between loading and rendering.
type Preprocessor interface {
	Name() string
	Run(ctx *Context, b *book.Book) error
}

// Default returns the preprocessors every build runs, in order.
func Default() []Preprocessor {
	return []Preprocessor{NewLinks(), NewIndex()}
}
