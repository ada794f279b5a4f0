// Package render turns a loaded book into build output. The FTD renderer
// writes one .ftd file per chapter plus the index, print and package
// manifest files.
package render

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/ftdbook/internal/book"
	"github.com/dgallion1/ftdbook/internal/config"
	"github.com/dgallion1/ftdbook/internal/fsutil"
	"github.com/dgallion1/ftdbook/internal/markup"
	"github.com/dgallion1/ftdbook/internal/stringutil"
)

// Renderer produces output from a render context.
type Renderer interface {
	Name() string
	Render(ctx *Context) error
}

// Context is everything a renderer needs: the book, its configuration and
// where the output goes.
type Context struct {
	// Root is the book's root directory.
	Root string
	// Book is the loaded book tree.
	Book *book.Book
	// Config is the book configuration.
	Config config.Config
	// Destination is the directory receiving the output.
	Destination string
}

// FTD renders every chapter to FTD markup.
type FTD struct {
	Log *slog.Logger
}

// NewFTD returns an FTD renderer logging through log.
func NewFTD(log *slog.Logger) *FTD {
	return &FTD{Log: log}
}

func (r *FTD) Name() string { return "ftd" }

// Render writes each non-draft chapter to <path>.ftd under the
// destination, an index.ftd copy of the first chapter, a print.ftd
// aggregate of the whole book, and the FPM.ftd package manifest. Draft
// chapters are navigation placeholders and produce no files.
func (r *FTD) Render(ctx *Context) error {
	curly := ctx.Config.Output.CurlyQuotes

	var printContent strings.Builder
	indexWritten := false

	it := ctx.Book.Iter()
	for item, ok := it.Next(); ok; item, ok = it.Next() {
		ch, isChapter := item.(*book.Chapter)
		if !isChapter || ch.IsDraft() {
			continue
		}

		r.Log.Debug("rendering chapter", "name", ch.Name, "path", ch.Path)

		rendered := markup.Render(ch.Content, curly)
		outPath := swapExtension(ch.Path)
		if err := fsutil.WriteFile(ctx.Destination, outPath, []byte(rendered)); err != nil {
			return fmt.Errorf("rendering chapter %q: %w", ch.Name, err)
		}

		// The print page keeps the chapter's own location so its
		// fragment links point back at the permanent output file.
		printContent.WriteString(markup.RenderWithPath(ch.Content, curly, ch.Path))
		printContent.WriteString("\n")

		if !indexWritten {
			if err := fsutil.WriteFile(ctx.Destination, "index.ftd", []byte(rendered)); err != nil {
				return fmt.Errorf("writing index.ftd: %w", err)
			}
			indexWritten = true
		}
	}

	if err := fsutil.WriteFile(ctx.Destination, "print.ftd", []byte(printContent.String())); err != nil {
		return fmt.Errorf("writing print.ftd: %w", err)
	}

	if err := fsutil.WriteFile(ctx.Destination, "FPM.ftd", []byte(r.manifest(ctx))); err != nil {
		return fmt.Errorf("writing FPM.ftd: %w", err)
	}

	return nil
}

// manifest builds the fastn package manifest, with the sitemap derived
// from the book tree.
func (r *FTD) manifest(ctx *Context) string {
	var b strings.Builder

	b.WriteString("-- import: fpm\n\n")
	fmt.Fprintf(&b, "-- fpm.package: %s\n\n", packageName(ctx.Config.Book.Title))
	b.WriteString("-- fpm.dependency: fifthtry.github.io/doc-site as ds\n\n")
	b.WriteString("-- fpm.auto-import: ds\n\n")
	b.WriteString("-- fpm.sitemap:\n\n")

	writeSitemap(&b, ctx.Book.Sections, 0)
	return b.String()
}

func writeSitemap(b *strings.Builder, items []book.BookItem, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range items {
		switch v := item.(type) {
		case book.PartTitle:
			fmt.Fprintf(b, "%s# %s\n", indent, string(v))
		case *book.Chapter:
			if v.IsDraft() {
				fmt.Fprintf(b, "%s- %s\n", indent, v.Name)
			} else {
				fmt.Fprintf(b, "%s- %s: %s\n", indent, v.Name, stringutil.NormalizePath(swapExtension(v.Path)))
			}
			writeSitemap(b, v.SubItems, depth+1)
		case book.Separator:
			// no sitemap entry
		}
	}
}

func packageName(title string) string {
	if title == "" {
		return "book"
	}
	name := stringutil.NormalizeID(title)
	if name == "" {
		return "book"
	}
	return name
}

// swapExtension replaces a chapter path's .md extension with .ftd.
func swapExtension(path string) string {
	if strings.HasSuffix(path, ".md") {
		return strings.TrimSuffix(path, ".md") + ".ftd"
	}
	return path + ".ftd"
}
