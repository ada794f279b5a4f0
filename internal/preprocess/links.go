package preprocess

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/ftdbook/internal/book"
	"github.com/dgallion1/ftdbook/internal/stringutil"
)

var includeDirective = regexp.MustCompile(`\{\{\s*#include\s+([^}]+?)\s*\}\}`)

// Links expands `{{#include file}}` directives in chapter content. The
// included file is resolved relative to the chapter's own directory, and
// an optional portion selects lines:
//
//	{{#include file.rs}}        the whole file
//	{{#include file.rs:4}}      line 4
//	{{#include file.rs::10}}    lines 1 through 10
//	{{#include file.rs:4:}}     line 4 to the end
//	{{#include file.rs:4:10}}   lines 4 through 10
//	{{#include file.rs:name}}   the lines between the `name` anchors
//
// A directive that cannot be resolved is left in place and logged, so a
// broken include never aborts the build.
type Links struct{}

// NewLinks returns the include-expanding preprocessor.
func NewLinks() *Links { return &Links{} }

func (*Links) Name() string { return "links" }

func (*Links) Run(ctx *Context, b *book.Book) error {
	b.ForEachMut(func(item *book.BookItem) {
		ch, ok := (*item).(*book.Chapter)
		if !ok || ch.IsDraft() {
			return
		}

		dir := filepath.Join(ctx.SrcDir, filepath.Dir(ch.Path))
		ch.Content = includeDirective.ReplaceAllStringFunc(ch.Content, func(match string) string {
			target := includeDirective.FindStringSubmatch(match)[1]
			expanded, err := expandInclude(dir, target)
			if err != nil {
				ctx.Log.Warn("unresolved include",
					"chapter", ch.Name, "directive", target, "error", err)
				return match
			}
			return expanded
		})
	})
	return nil
}

func expandInclude(dir, target string) (string, error) {
	path, portion, _ := strings.Cut(target, ":")
	if path == "" {
		return "", fmt.Errorf("include has no file name")
	}

	raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
	if err != nil {
		return "", err
	}
	content := strings.TrimSuffix(string(raw), "\n")

	if portion == "" {
		return content, nil
	}

	from, to, anchor, err := parsePortion(portion)
	if err != nil {
		return "", err
	}
	if anchor != "" {
		return stringutil.TakeAnchoredLines(content, anchor), nil
	}
	return stringutil.TakeLines(content, from, to), nil
}

// parsePortion reads the part after `file:`. Numeric forms are 1-based
// inclusive line ranges; anything non-numeric is an anchor name.
func parsePortion(portion string) (from, to int, anchor string, err error) {
	first, second, ranged := strings.Cut(portion, ":")

	if !ranged {
		if n, ok := parseLine(first); ok {
			// A single line.
			return n - 1, n, "", nil
		}
		return 0, 0, first, nil
	}

	from = 0
	if first != "" {
		n, ok := parseLine(first)
		if !ok {
			return 0, 0, "", fmt.Errorf("invalid start line %q", first)
		}
		from = n - 1
	}

	to = -1
	if second != "" {
		n, ok := parseLine(second)
		if !ok {
			return 0, 0, "", fmt.Errorf("invalid end line %q", second)
		}
		to = n
	}

	return from, to, "", nil
}

func parseLine(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
