package book

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/dgallion1/ftdbook/internal/stringutil"
	"github.com/dgallion1/ftdbook/internal/summary"
)

// Load reads SUMMARY.md from srcDir, parses it, optionally creates stub
// files for chapters that do not exist yet, and loads the whole book into
// memory.
func Load(srcDir string, createMissing bool) (*Book, error) {
	summaryPath := filepath.Join(srcDir, "SUMMARY.md")

	raw, err := os.ReadFile(summaryPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't open SUMMARY.md in %s: %w", srcDir, err)
	}

	s, err := summary.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("summary parsing failed for %s: %w", summaryPath, err)
	}

	if createMissing {
		if err := CreateMissing(srcDir, s); err != nil {
			return nil, fmt.Errorf("unable to create missing chapters: %w", err)
		}
	}

	return LoadFromSummary(s, srcDir)
}

// LoadFromSummary materializes a Book from an already-parsed summary. All
// chapter locations are resolved relative to srcDir.
func LoadFromSummary(s *summary.Summary, srcDir string) (*Book, error) {
	var sections []BookItem

	for _, group := range [][]summary.Item{s.PrefixChapters, s.NumberedChapters, s.SuffixChapters} {
		for _, item := range group {
			loaded, err := loadSummaryItem(item, srcDir, nil)
			if err != nil {
				return nil, err
			}
			sections = append(sections, loaded)
		}
	}

	return &Book{Sections: sections}, nil
}

func loadSummaryItem(item summary.Item, srcDir string, parentNames []string) (BookItem, error) {
	switch v := item.(type) {
	case summary.Separator:
		return Separator{}, nil
	case summary.PartTitle:
		return PartTitle(v), nil
	case *summary.Link:
		return loadChapter(v, srcDir, parentNames)
	}
	return nil, fmt.Errorf("unknown summary item %T", item)
}

func loadChapter(link *summary.Link, srcDir string, parentNames []string) (*Chapter, error) {
	var ch *Chapter

	if link.Location != "" {
		location := link.Location
		if !filepath.IsAbs(location) {
			location = filepath.Join(srcDir, location)
		}

		raw, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("chapter file not found, %s: %w", link.Location, err)
		}
		// Strip a UTF-8 BOM if present.
		raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

		stripped, err := filepath.Rel(srcDir, location)
		if err != nil {
			return nil, fmt.Errorf("resolving %q against the book source directory: %w", location, err)
		}

		ch = NewChapter(link.Name, string(raw), stripped, parentNames)
	} else {
		ch = NewDraftChapter(link.Name, parentNames)
	}

	ch.Number = slices.Clone(link.Number)

	subParents := append(slices.Clone(parentNames), link.Name)
	for _, nested := range link.NestedItems {
		sub, err := loadSummaryItem(nested, srcDir, subParents)
		if err != nil {
			return nil, err
		}
		ch.SubItems = append(ch.SubItems, sub)
	}

	return ch, nil
}

// CreateMissing walks the summary and creates an empty chapter file,
// seeded with a heading, for every linked location that does not exist on
// disk yet.
func CreateMissing(srcDir string, s *summary.Summary) error {
	items := make([]summary.Item, 0, len(s.PrefixChapters)+len(s.NumberedChapters)+len(s.SuffixChapters))
	items = append(items, s.PrefixChapters...)
	items = append(items, s.NumberedChapters...)
	items = append(items, s.SuffixChapters...)

	for len(items) > 0 {
		next := items[len(items)-1]
		items = items[:len(items)-1]

		link, ok := next.(*summary.Link)
		if !ok {
			continue
		}

		if link.Location != "" {
			filename := filepath.Join(srcDir, link.Location)
			if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
				if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
					return fmt.Errorf("unable to create missing directory for %s: %w", filename, err)
				}
				heading := fmt.Sprintf("# %s\n", stringutil.BracketEscape(link.Name))
				if err := os.WriteFile(filename, []byte(heading), 0o644); err != nil {
					return fmt.Errorf("unable to create missing file %s: %w", filename, err)
				}
			} else if err != nil {
				return fmt.Errorf("unable to stat %s: %w", filename, err)
			}
		}

		items = append(items, link.NestedItems...)
	}

	return nil
}
