// Package stringutil contains small text helpers shared by the book
// loader, the preprocessors and the renderers.
package stringutil

import (
	"os"
	"regexp"
	"strings"
	"unicode"
)

// TakeLines returns the lines of s in [start, end). A negative end means
// "to the last line". Out-of-range bounds saturate.
func TakeLines(s string, start, end int) string {
	lines := splitLines(s)
	if start > len(lines) {
		start = len(lines)
	}
	if end < 0 || end > len(lines) {
		end = len(lines)
	}
	if end < start {
		end = start
	}
	return strings.Join(lines[start:end], "\n")
}

var (
	anchorStart = regexp.MustCompile(`ANCHOR:\s*([\w_-]+)`)
	anchorEnd   = regexp.MustCompile(`ANCHOR_END:\s*([\w_-]+)`)
)

// TakeAnchoredLines returns the lines between the ANCHOR and ANCHOR_END
// comments with the given name. The anchor lines themselves are dropped.
func TakeAnchoredLines(s, anchor string) string {
	var retained []string
	found := false

	for _, l := range splitLines(s) {
		if found {
			if m := anchorEnd.FindStringSubmatch(l); m != nil {
				if m[1] == anchor {
					break
				}
			} else if !anchorStart.MatchString(l) {
				retained = append(retained, l)
			}
		} else if m := anchorStart.FindStringSubmatch(l); m != nil {
			if m[1] == anchor {
				found = true
			}
		}
	}

	return strings.Join(retained, "\n")
}

// splitLines mirrors the usual line iteration convention: split on '\n',
// strip a trailing '\r' from each line, and ignore a final empty trailer.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// NormalizeID converts a string to a valid element ID containing no ASCII
// whitespace.
func NormalizeID(content string) string {
	var b strings.Builder
	for _, ch := range content {
		switch {
		case unicode.IsLetter(ch) || unicode.IsNumber(ch) || ch == '_' || ch == '-':
			b.WriteRune(unicode.ToLower(ch))
		case unicode.IsSpace(ch):
			b.WriteRune('-')
		}
	}
	return b.String()
}

// BracketEscape entity-escapes angle brackets.
func BracketEscape(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// NormalizePath naively replaces any path separator with a forward slash.
func NormalizePath(path string) string {
	return strings.Map(func(ch rune) rune {
		if os.IsPathSeparator(uint8(ch)) {
			return '/'
		}
		return ch
	}, path)
}
