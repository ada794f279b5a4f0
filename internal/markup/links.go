package markup

import (
	gopath "path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dgallion1/ftdbook/internal/mdstream"
)

var (
	schemeLink = regexp.MustCompile(`^[a-z][a-z0-9+.-]*:`)
	mdLink     = regexp.MustCompile(`(.*)\.md(#.*)?`)

	// There are dozens of HTML tags/attributes that contain paths; these
	// are the only ones rewritten. Raw HTML from the event stream comes
	// in partial fragments, so a narrow pattern beats a real parser here.
	htmlLink = regexp.MustCompile(`(<(?:a|img) [^>]*?(?:src|href)=")([^"]+?)"`)
)

// adjustLinks fixes link and image destinations to their output
// locations, e.g. turning `.md` extensions into `.ftd`. path is the
// book-relative location of the page being rendered, or empty when
// rendering a page in place.
func adjustLinks(ev mdstream.Event, path string) mdstream.Event {
	switch {
	case ev.Kind == mdstream.KindStart && (ev.Tag == mdstream.TagLink || ev.Tag == mdstream.TagImage):
		ev.Dest = fixLink(ev.Dest, path)
	case ev.Kind == mdstream.KindHTML:
		ev.Text = fixHTML(ev.Text, path)
	}
	return ev
}

func fixLink(dest, path string) string {
	if strings.HasPrefix(dest, "#") {
		// Fragment-only link. With a known page location, point it at
		// the permanent output file so the aggregate print page still
		// resolves it.
		if path != "" {
			base := filepath.ToSlash(path)
			if strings.HasSuffix(base, ".md") {
				base = strings.TrimSuffix(base, ".md") + ".ftd"
			}
			return "/" + base + dest
		}
		return dest
	}

	// Links with a scheme like `https:` are left alone.
	if schemeLink.MatchString(dest) {
		return dest
	}

	fixed := ""
	if path != "" {
		base := filepath.ToSlash(filepath.Dir(path))
		if base != "" && base != "." {
			fixed = base + "/"
		}
	}

	if m := mdLink.FindStringSubmatch(dest); m != nil {
		fixed += m[1] + ".ftd" + m[2]
		return gopath.Clean(fixed)
	}
	return fixed + dest
}

func fixHTML(html, path string) string {
	return htmlLink.ReplaceAllStringFunc(html, func(match string) string {
		m := htmlLink.FindStringSubmatch(match)
		return m[1] + fixLink(m[2], path) + `"`
	})
}
