package i18n

import (
	"path"
	"strings"
)

const (
	frenchSuffix = "-fr"
	indexPage    = "index.html"
)

// SwitchPath returns the path of the same page in target. Paths that do not
// name a page (empty, a directory, or no extension) resolve to index.html
// first. The query string and fragment are kept as they are. When rawPath is
// already in target it is returned unchanged.
func SwitchPath(rawPath string, target Lang) string {
	p, rest := splitPath(rawPath)
	if LangFromPath(p) == target {
		return rawPath
	}

	p = pagePath(p)
	dir, file := path.Split(p)
	ext := path.Ext(file)
	base := strings.TrimSuffix(file, ext)

	base = strings.TrimSuffix(base, frenchSuffix)
	if target == French {
		base += frenchSuffix
	}
	return dir + base + ext + rest
}

// LangFromPath reports the locale of the page named by rawPath. Anything
// without the French suffix is English.
func LangFromPath(rawPath string) Lang {
	p, _ := splitPath(rawPath)
	if !isPage(p) {
		return English
	}
	file := path.Base(p)
	if strings.HasSuffix(strings.TrimSuffix(file, path.Ext(file)), frenchSuffix) {
		return French
	}
	return English
}

// splitPath separates the path from the query and fragment.
func splitPath(raw string) (string, string) {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		return raw[:i], raw[i:]
	}
	return raw, ""
}

func isPage(p string) bool {
	if p == "" || strings.HasSuffix(p, "/") {
		return false
	}
	return path.Ext(path.Base(p)) != ""
}

func pagePath(p string) string {
	switch {
	case isPage(p):
		return p
	case p == "", strings.HasSuffix(p, "/"):
		return p + indexPage
	default:
		return p + "/" + indexPage
	}
}
