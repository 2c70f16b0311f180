package dom

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// compileSelector parses a CSS selector group. Quoted attribute values use
// CSS escapes, the form sanitizer.EscapeSelectorValue produces.
func compileSelector(raw string) (cascadia.SelectorGroup, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}
	sel, err := cascadia.ParseGroup(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSelector, raw, err)
	}
	return sel, nil
}

// query returns the descendants of scope matching sel, in document order.
func query(scope *html.Node, sel cascadia.Matcher) []*html.Node {
	return cascadia.QueryAll(scope, sel)
}
