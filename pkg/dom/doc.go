// Package dom is a narrow document abstraction used by the card and
// notification packages to mutate rendered markup.
//
// Document exposes only what those packages need: lookup by id, CSS
// selector queries, class and attribute mutation, text replacement
// and event listeners. MemoryDocument is the in-process implementation backed
// by golang.org/x/net/html; it is used on the server to transform rendered
// fragments and in tests to observe behaviour without a browser.
//
// # Selectors
//
// QuerySelectorAll compiles selectors with github.com/andybalholm/cascadia
// and matches descendants of the queried node, e.g. li.skill[data-skill="Go"].
// Quoted values understand CSS escapes (backslash + 1-6 hex digits + optional
// whitespace, or backslash + any other character), which is the form produced
// by sanitizer.EscapeSelectorValue. Malformed selectors return
// ErrInvalidSelector.
//
// # Events
//
// On registers a listener for an element id and event name. Dispatch invokes
// every listener registered for the pair, in registration order, outside the
// document lock so listeners may mutate the document.
package dom
