// Package sanitizer provides escaping, normalisation and masking helpers for
// untrusted text that ends up in rendered pages, outgoing email and logs.
//
// The functions are grouped conceptually into several areas:
//
//   - Markup – EscapeMarkup for HTML body text and attribute values.
//
//   - Keys – NormalizeKey turns arbitrary text (a skill label, for example)
//     into a percent-encoded token that is safe to store in an attribute and to
//     look up again later.
//
//   - Selectors – EscapeSelectorValue escapes a value for use inside a
//     double-quoted CSS attribute selector such as [data-skill="…"].
//
//   - Strings – trimming and whitespace normalisation for form input.
//
//   - Masking – MaskEmail, MaskPhone and MaskString hide personal data before
//     it is written to logs.
//
// Markup, attribute values and selector strings each have a different set of
// unsafe characters. The three escaping helpers are intentionally distinct and
// must not be substituted for one another. Escape exactly once, at the point
// where the text is embedded, never before it is stored.
//
// # Usage
//
//	key := sanitizer.NormalizeKey("C# / .NET")       // "C%23%20%2F%20.NET"
//	sel := `[data-skill="` + sanitizer.EscapeSelectorValue(key) + `"]`
//	txt := sanitizer.EscapeMarkup(`<b>"Go" & 'Rust'</b>`)
//
// # Error handling
//
// None of the helpers returns an error; they always produce a usable string.
// All helpers are stateless and safe for concurrent use.
package sanitizer
