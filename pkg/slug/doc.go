// Package slug turns titles into URL path segments.
//
//	slug.Make("Ray tracer (C++)")   // "ray-tracer-c"
//	slug.Make("Éléments", slug.MaxLength(4)) // "elem"
//
// Letters are folded to ASCII by removing combining marks after NFD
// decomposition. Runs of anything else collapse into a single separator,
// and the result never starts or ends with one.
package slug
