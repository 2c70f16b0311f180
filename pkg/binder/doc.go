// Package binder fills request structs from form bodies, query strings and
// router path parameters.
//
// Each binder reads only its own struct tag, so several binders can be
// chained over the same struct:
//
//	type ToggleRequest struct {
//		CardID string `path:"id"`
//		Lang   string `query:"lang"`
//	}
//
//	handler.Wrap(toggle, handler.WithBinders[handler.Context, ToggleRequest](
//		binder.Path(chi.URLParam),
//		binder.Query(),
//	))
//
// Supported field types are strings, signed and unsigned integers, floats,
// bools, pointers to those for optional values, and slices for repeated keys.
// Missing keys leave the field at its zero value.
//
// A binder that has nothing to read for the request (for example Form on a
// GET without a body) returns ErrNotApplicable, which handler.Wrap skips.
package binder
