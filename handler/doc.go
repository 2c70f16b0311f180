// Package handler turns typed request handlers into http.HandlerFunc values
// and renders their responses as full HTML pages or as DataStar server-sent
// event patches, depending on who asked.
//
// A handler receives a Context and a bound request struct and returns a
// Response:
//
//	type toggleRequest struct {
//		CardID string `path:"id"`
//	}
//
//	func toggle(ctx handler.Context, req toggleRequest) handler.Response {
//		card, err := cards.Toggle(req.CardID)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.Templ(card, handler.WithTarget("#"+req.CardID))
//	}
//
//	r.Post("/cards/{id}/toggle", handler.Wrap(toggle,
//		handler.WithBinders[handler.Context, toggleRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, toggleRequest](errHandler),
//	))
//
// DataStar requests (Accept: text/event-stream or a datastar query
// parameter) get patch-elements events; everything else gets plain HTML.
// Long-lived streams use SSE with a StreamContext.
//
// Errors from binding or rendering go to the ErrorHandler. NewErrorHandler
// logs them with the request id and renders either an error page or an
// error notification patch.
package handler
