package handler

import "net/http"

// SSEHandler runs for the lifetime of a stream. Returning ends it.
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "error.stream_requires_datastar")
	}

	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE keeps the connection open and lets handler push patches until it
// returns or the client goes away.
//
//	return handler.SSE(func(stream handler.StreamContext) error {
//		sub := events.Subscribe(stream, topic)
//		defer sub.Close()
//		for {
//			ev, err := sub.Receive(stream)
//			if err != nil {
//				return nil
//			}
//			if err := stream.SendComponent(view(ev)); err != nil {
//				return err
//			}
//		}
//	})
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}
