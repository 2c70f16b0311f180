package site

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	visitorCookie = "visitor"
	langCookie    = "lang"
)

type visitorContextKey struct{}

func withVisitor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorContextKey{}, id)
}

// VisitorFromContext returns the visitor id set by the visitor middleware.
func VisitorFromContext(ctx context.Context) string {
	id, _ := ctx.Value(visitorContextKey{}).(string)
	return id
}

// visitorMiddleware identifies the browser with a signed cookie holding a
// random id. Missing or tampered cookies are replaced.
func (s *Site) visitorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.cookies.GetSigned(r, visitorCookie)
		if err == nil {
			if _, perr := uuid.Parse(id); perr != nil {
				err = perr
			}
		}
		if err != nil {
			id = uuid.NewString()
			s.cookies.SetSigned(w, visitorCookie, id)
		}
		next.ServeHTTP(w, r.WithContext(withVisitor(r.Context(), id)))
	})
}
