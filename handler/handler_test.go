package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/handler"
	"github.com/dmitrymomot/portfolio/pkg/binder"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/requestid"
	"github.com/dmitrymomot/portfolio/pkg/validator"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func datastarRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Accept", "text/event-stream")
	return req
}

type greetRequest struct {
	Name string `form:"name"`
	ID   string `path:"id"`
	Lang string `query:"lang"`
}

func TestWrap_Binders(t *testing.T) {
	t.Parallel()

	params := map[string]string{"id": "card-1"}
	h := handler.Wrap(
		func(ctx handler.Context, req greetRequest) handler.Response {
			return handler.Templ(text(fmt.Sprintf("%s|%s|%s", req.Name, req.ID, req.Lang)))
		},
		handler.WithBinders[handler.Context, greetRequest](
			binder.Path(func(_ *http.Request, k string) string { return params[k] }),
			binder.Query(),
			binder.Form(),
		),
	)

	t.Run("all sources", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/x?lang=fr", strings.NewReader(url.Values{"name": {"Ada"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Ada|card-1|fr", rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("form binder skipped without body", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, "|card-1|", rec.Body.String())
	})

	t.Run("bind error", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), handler.ErrBadRequest.Key)
	})
}

func TestWrap_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response handler.Response
		wantCode int
		wantBody string
	}{
		{"nil response", nil, http.StatusInternalServerError, handler.ErrInternalServer.Key},
		{"http error", handler.Error(handler.ErrNotFound), http.StatusNotFound, handler.ErrNotFound.Key},
		{"wrapped http error", handler.Error(fmt.Errorf("lookup: %w", handler.ErrConflict)), http.StatusConflict, handler.ErrConflict.Key},
		{"plain error", handler.Error(errors.New("boom")), http.StatusInternalServerError, handler.ErrInternalServer.Key},
		{
			"validation error",
			handler.Error(validator.ValidationErrors{{Field: "name", TranslationKey: "contact.rejected.name_required"}}),
			http.StatusUnprocessableEntity,
			"contact.rejected.name_required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return tt.response })
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}

func TestWrap_Decorators(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) handler.Decorator[handler.Context, struct{}] {
		return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(
		func(handler.Context, struct{}) handler.Response {
			order = append(order, "handler")
			return handler.Empty()
		},
		handler.WithDecorators(mark("outer"), mark("inner")),
	)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestWrap_CustomErrorHandler(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		func(handler.Context, struct{}) handler.Response { return handler.Error(handler.ErrTooManyRequests) },
		handler.WithErrorHandler[handler.Context, struct{}](func(ctx handler.Context, err error) {
			got = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}),
	)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.ErrorIs(t, got, handler.ErrTooManyRequests)
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	assert.True(t, handler.IsDataStar(datastarRequest(http.MethodGet, "/", nil)))
	assert.True(t, handler.IsDataStar(httptest.NewRequest(http.MethodGet, "/?datastar=%7B%7D", nil)))
	assert.False(t, handler.IsDataStar(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestContext_SSE(t *testing.T) {
	t.Parallel()

	plain := handler.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, plain.SSE())

	ds := handler.NewContext(httptest.NewRecorder(), datastarRequest(http.MethodGet, "/", nil))
	first := ds.SSE()
	require.NotNil(t, first)
	assert.Same(t, first, ds.SSE())
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("plain concatenates", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		resp := handler.TemplMulti(
			handler.Patch(text(`<p id="a">a</p>`)),
			handler.Patch(text(`<p id="b">b</p>`), handler.WithTarget("#b")),
		)
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, `<p id="a">a</p><p id="b">b</p>`, rec.Body.String())
	})

	t.Run("datastar patches", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		resp := handler.TemplMulti(
			handler.Patch(text(`<p id="a">a</p>`)),
			handler.Patch(text(`<li>new</li>`), handler.WithTarget("#list"), handler.WithPatchMode(handler.PatchAppend)),
		)
		require.NoError(t, resp.Render(rec, datastarRequest(http.MethodPost, "/", nil)))

		body := rec.Body.String()
		assert.Equal(t, 2, strings.Count(body, "datastar-patch-elements"))
		assert.Contains(t, body, `<p id="a">a</p>`)
		assert.Contains(t, body, "#list")
		assert.Contains(t, body, "append")
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/about-fr.html").Render(rec, httptest.NewRequest(http.MethodGet, "/lang/fr", nil)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/about-fr.html", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/about-fr.html").Render(rec, datastarRequest(http.MethodGet, "/lang/fr", nil)))
	assert.Contains(t, rec.Body.String(), "/about-fr.html")
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestSSE(t *testing.T) {
	t.Parallel()

	t.Run("requires datastar", func(t *testing.T) {
		t.Parallel()

		resp := handler.SSE(func(handler.StreamContext) error { return nil })
		err := resp.Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stream", nil))

		var httpErr handler.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("streams patches and signals", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		resp := handler.SSE(func(stream handler.StreamContext) error {
			if err := stream.SendComponent(text(`<div id="notification-info">hi</div>`)); err != nil {
				return err
			}
			if err := stream.SendMultiple(handler.Patch(text(`<div id="x"></div>`))); err != nil {
				return err
			}
			return stream.SendSignals(map[string]any{"busy": false})
		})
		require.NoError(t, resp.Render(rec, datastarRequest(http.MethodGet, "/stream", nil)))

		body := rec.Body.String()
		assert.Equal(t, 2, strings.Count(body, "datastar-patch-elements"))
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, `"busy":false`)
	})
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	cfg := handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) templ.Component {
			return text(fmt.Sprintf("page:%d:%s:%s", p.StatusCode, p.Message, p.RequestID))
		},
		ErrorToast: func(p handler.ErrorToastParams) templ.Component {
			return text(`<div id="notification-error">` + p.Message + `</div>`)
		},
		Translate: func(_ context.Context, key string) string { return "T(" + key + ")" },
	}

	t.Run("page for plain request", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		eh := handler.NewErrorHandler(logger.New(logger.WithOutput(&logs)), cfg)

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req = req.WithContext(requestid.WithContext(req.Context(), "req-1"))
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, req), fmt.Errorf("find: %w", handler.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "page:404:T(error.not_found):req-1", rec.Body.String())
		assert.Contains(t, logs.String(), `"request_id":"req-1"`)
		assert.Contains(t, logs.String(), `"level":"WARN"`)
	})

	t.Run("toast for datastar request", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		eh := handler.NewErrorHandler(logger.New(logger.WithOutput(&logs)), cfg)

		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, datastarRequest(http.MethodPost, "/contact", nil)), errors.New("smtp down"))

		assert.Contains(t, rec.Body.String(), "datastar-patch-elements")
		assert.Contains(t, rec.Body.String(), "T(error.internal)")
		assert.NotContains(t, rec.Body.String(), "smtp down")
		assert.Contains(t, logs.String(), `"level":"ERROR"`)
		assert.Contains(t, logs.String(), "smtp down")
	})

	t.Run("fallback without components", func(t *testing.T) {
		t.Parallel()

		eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{})
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrServiceUnavailable)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), handler.ErrServiceUnavailable.Key)
	})
}
