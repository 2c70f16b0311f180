package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/portfolio/pkg/binder"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/requestid"
	"github.com/dmitrymomot/portfolio/pkg/validator"
)

type ErrorPageParams struct {
	Message    string
	StatusCode int
	RequestID  string
	RetryURL   string
}

type ErrorToastParams struct {
	Message   string
	RequestID string
}

type ErrorHandlerConfig struct {
	// ErrorPage renders the full page for plain requests. Without it the
	// handler falls back to http.Error.
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders the notification patched into DataStar clients.
	ErrorToast func(ErrorToastParams) templ.Component

	// Translate resolves message keys. Keys are shown as-is when nil.
	Translate func(ctx context.Context, key string) string
}

// ErrorInfo is the user-facing classification of an error.
type ErrorInfo struct {
	StatusCode int
	Key        string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: ErrInternalServer.Code,
		Key:        ErrInternalServer.Key,
	}

	var httpErr HTTPError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode, info.Key = httpErr.Code, httpErr.Key
	case errors.As(err, &verrs) && len(verrs) > 0:
		info.StatusCode = http.StatusUnprocessableEntity
		info.Key = verrs[0].TranslationKey
	case errors.Is(err, binder.ErrInvalidForm), errors.Is(err, binder.ErrInvalidQuery),
		errors.Is(err, binder.ErrInvalidPath), errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode, info.Key = ErrBadRequest.Code, ErrBadRequest.Key
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler logs err with the request id and renders it as a page or,
// for DataStar requests, as an error notification patch.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(reqID),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("datastar", IsDataStar(r)),
		)

		message := info.Key
		if cfg.Translate != nil {
			message = cfg.Translate(r.Context(), info.Key)
		}

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				log.WarnContext(r.Context(), "no error toast configured", logger.RequestID(reqID))
				return
			}
			toast := cfg.ErrorToast(ErrorToastParams{Message: message, RequestID: reqID})
			if rerr := Templ(toast).Render(ctx.ResponseWriter(), r); rerr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast",
					logger.RequestID(reqID),
					logger.Error(rerr),
				)
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(ctx.ResponseWriter(), message, info.StatusCode)
			return
		}

		w := ctx.ResponseWriter()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(info.StatusCode)
		page := cfg.ErrorPage(ErrorPageParams{
			Message:    message,
			StatusCode: info.StatusCode,
			RequestID:  reqID,
			RetryURL:   r.URL.Path,
		})
		if rerr := page.Render(r.Context(), w); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error page",
				logger.RequestID(reqID),
				logger.Error(rerr),
			)
		}
	}
}
