package site

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/portfolio/handler"
	"github.com/dmitrymomot/portfolio/pkg/binder"
	"github.com/dmitrymomot/portfolio/pkg/broadcast"
	"github.com/dmitrymomot/portfolio/pkg/clientip"
	"github.com/dmitrymomot/portfolio/pkg/contact"
	"github.com/dmitrymomot/portfolio/pkg/cookie"
	"github.com/dmitrymomot/portfolio/pkg/dispatch"
	"github.com/dmitrymomot/portfolio/pkg/email"
	"github.com/dmitrymomot/portfolio/pkg/environment"
	"github.com/dmitrymomot/portfolio/pkg/httpserver"
	"github.com/dmitrymomot/portfolio/pkg/i18n"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/notifications"
	"github.com/dmitrymomot/portfolio/pkg/ratelimiter"
	"github.com/dmitrymomot/portfolio/pkg/requestid"
)

// eventBuffer is the per-stream backlog before a slow client is dropped.
const eventBuffer = 16

// Site is the portfolio HTTP service.
type Site struct {
	cfg    Config
	env    environment.Environment
	lang   i18n.Lang
	logger *slog.Logger

	catalogue  *Catalogue
	translator *i18n.Translator
	sender     email.EmailSender
	dispatcher *dispatch.Dispatcher
	events     *broadcast.MemoryBroadcaster[notifications.Event]
	forms      *broadcast.MemoryBroadcaster[i18n.Lang]
	visitors   *Visitors
	cookies    *cookie.Manager
	limiter    ratelimiter.Limiter
	clock      notifications.Clock
	checks     []func(context.Context) error

	shutdown  <-chan struct{}
	closers   []io.Closer
	inflight  sync.WaitGroup
	closeOnce sync.Once
	router    chi.Router
}

type Option func(*Site)

func WithLogger(l *slog.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSender replaces the relay built from Config.Email.
func WithSender(sender email.EmailSender) Option {
	return func(s *Site) {
		s.sender = sender
	}
}

// WithLimiter replaces the in-memory contact rate limiter.
func WithLimiter(l ratelimiter.Limiter) Option {
	return func(s *Site) {
		s.limiter = l
	}
}

// WithCatalogue replaces the catalogue read from Config.ProjectsFile.
func WithCatalogue(c *Catalogue) Option {
	return func(s *Site) {
		s.catalogue = c
	}
}

// WithHealthChecks adds dependency checks to GET /healthz.
func WithHealthChecks(checks ...func(context.Context) error) Option {
	return func(s *Site) {
		s.checks = append(s.checks, checks...)
	}
}

// WithClock drives notification expiry.
func WithClock(c notifications.Clock) Option {
	return func(s *Site) {
		s.clock = c
	}
}

// New wires the service. Notification streams end when ctx is canceled,
// letting the HTTP server drain. Call Close when done to stop background
// work.
func New(ctx context.Context, cfg Config, opts ...Option) (*Site, error) {
	s := &Site{
		cfg:      cfg,
		env:      environment.Parse(cfg.Env),
		logger:   slog.Default(),
		shutdown: ctx.Done(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("site"))
	if s.cfg.DatastarScript == "" {
		s.cfg.DatastarScript = DefaultDatastarScript
	}

	lang, err := i18n.ParseLang(cfg.DefaultLang)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	s.lang = lang

	if s.catalogue == nil {
		if s.catalogue, err = LoadCatalogue(cfg.ProjectsFile); err != nil {
			return nil, err
		}
	}

	s.translator, err = i18n.NewTranslator(ctx, Locales(),
		i18n.WithDefaultLanguage(lang),
		i18n.WithLogger(s.logger),
		i18n.WithMissingTranslationsLogging(s.env.IsDevelopment()),
	)
	if err != nil {
		return nil, err
	}

	if s.cookies, err = s.newCookies(); err != nil {
		return nil, err
	}

	if s.sender == nil {
		if s.sender, err = email.New(cfg.Email); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	s.dispatcher = dispatch.New(s.sender,
		dispatch.WithEnvironment(s.env),
		dispatch.WithLogger(s.logger),
	)

	if s.limiter == nil {
		store := ratelimiter.NewMemoryStore()
		s.closers = append(s.closers, store)
		if s.limiter, err = ratelimiter.NewBucket(store, cfg.RateLimit); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	notifierOpts := []notifications.Option{
		notifications.WithLogger(s.logger),
		notifications.WithTTL(cfg.NotificationTTL),
	}
	if s.clock != nil {
		notifierOpts = append(notifierOpts, notifications.WithClock(s.clock))
	}
	s.events = broadcast.NewMemoryBroadcaster[notifications.Event](eventBuffer)
	s.forms = broadcast.NewMemoryBroadcaster[i18n.Lang](eventBuffer)
	s.visitors = NewVisitors(s.events,
		WithNotifierOptions(notifierOpts...),
		WithIdleAfter(cfg.VisitorIdle),
	)

	s.router = s.routes()
	return s, nil
}

// newCookies signs cookies with the configured secrets. Development runs
// without secrets get a random one, which invalidates visitor ids on restart.
func (s *Site) newCookies() (*cookie.Manager, error) {
	cfg := s.cfg.Cookie
	if len(cfg.SecretList()) == 0 {
		if !s.env.IsDevelopment() {
			return nil, ErrNoCookieSecret
		}
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
		cfg.Secrets = hex.EncodeToString(secret)
		s.logger.Warn("no cookie secret configured, using a random one")
	}

	m, err := cookie.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return m, nil
}

func (s *Site) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(
		requestid.Middleware(),
		clientip.Middleware(clientip.New()),
		environment.Middleware(s.env),
		i18n.Middleware(i18n.Chain(
			i18n.DefaultLangExtractor(),
			func(*http.Request) (i18n.Lang, bool) { return s.lang, true },
		)),
		s.visitorMiddleware,
	)

	errorHandler := handler.NewErrorHandler(s.logger, handler.ErrorHandlerConfig{
		ErrorPage: errorPageView,
		ErrorToast: func(p handler.ErrorToastParams) templ.Component {
			return notifications.RegionElement(notifications.TypeError, notifications.Message{
				ID:   "error-" + p.RequestID,
				Type: notifications.TypeError,
				Text: p.Message,
			})
		},
		Translate: func(ctx context.Context, key string) string {
			return s.translator.Tc(ctx, key)
		},
	})

	pathBinder := binder.Path(chi.URLParam)

	r.Get("/healthz", httpserver.HealthCheckHandler(s.logger, s.checks...))

	r.Get("/", handler.Wrap(s.handlePage,
		handler.WithErrorHandler[handler.Context, pageRequest](errorHandler),
	))
	r.Get("/{page}", handler.Wrap(s.handlePage,
		handler.WithBinders[handler.Context, pageRequest](pathBinder),
		handler.WithErrorHandler[handler.Context, pageRequest](errorHandler),
	))

	r.Post("/cards/{slug}/toggle", handler.Wrap(s.handleToggle,
		handler.WithBinders[handler.Context, toggleRequest](pathBinder, binder.Query()),
		handler.WithErrorHandler[handler.Context, toggleRequest](errorHandler),
	))

	r.With(ratelimiter.Middleware(s.limiter, s.contactKey,
		ratelimiter.WithDeniedHandler(s.contactDenied),
	)).Post("/contact", handler.Wrap(s.handleContact,
		handler.WithBinders[handler.Context, contact.Form](binder.Form()),
		handler.WithErrorHandler[handler.Context, contact.Form](errorHandler),
	))

	r.Get(streamPath, handler.Wrap(s.handleStream,
		handler.WithErrorHandler[handler.Context, struct{}](errorHandler),
	))

	r.Get("/lang/{lang}", handler.Wrap(s.handleLang,
		handler.WithBinders[handler.Context, langRequest](pathBinder, binder.Query()),
		handler.WithErrorHandler[handler.Context, langRequest](errorHandler),
	))

	notFound := handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	}, handler.WithErrorHandler[handler.Context, struct{}](errorHandler))
	r.NotFound(notFound)

	return r
}

// contactKey limits by client address, falling back to the visitor id.
func (s *Site) contactKey(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return "contact:" + ip
	}
	return "contact:" + VisitorFromContext(r.Context())
}

func (s *Site) Handler() http.Handler {
	return s.router
}

// Close waits for submissions in flight, then stops the visitor sweep and
// every notification stream.
func (s *Site) Close() error {
	var errs []error
	s.closeOnce.Do(func() {
		s.inflight.Wait()
		s.visitors.Close()
		if err := s.events.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := s.forms.Close(); err != nil {
			errs = append(errs, err)
		}
		for _, c := range s.closers {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}

// translate resolves card labels; an empty result keeps the built-in label.
func (s *Site) translate(ctx context.Context, key string) string {
	return s.translator.Td(i18n.LangFromContext(ctx), key, "")
}

// isLocalPath accepts same-site absolute paths only.
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.ContainsAny(p, "\\\r\n")
}
