package site

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/portfolio/handler"
	"github.com/dmitrymomot/portfolio/pkg/card"
	"github.com/dmitrymomot/portfolio/pkg/clientip"
	"github.com/dmitrymomot/portfolio/pkg/contact"
	"github.com/dmitrymomot/portfolio/pkg/dispatch"
	"github.com/dmitrymomot/portfolio/pkg/dom"
	"github.com/dmitrymomot/portfolio/pkg/i18n"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/notifications"
	"github.com/dmitrymomot/portfolio/pkg/ratelimiter"
)

const defaultContactWait = 15 * time.Second

var cardIDPattern = regexp.MustCompile(`^card-[A-Za-z0-9-]{1,64}$`)

type pageRequest struct {
	Page string `path:"page"`
}

type toggleRequest struct {
	Slug string `path:"slug"`
	ID   string `query:"id"`
	Size string `query:"size"`
}

type langRequest struct {
	Lang string `path:"lang"`
	From string `query:"from"`
}

// pagePath is the page URL of the portfolio in lang.
func pagePath(lang i18n.Lang) string {
	return i18n.SwitchPath("/index.html", lang)
}

// isPortfolioPage reports whether page names the portfolio in any locale.
func isPortfolioPage(page string) bool {
	for _, l := range i18n.Langs {
		if "/"+page == pagePath(l) {
			return true
		}
	}
	return false
}

func (s *Site) handlePage(ctx handler.Context, req pageRequest) handler.Response {
	if req.Page != "" && !isPortfolioPage(req.Page) {
		return handler.Error(handler.ErrNotFound)
	}

	r := ctx.Request()
	lang := i18n.LangFromContext(ctx)
	t := func(key string) string { return s.translator.T(lang, key) }

	entries := s.catalogue.Entries()
	cards := make([]templ.Component, 0, len(entries))
	for _, e := range entries {
		p, err := e.Project(lang)
		if err != nil {
			return handler.Error(err)
		}
		_, cmp, err := s.cardRenderer(e.Slug, lang, nil).Render(ctx, p)
		if err != nil {
			return handler.Error(err)
		}
		cards = append(cards, cmp)
	}

	notifier := s.visitors.Notifier(VisitorFromContext(ctx))

	return handler.Templ(pageView(pageParams{
		Lang:          lang.Code(),
		Title:         t("page.title"),
		Intro:         t("page.intro"),
		Projects:      t("page.projects"),
		Contact:       t("page.contact"),
		SwitchLabel:   t("page.switch_lang"),
		SwitchURL:     "/lang/" + lang.Other().Code() + "?from=" + url.QueryEscape(r.URL.RequestURI()),
		Script:        s.cfg.DatastarScript,
		Cards:         cards,
		Form:          s.contactForm(lang),
		Notifications: notifications.Regions(notifier.Active()),
	}))
}

// cardRenderer renders cards of one catalogue entry. A nil newID keeps the
// default random ids.
func (s *Site) cardRenderer(slug string, lang i18n.Lang, newID func() string) *card.Renderer {
	return card.NewRenderer(
		card.WithIDGenerator(newID),
		card.WithTranslate(s.translate),
		card.WithHoverHighlight(),
		card.WithLogger(s.logger),
		card.WithToggleURL(func(c card.Card) string {
			q := url.Values{}
			q.Set("id", c.ID)
			q.Set("lang", lang.Code())
			return "/cards/" + url.PathEscape(slug) + "/toggle?" + q.Encode()
		}),
	)
}

// handleToggle re-renders a card in the size the client reports and
// returns it flipped to the other size.
func (s *Site) handleToggle(ctx handler.Context, req toggleRequest) handler.Response {
	entry, ok := s.catalogue.Lookup(req.Slug)
	if !ok {
		return handler.Error(handler.ErrNotFound)
	}
	if !cardIDPattern.MatchString(req.ID) {
		return handler.Error(handler.ErrBadRequest)
	}

	lang := i18n.LangFromContext(ctx)
	p, err := entry.Project(lang)
	if err != nil {
		return handler.Error(err)
	}
	if req.Size != "" {
		if p.Size, err = card.ParseSizeState(req.Size); err != nil {
			return handler.Error(fmt.Errorf("%w: %w", handler.ErrBadRequest, err))
		}
	}

	markup, err := s.cardRenderer(entry.Slug, lang, func() string { return req.ID }).RenderString(ctx, p)
	if err != nil {
		return handler.Error(err)
	}
	doc, err := dom.ParseString(markup)
	if err != nil {
		return handler.Error(err)
	}
	next, ok := card.Toggle(doc, req.ID)
	if !ok {
		return handler.Error(fmt.Errorf("card %q did not toggle", req.ID))
	}
	out, err := doc.OuterHTML(req.ID)
	if err != nil {
		return handler.Error(err)
	}

	s.logger.DebugContext(ctx, "card toggled",
		logger.CardID(req.ID),
		slog.String("size", next.String()),
	)
	return handler.Templ(templ.Raw(out))
}

// handleContact validates the form and hands it to the dispatcher. The
// outcome is shown as a notification of the visitor.
func (s *Site) handleContact(ctx handler.Context, form contact.Form) handler.Response {
	vid := VisitorFromContext(ctx)
	lang := i18n.LangFromContext(ctx)
	notifier := s.visitors.Notifier(vid)

	sub, err := contact.Validate(form)
	if err != nil {
		rej, ok := contact.AsRejection(err)
		if !ok {
			return handler.Error(err)
		}
		s.notify(ctx, notifier, notifications.TypeError, s.translator.T(lang, rej.TranslationKey))
		return s.notificationResponse(ctx, notifier, lang, false, notifications.TypeError)
	}

	if !s.visitors.TryAcquire(vid) {
		s.notify(ctx, notifier, notifications.TypeInfo, s.translator.T(lang, "contact.busy"))
		return s.notificationResponse(ctx, notifier, lang, false, notifications.TypeInfo)
	}

	var (
		res  dispatch.Result
		kind notifications.Type
	)
	logCtx := context.WithoutCancel(ctx)
	s.inflight.Add(1)
	fut := s.dispatcher.Send(ctx, sub, s.cfg.ContactTarget)
	done := fut.Then(func(r dispatch.Result, _ error) {
		defer s.inflight.Done()
		defer s.visitors.Release(vid)

		var text string
		res = r
		kind, text = s.outcomeMessage(lang, sub, r)
		s.notify(logCtx, notifier, kind, text)
		if r.ResetForm {
			s.forms.Broadcast(vid, lang)
		}
	})

	// DataStar clients receive a pending delivery's outcome over the
	// notification stream. Outcomes known up front are patched right away.
	if handler.IsDataStar(ctx.Request()) {
		if !fut.IsComplete() {
			return handler.Empty()
		}
		<-done
		return s.notificationResponse(ctx, notifier, lang, res.ResetForm, kind)
	}

	wait := s.cfg.ContactWait
	if wait <= 0 {
		wait = defaultContactWait
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-done:
		return s.notificationResponse(ctx, notifier, lang, res.ResetForm, kind)
	case <-timer.C:
		// The outcome still reaches the visitor through the stream.
		return s.notificationResponse(ctx, notifier, lang, false)
	case <-ctx.Done():
		return handler.Empty()
	}
}

func (s *Site) outcomeMessage(lang i18n.Lang, sub contact.Submission, res dispatch.Result) (notifications.Type, string) {
	switch res.Outcome {
	case dispatch.OutcomeSent:
		return notifications.TypeSuccess, s.translator.T(lang, "contact.sent", "name", sub.Name())
	case dispatch.OutcomePreview:
		return notifications.TypeInfo, s.translator.T(lang, "contact.preview")
	case dispatch.OutcomeConfigError:
		return notifications.TypeError, s.translator.T(lang, "contact.config_error")
	default:
		return notifications.TypeError, s.translator.T(lang, "contact.failed")
	}
}

func (s *Site) notify(ctx context.Context, n *notifications.Notifier, kind notifications.Type, text string) {
	if _, err := n.Notify(kind, text); err != nil {
		s.logger.WarnContext(ctx, "notification dropped",
			logger.NotificationKind(kind),
			logger.Error(err),
		)
	}
}

// notificationResponse patches the regions of kinds into DataStar clients
// and sends plain form posts back to the page, which shows them.
func (s *Site) notificationResponse(ctx handler.Context, n *notifications.Notifier, lang i18n.Lang, resetForm bool, kinds ...notifications.Type) handler.Response {
	if !handler.IsDataStar(ctx.Request()) {
		return handler.Redirect(pagePath(lang))
	}

	patches := make([]handler.TemplPatch, 0, len(kinds)+1)
	for _, kind := range kinds {
		msg, _ := n.Current(kind)
		patches = append(patches, handler.Patch(notifications.RegionElement(kind, msg)))
	}
	if resetForm {
		patches = append(patches, handler.Patch(s.contactForm(lang)))
	}
	if len(patches) == 0 {
		return handler.Empty()
	}
	return handler.TemplMulti(patches...)
}

func (s *Site) contactForm(lang i18n.Lang) templ.Component {
	return contactFormView(func(key string) string {
		return s.translator.T(lang, key)
	})
}

// contactDenied tells a rate limited visitor to wait.
func (s *Site) contactDenied(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
	ctx := r.Context()
	lang := i18n.LangFromContext(ctx)
	text := s.translator.T(lang, "contact.rate_limited")
	n := s.visitors.Notifier(VisitorFromContext(ctx))
	s.notify(ctx, n, notifications.TypeInfo, text)

	s.logger.WarnContext(ctx, "contact form rate limited",
		logger.ClientIP(clientip.FromContext(ctx)),
	)

	if !handler.IsDataStar(r) {
		http.Error(w, text, http.StatusTooManyRequests)
		return
	}
	msg, _ := n.Current(notifications.TypeInfo)
	if err := handler.Templ(notifications.RegionElement(notifications.TypeInfo, msg)).Render(w, r); err != nil {
		s.logger.ErrorContext(ctx, "failed to render rate limit notice", logger.Error(err))
	}
}

// handleStream forwards the visitor's notification changes and contact
// form resets until the client disconnects.
func (s *Site) handleStream(ctx handler.Context, _ struct{}) handler.Response {
	vid := VisitorFromContext(ctx)

	return handler.SSE(func(stream handler.StreamContext) error {
		sub := s.events.Subscribe(stream, vid)
		defer sub.Close()
		resets := s.forms.Subscribe(stream, vid)
		defer resets.Close()

		// Re-send what is on display so a reconnecting client catches up.
		n := s.visitors.Notifier(vid)
		for _, kind := range notifications.Types {
			msg, _ := n.Current(kind)
			if err := stream.SendComponent(notifications.RegionElement(kind, msg)); err != nil {
				return err
			}
		}

		for {
			select {
			case <-stream.Done():
				return nil
			case <-s.shutdown:
				return nil
			case ev, ok := <-sub.Receive():
				if !ok {
					return nil
				}
				msg := ev.Message
				if ev.Cleared {
					msg = notifications.Message{}
				}
				if err := stream.SendComponent(notifications.RegionElement(ev.Kind, msg)); err != nil {
					return err
				}
			case lang, ok := <-resets.Receive():
				if !ok {
					return nil
				}
				if err := stream.SendComponent(s.contactForm(lang)); err != nil {
					return err
				}
			}
		}
	})
}

// handleLang remembers the chosen language and redirects to the same page
// in it. Only local paths are accepted as the origin.
func (s *Site) handleLang(ctx handler.Context, req langRequest) handler.Response {
	lang, err := i18n.ParseLang(req.Lang)
	if err != nil {
		return handler.Error(handler.ErrNotFound)
	}

	from := req.From
	if !isLocalPath(from) {
		from = pagePath(s.lang)
	}
	s.cookies.Set(ctx.ResponseWriter(), langCookie, lang.Code())
	return handler.Redirect(i18n.SwitchPath(from, lang))
}
