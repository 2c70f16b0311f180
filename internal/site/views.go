package site

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/portfolio/handler"
	"github.com/dmitrymomot/portfolio/pkg/i18n"
	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
)

const (
	contactFormID = "contact-form"
	streamPath    = "/notifications/stream"
)

type pageParams struct {
	Lang          string
	Title         string
	Intro         string
	Projects      string
	Contact       string
	SwitchLabel   string
	SwitchURL     string
	Script        string
	Cards         []templ.Component
	Form          templ.Component
	Notifications templ.Component
}

func pageView(p pageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		esc := sanitizer.EscapeMarkup

		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><script type="module" src="%s"></script></head>`,
			esc(p.Lang), esc(p.Title), esc(p.Script),
		); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<body data-init="@get('%s')"><header><h1>%s</h1><p>%s</p><a class="lang-switch" href="%s">%s</a></header>`,
			streamPath, esc(p.Title), esc(p.Intro), esc(p.SwitchURL), esc(p.SwitchLabel),
		); err != nil {
			return err
		}
		if err := p.Notifications.Render(ctx, w); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<main><section class="projects"><h2>%s</h2>`, esc(p.Projects)); err != nil {
			return err
		}
		for _, c := range p.Cards {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</section><section class="contact"><h2>%s</h2>`, esc(p.Contact)); err != nil {
			return err
		}
		if err := p.Form.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section></main></body></html>`)
		return err
	})
}

// contactFormView renders an empty contact form. It posts through DataStar
// when available and as a plain form otherwise.
func contactFormView(label func(key string) string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		esc := sanitizer.EscapeMarkup
		var b strings.Builder

		fmt.Fprintf(&b, `<form id="%s" method="post" action="/contact" data-on:submit="@post('/contact', {contentType: 'form'})">`, contactFormID)
		for _, f := range []struct{ name, typ string }{
			{"name", "text"},
			{"company", "text"},
			{"email", "email"},
			{"phone", "tel"},
		} {
			fmt.Fprintf(&b, `<label>%s <input type="%s" name="%s"></label>`,
				esc(label("contact."+f.name)), f.typ, f.name)
		}
		fmt.Fprintf(&b, `<label>%s <textarea name="comment"></textarea></label>`, esc(label("contact.comment")))
		fmt.Fprintf(&b, `<button type="submit">%s</button></form>`, esc(label("contact.submit")))

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func errorPageView(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		esc := sanitizer.EscapeMarkup
		_, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8"><title>%d</title></head><body><main class="error"><h1>%d</h1><p>%s</p><p class="error__request">%s</p><a href="%s">&#8635;</a></main></body></html>`,
			i18n.LangFromContext(ctx).Code(), p.StatusCode, p.StatusCode, esc(p.Message), esc(p.RequestID), esc(p.RetryURL),
		)
		return err
	})
}
