package dispatch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/portfolio/pkg/contact"
	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
)

// Subject builds the subject line from name and company.
func Subject(sub contact.Submission) string {
	return fmt.Sprintf("Portfolio contact from %s (%s)",
		sanitizer.SingleLine(sub.Name()), sanitizer.SingleLine(sub.Company()))
}

// Body renders the message followed by a footer listing whichever contact
// details the visitor left. Every free-text field is escaped here.
func Body(sub contact.Submission) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		esc := sanitizer.EscapeMarkup
		var b strings.Builder

		b.WriteString(`<div class="contact-message">`)
		b.WriteString(`<p>`)
		for i, line := range strings.Split(strings.ReplaceAll(sub.Comment(), "\r\n", "\n"), "\n") {
			if i > 0 {
				b.WriteString(`<br>`)
			}
			b.WriteString(esc(line))
		}
		b.WriteString(`</p>`)

		b.WriteString(`<hr><footer class="contact-info">`)
		fmt.Fprintf(&b, `<p><strong>%s</strong>, %s</p><ul>`, esc(sub.Name()), esc(sub.Company()))
		if sub.HasEmail() {
			fmt.Fprintf(&b, `<li>Email: <a href="mailto:%s">%s</a></li>`, esc(sub.Email()), esc(sub.Email()))
		}
		if sub.HasPhone() {
			fmt.Fprintf(&b, `<li>Phone: <a href="tel:%s">%s</a></li>`,
				esc(sanitizer.StripPhoneSeparators(sub.Phone())), esc(sub.Phone()))
		}
		b.WriteString(`</ul></footer></div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
