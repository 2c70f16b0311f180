package notifications

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
)

// RegionElement renders the region of kind holding msg. A zero msg renders
// the empty, hidden region.
func RegionElement(kind Type, msg Message) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		role, live := "status", "polite"
		if kind == TypeError {
			role, live = "alert", "assertive"
		}

		var b strings.Builder
		fmt.Fprintf(&b, `<div id="%s" class="notification notification--%s" role="%s" aria-live="%s" aria-atomic="true"`,
			RegionID(kind), kind, role, live)
		if msg.IsZero() {
			b.WriteString(` hidden></div>`)
		} else {
			fmt.Fprintf(&b, ` data-message-id="%s">%s</div>`,
				sanitizer.EscapeMarkup(msg.ID), sanitizer.EscapeMarkup(msg.Text))
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Regions renders one region per type, filled from active.
func Regions(active []Message) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="notifications">`); err != nil {
			return err
		}
		for _, kind := range Types {
			var msg Message
			for _, m := range active {
				if m.Type == kind {
					msg = m
				}
			}
			if err := RegionElement(kind, msg).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
