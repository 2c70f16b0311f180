package card

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
	"github.com/dmitrymomot/portfolio/pkg/validator"
)

// Translate resolves UI labels such as "card.kind.personal". Returning the
// empty string selects the built-in English label.
type Translate func(ctx context.Context, key string) string

// ToggleURL returns the endpoint that re-renders c in the other state.
// The client appends the card's current size as the "size" query
// parameter. An empty result omits the toggle control.
type ToggleURL func(c Card) string

// Renderer renders project cards. It is safe for concurrent use as long as
// the configured id generator is.
type Renderer struct {
	newID     func() string
	translate Translate
	toggleURL ToggleURL
	hover     bool
	logger    *slog.Logger
}

type Option func(*Renderer)

// WithIDGenerator replaces the default "card-<uuid>" generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.newID = fn
		}
	}
}

func WithTranslate(fn Translate) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.translate = fn
		}
	}
}

func WithToggleURL(fn ToggleURL) Option {
	return func(r *Renderer) {
		r.toggleURL = fn
	}
}

// WithHoverHighlight adds pointer enter/leave handlers that highlight the
// card's skills in the browser, mirroring BindHighlightOnHover.
func WithHoverHighlight() Option {
	return func(r *Renderer) {
		r.hover = true
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		newID:     func() string { return "card-" + uuid.NewString() },
		translate: func(context.Context, string) string { return "" },
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Validate checks the rendering preconditions and reports every violation.
func Validate(p Project) error {
	return validator.Apply(
		validator.InList("size", p.Size, []SizeState{Expanded, Collapsed}),
		validator.InList("kind", p.Kind, []ProjectKind{Personal, School}),
		validator.RequiredString("category", p.Category),
		validator.RequiredString("short_text", p.ShortText),
		validator.RequiredString("long_text", p.LongText),
	)
}

// Render validates p, assigns a fresh id and returns the card record and
// its markup. Invalid input yields ErrInvalidCard and no component.
func (r *Renderer) Render(ctx context.Context, p Project) (Card, templ.Component, error) {
	if err := Validate(p); err != nil {
		r.logger.DebugContext(ctx, "card rejected",
			logger.Component("card"),
			logger.Error(err),
		)
		return Card{}, nil, fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}

	c := Card{
		ID:        r.newID(),
		Size:      p.Size,
		Kind:      p.Kind,
		Category:  p.Category,
		ShortText: p.ShortText,
		LongText:  p.LongText,
		Skills:    slices.Clone(p.Skills),
	}

	var toggle string
	if r.toggleURL != nil {
		toggle = r.toggleURL(c)
	}

	return c, r.component(c, toggle), nil
}

// RenderString is Render followed by rendering the component to a string.
func (r *Renderer) RenderString(ctx context.Context, p Project) (string, error) {
	_, cmp, err := r.Render(ctx, p)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := cmp.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *Renderer) label(ctx context.Context, key, fallback string) string {
	if v := r.translate(ctx, key); v != "" {
		return v
	}
	return fallback
}

func (r *Renderer) component(c Card, toggleURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		esc := sanitizer.EscapeMarkup
		var b strings.Builder

		fmt.Fprintf(&b, `<article id="%s" class="%s %s %s" %s="%s" %s="%s" %s="%s" %s="%s"`,
			esc(c.ID), ClassCard, c.Size.Class(), c.Kind.Class(),
			AttrSize, c.Size, AttrKind, c.Kind,
			AttrShort, esc(c.ShortText), AttrLong, esc(c.LongText),
		)
		if r.hover && len(c.Skills) > 0 {
			fmt.Fprintf(&b, ` data-on:mouseenter="%s" data-on:mouseleave="%s"`,
				esc(HighlightScript(c.Skills, true)), esc(HighlightScript(c.Skills, false)),
			)
		}
		b.WriteString(">")

		kindKey := "card.kind." + strings.ToLower(c.Kind.String())
		fmt.Fprintf(&b, `<header class="card__header"><h3 class="card__category">%s</h3><span class="card__kind">%s</span></header>`,
			esc(c.Category), esc(r.label(ctx, kindKey, c.Kind.String())),
		)
		fmt.Fprintf(&b, `<p class="%s">%s</p>`, ClassText, esc(c.DisplayText()))

		if len(c.Skills) > 0 {
			b.WriteString(`<ul class="card__skills">`)
			for _, skill := range c.Skills {
				fmt.Fprintf(&b, `<li class="%s" %s="%s">%s</li>`,
					ClassSkill, AttrSkill, esc(sanitizer.NormalizeKey(skill)), esc(skill),
				)
			}
			b.WriteString(`</ul>`)
		}

		if toggleURL != "" {
			expandedLabel := r.label(ctx, "card.toggle.collapse", "Show less")
			collapsedLabel := r.label(ctx, "card.toggle.expand", "Show more")
			label := expandedLabel
			if c.Size == Collapsed {
				label = collapsedLabel
			}
			fmt.Fprintf(&b, `<button type="button" class="%s" aria-expanded="%t" %s="%s" %s="%s" data-on:click="%s">%s</button>`,
				ClassToggle, c.Size == Expanded,
				AttrLabelExpanded, esc(expandedLabel), AttrLabelCollapsed, esc(collapsedLabel),
				esc(toggleAction(toggleURL)), esc(label),
			)
		}

		b.WriteString(`</article>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// toggleAction posts to url with the size the card has when clicked, read
// from the enclosing article.
func toggleAction(url string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	q, _ := json.Marshal(url + sep + "size=")
	return fmt.Sprintf("@post(%s + el.closest('article').dataset.size)", q)
}
