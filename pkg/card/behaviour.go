package card

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/dmitrymomot/portfolio/pkg/dom"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
)

// Toggle flips the size state of the card with id: data-size, the size
// class, the shown text variant, and the label and aria-expanded of its
// toggle control.
// A missing card, or one whose data-size is unreadable, is left alone and
// reported through ok=false. Toggle is its own inverse.
func Toggle(doc dom.Document, id string) (next SizeState, ok bool) {
	if doc == nil {
		return 0, false
	}
	el, found := doc.ElementByID(id)
	if !found {
		return 0, false
	}

	raw, _ := el.Attr(AttrSize)
	cur, err := ParseSizeState(raw)
	if err != nil {
		return 0, false
	}
	next = cur.Toggle()

	el.SetAttr(AttrSize, next.String())
	el.RemoveClass(cur.Class())
	el.AddClass(next.Class())

	if text, has := el.Attr(next.textAttr()); has {
		if nodes, err := el.QuerySelectorAll("." + ClassText); err == nil {
			for _, n := range nodes {
				n.SetText(text)
			}
		}
	}
	if buttons, err := el.QuerySelectorAll("." + ClassToggle); err == nil {
		for _, b := range buttons {
			b.SetAttr("aria-expanded", strconv.FormatBool(next == Expanded))
			if label, has := b.Attr(next.labelAttr()); has {
				b.SetText(label)
			}
		}
	}

	return next, true
}

// SkillSelector returns the attribute selector matching every tag of skill.
func SkillSelector(skill string) string {
	return fmt.Sprintf(`[%s="%s"]`, AttrSkill, sanitizer.EscapeSelectorValue(sanitizer.NormalizeKey(skill)))
}

// HighlightScript is the client-side counterpart of SetSkillHighlight, as a
// DataStar expression.
func HighlightScript(skills []string, active bool) string {
	selectors := make([]string, 0, len(skills))
	for _, skill := range skills {
		selectors = append(selectors, SkillSelector(skill))
	}
	list, _ := json.Marshal(selectors)
	method := "remove"
	if active {
		method = "add"
	}
	return fmt.Sprintf("for (const s of %s) document.querySelectorAll(s).forEach(e => e.classList.%s('%s'))",
		list, method, ClassHighlight)
}

// SetSkillHighlight adds or removes ClassHighlight on every element tagged
// with one of skills, anywhere in the document. It does nothing when the
// card is absent or skills is empty.
func SetSkillHighlight(doc dom.Document, cardID string, skills []string, active bool) {
	if doc == nil || len(skills) == 0 {
		return
	}
	if _, ok := doc.ElementByID(cardID); !ok {
		return
	}

	for _, skill := range skills {
		tags, err := doc.QuerySelectorAll(SkillSelector(skill))
		if err != nil {
			continue
		}
		for _, tag := range tags {
			if active {
				tag.AddClass(ClassHighlight)
			} else {
				tag.RemoveClass(ClassHighlight)
			}
		}
	}
}

// BindHighlightOnHover highlights skills while the pointer is over the card.
// A missing card is logged as a warning and returned as ErrCardNotFound;
// callers may ignore it. Binding twice is harmless since highlighting is
// idempotent.
func BindHighlightOnHover(doc dom.Document, cardID string, skills []string, log *slog.Logger) error {
	if doc == nil {
		warnUnbound(log, cardID)
		return ErrCardNotFound
	}
	if _, ok := doc.ElementByID(cardID); !ok {
		warnUnbound(log, cardID)
		return fmt.Errorf("%w: %q", ErrCardNotFound, cardID)
	}

	skills = slices.Clone(skills)
	if err := doc.On(cardID, dom.EventMouseEnter, func(dom.Element) {
		SetSkillHighlight(doc, cardID, skills, true)
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrCardNotFound, err)
	}
	if err := doc.On(cardID, dom.EventMouseLeave, func(dom.Element) {
		SetSkillHighlight(doc, cardID, skills, false)
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrCardNotFound, err)
	}
	return nil
}

func warnUnbound(log *slog.Logger, cardID string) {
	if log == nil {
		return
	}
	log.Warn("cannot bind skill highlight",
		logger.Component("card"),
		logger.CardID(cardID),
		logger.Error(ErrCardNotFound),
	)
}
