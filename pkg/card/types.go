package card

import (
	"fmt"
	"strings"
)

// Markup contract shared with the page and client code.
const (
	AttrSize  = "data-size"
	AttrKind  = "data-kind"
	AttrSkill = "data-skill"
	AttrShort = "data-short"
	AttrLong  = "data-long"

	AttrLabelExpanded  = "data-label-expanded"
	AttrLabelCollapsed = "data-label-collapsed"

	ClassCard      = "card"
	ClassText      = "card__text"
	ClassToggle    = "card__toggle"
	ClassSkill     = "skill"
	ClassHighlight = "skill--highlight"
)

// SizeState is the expand/collapse state of a card.
type SizeState uint8

const (
	Expanded SizeState = iota + 1
	Collapsed
)

// ParseSizeState accepts the data-size attribute value, case-insensitively.
func ParseSizeState(s string) (SizeState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expanded":
		return Expanded, nil
	case "collapsed":
		return Collapsed, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSizeState, s)
}

func (s SizeState) Valid() bool {
	return s == Expanded || s == Collapsed
}

// Toggle returns the other state. Invalid states are returned unchanged.
func (s SizeState) Toggle() SizeState {
	switch s {
	case Expanded:
		return Collapsed
	case Collapsed:
		return Expanded
	}
	return s
}

func (s SizeState) String() string {
	switch s {
	case Expanded:
		return "Expanded"
	case Collapsed:
		return "Collapsed"
	}
	return fmt.Sprintf("SizeState(%d)", uint8(s))
}

// Class is the size modifier class carried by the card root.
func (s SizeState) Class() string {
	return ClassCard + "--" + strings.ToLower(s.String())
}

func (s SizeState) textAttr() string {
	if s == Expanded {
		return AttrLong
	}
	return AttrShort
}

func (s SizeState) labelAttr() string {
	if s == Expanded {
		return AttrLabelExpanded
	}
	return AttrLabelCollapsed
}

// ProjectKind is a cosmetic label fixed at creation.
type ProjectKind uint8

const (
	Personal ProjectKind = iota + 1
	School
)

func ParseProjectKind(s string) (ProjectKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "personal":
		return Personal, nil
	case "school":
		return School, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProjectKind, s)
}

func (k ProjectKind) Valid() bool {
	return k == Personal || k == School
}

func (k ProjectKind) String() string {
	switch k {
	case Personal:
		return "Personal"
	case School:
		return "School"
	}
	return fmt.Sprintf("ProjectKind(%d)", uint8(k))
}

func (k ProjectKind) Class() string {
	return ClassCard + "--" + strings.ToLower(k.String())
}

// Project is the input of a render call. Text fields are untrusted and are
// escaped exactly once, when embedded into markup.
type Project struct {
	Size      SizeState
	Kind      ProjectKind
	Category  string
	ShortText string
	LongText  string
	Skills    []string
}

// Card is the record of a rendered card.
type Card struct {
	ID        string
	Size      SizeState
	Kind      ProjectKind
	Category  string
	ShortText string
	LongText  string
	Skills    []string
}

// DisplayText returns the variant shown for the current size.
func (c Card) DisplayText() string {
	if c.Size == Expanded {
		return c.LongText
	}
	return c.ShortText
}
