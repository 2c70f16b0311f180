package contact

import (
	"errors"
	"fmt"
)

// ErrRejected matches every *Rejection through errors.Is.
var ErrRejected = errors.New("contact: submission rejected")

// Reason is a stable code for the rule that rejected a form.
type Reason string

const (
	ReasonNameRequired    Reason = "name_required"
	ReasonCompanyRequired Reason = "company_required"
	ReasonContactRequired Reason = "contact_required"
	ReasonInvalidEmail    Reason = "invalid_email"
	ReasonInvalidPhone    Reason = "invalid_phone"
	ReasonTooLong         Reason = "too_long"
)

// Rejection is returned by Validate for the first failing rule.
type Rejection struct {
	Field  string
	Reason Reason
	// Message is the English user-facing text.
	Message string
	// TranslationKey selects the localized message.
	TranslationKey string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("contact: %s: %s", r.Field, r.Message)
}

func (r *Rejection) Is(target error) bool {
	return target == ErrRejected
}
