package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/portfolio/pkg/validator"
)

// Form is raw, untrusted form input.
type Form struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Company string `form:"company"`
	Comment string `form:"comment"`
}

// Submission is a validated, trimmed form. The zero value is never valid.
type Submission struct {
	name    string
	email   string
	phone   string
	company string
	comment string
}

func (s Submission) Name() string    { return s.name }
func (s Submission) Email() string   { return s.email }
func (s Submission) Phone() string   { return s.phone }
func (s Submission) Company() string { return s.company }
func (s Submission) Comment() string { return s.comment }

// HasEmail reports whether the submitter left an email address.
func (s Submission) HasEmail() bool { return s.email != "" }
func (s Submission) HasPhone() bool { return s.phone != "" }

// IsZero reports whether s was not produced by Validate.
func (s Submission) IsZero() bool { return s == Submission{} }

// Field length limits, in runes.
const (
	MaxNameLen    = 100
	MaxCompanyLen = 100
	MaxEmailLen   = 254
	MaxPhoneLen   = 32
	MaxCommentLen = 5000
)

// DefaultComment is used when the comment field is left blank.
func DefaultComment(name, company string) string {
	return fmt.Sprintf("%s from %s was interested in your portfolio", name, company)
}

var rejections = map[string]struct {
	reason  Reason
	message string
}{
	"name":    {ReasonNameRequired, "name required"},
	"company": {ReasonCompanyRequired, "company required"},
	"contact": {ReasonContactRequired, "contact method required"},
	"email":   {ReasonInvalidEmail, "invalid email"},
	"phone":   {ReasonInvalidPhone, "invalid phone"},
}

// Validate checks f and returns a Submission, or a *Rejection describing
// the first rule that failed.
func Validate(f Form) (Submission, error) {
	name := strings.TrimSpace(f.Name)
	company := strings.TrimSpace(f.Company)
	email := strings.TrimSpace(f.Email)
	phone := strings.TrimSpace(f.Phone)
	comment := strings.TrimSpace(f.Comment)

	// order decides which single message the user sees
	err := validator.ApplyFirst(
		validator.RequiredString("name", name),
		validator.RequiredString("company", company),
		validator.RequiredOneOf("contact", email, phone),
		validator.When(email != "", validator.ValidEmailSimple("email", email)),
		validator.When(phone != "", validator.ValidPhone("phone", phone)),
	)
	if err == nil {
		err = validator.ApplyFirst(
			validator.MaxLenString("name", name, MaxNameLen),
			validator.MaxLenString("company", company, MaxCompanyLen),
			validator.MaxLenString("email", email, MaxEmailLen),
			validator.MaxLenString("phone", phone, MaxPhoneLen),
			validator.MaxLenString("comment", comment, MaxCommentLen),
		)
	}
	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		return Submission{}, rejection(verrs[0])
	}

	if comment == "" {
		comment = DefaultComment(name, company)
	}

	return Submission{
		name:    name,
		email:   email,
		phone:   phone,
		company: company,
		comment: comment,
	}, nil
}

func rejection(ve validator.ValidationError) *Rejection {
	r := rejections[ve.Field]
	if ve.TranslationKey == validator.KeyMaxLength {
		r.reason, r.message = ReasonTooLong, ve.Field+" too long"
	}
	return &Rejection{
		Field:          ve.Field,
		Reason:         r.reason,
		Message:        r.message,
		TranslationKey: "contact.rejected." + string(r.reason),
	}
}

// AsRejection extracts a *Rejection from err.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
