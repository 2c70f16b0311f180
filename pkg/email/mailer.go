package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// EmailSender delivers a Message through a relay.
type EmailSender interface {
	SendEmail(ctx context.Context, msg Message) error
	// Configured reports whether credentials are present and not placeholders.
	Configured() bool
	// Provider names the relay for logs.
	Provider() string
}

// Message is a single outgoing email.
type Message struct {
	To       string `json:"to"`
	ReplyTo  string `json:"reply_to,omitempty"`
	FromName string `json:"from_name,omitempty"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"-"`
	Tag      string `json:"tag,omitempty"`
	// Params are extra variables for template based relays.
	Params map[string]string `json:"params,omitempty"`
}

func (m Message) Validate() error {
	switch {
	case strings.TrimSpace(m.To) == "":
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	case strings.TrimSpace(m.Subject) == "":
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	case strings.TrimSpace(m.HTMLBody) == "":
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}

// Render renders tpl into a string, for use as Message.HTMLBody.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	var sb strings.Builder
	if err := tpl.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// IsPlaceholder reports whether a credential value is empty or an
// unfilled template value.
func IsPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	upper := strings.ToUpper(v)
	switch {
	case strings.HasPrefix(upper, "YOUR_"), strings.HasPrefix(upper, "YOUR-"):
		return true
	case strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">"):
		return true
	case upper == "CHANGEME", upper == "CHANGE_ME", upper == "TODO", upper == "XXX":
		return true
	}
	return false
}

func allSet(values ...string) bool {
	for _, v := range values {
		if IsPlaceholder(v) {
			return false
		}
	}
	return true
}
