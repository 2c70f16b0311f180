package dispatch

import "fmt"

// Outcome classifies the result of a Send.
type Outcome uint8

const (
	OutcomeSent Outcome = iota + 1
	OutcomeFailed
	OutcomePreview
	OutcomeConfigError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeFailed:
		return "failed"
	case OutcomePreview:
		return "preview"
	case OutcomeConfigError:
		return "config_error"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// Result is what a Send future resolves to.
type Result struct {
	Outcome Outcome
	// Err explains Failed and ConfigError outcomes.
	Err error
	// ResetForm tells the caller to clear the form.
	ResetForm bool
}
