package dispatch

import "errors"

var (
	ErrInvalidTarget    = errors.New("dispatch: invalid target address")
	ErrEmptySubmission  = errors.New("dispatch: empty submission")
	ErrComposeFailed    = errors.New("dispatch: failed to compose message")
	ErrDeliveryFailed   = errors.New("dispatch: delivery failed")
)
