package card

import "errors"

var (
	ErrInvalidCard        = errors.New("card: invalid card")
	ErrCardNotFound       = errors.New("card: card not found")
	ErrUnknownSizeState   = errors.New("card: unknown size state")
	ErrUnknownProjectKind = errors.New("card: unknown project kind")
)
