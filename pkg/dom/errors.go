package dom

import "errors"

var (
	ErrElementNotFound = errors.New("dom: element not found")
	ErrInvalidSelector = errors.New("dom: invalid selector")
	ErrParse           = errors.New("dom: failed to parse document")
)
