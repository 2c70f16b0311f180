package notifications

import "errors"

var (
	ErrUnknownType = errors.New("notifications: unknown notification type")
	ErrDisposed    = errors.New("notifications: notifier disposed")
)
