package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// CardID records a rendered card id under the key "card_id".
func CardID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("card_id", id)
}

// NotificationKind records a notification kind (error, success, info).
func NotificationKind(kind any) slog.Attr {
	if kind == nil {
		return slog.Attr{}
	}
	return slog.Any("notification_kind", kind)
}

// Outcome records a dispatch outcome under the key "outcome".
func Outcome(outcome any) slog.Attr {
	if outcome == nil {
		return slog.Attr{}
	}
	return slog.Any("outcome", outcome)
}

// Provider records the email relay in use.
func Provider(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("provider", name)
}

func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}
