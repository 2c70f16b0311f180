package notifications

import "time"

// Type is the kind of a notification. Each type has its own region.
type Type string

const (
	TypeError   Type = "error"
	TypeSuccess Type = "success"
	TypeInfo    Type = "info"
)

// Types lists every type in display order.
var Types = []Type{TypeError, TypeSuccess, TypeInfo}

func (t Type) Valid() bool {
	switch t {
	case TypeError, TypeSuccess, TypeInfo:
		return true
	}
	return false
}

// Message is a notification currently on display.
type Message struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsZero reports whether m is the empty message of a cleared slot.
func (m Message) IsZero() bool {
	return m.ID == ""
}
