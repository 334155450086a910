package notification

import "time"

// Type classifies a notification for the dashboard's bell menu.
type Type string

const (
	TypeAppointment  Type = "appointment"
	TypePatientAlert Type = "patient_alert"
	TypeMessage      Type = "message"
)

// NormalizeType folds external spellings onto the canonical enum.
// Unknown values become messages rather than errors.
func NormalizeType(v string) Type {
	switch v {
	case "appointment":
		return TypeAppointment
	case "patient_alert", "patient-alert":
		return TypePatientAlert
	default:
		return TypeMessage
	}
}

// Notification is one dashboard notification. ReadAt is stamped per
// request and never persisted; read state is a client concern.
type Notification struct {
	ID        string     `json:"id"`
	Type      Type       `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	Href      string     `json:"href,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt"`
}
