package domain

import "time"

// NotificationKind classifies a notification for display.
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyWarning NotificationKind = "warning"
	NotifyError   NotificationKind = "error"
)

// IsValid returns true if the kind is one of the known values.
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotifyInfo, NotifySuccess, NotifyWarning, NotifyError:
		return true
	default:
		return false
	}
}

// Notification is a message surfaced to the user. Server-delivered
// notifications carry a durable ID; locally created ones (validation
// toasts, mutation failures) have an empty ID and are never deleted
// remotely.
type Notification struct {
	CreatedAt time.Time        `json:"createdAt"`
	ID        string           `json:"id,omitempty"`
	Message   string           `json:"message"`
	Link      string           `json:"link,omitempty"` // Optional navigation target
	Kind      NotificationKind `json:"kind"`
	Read      bool             `json:"read"`
}

// IsDurable returns true if the notification exists server-side and
// dismissing it should issue a remote delete.
func (n *Notification) IsDurable() bool {
	return n.ID != ""
}
