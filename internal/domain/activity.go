package domain

import "time"

// ActivityLog is a server-recorded entry describing something a user did.
// Entries are append-only from the client's perspective; Target is a
// denormalized display name that may go stale after renames.
type ActivityLog struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	TaskID    string    `json:"taskId,omitempty"`
}
