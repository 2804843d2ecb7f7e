package domain

import "encoding/json"

// EventType identifies a server-pushed event.
type EventType string

// Event types delivered over the push channel.
const (
	EventTaskUpdated          EventType = "task_updated"
	EventTaskCreated          EventType = "task_created"
	EventCommentAdded         EventType = "comment_added"
	EventCommentDeleted       EventType = "comment_deleted"
	EventAttachmentAdded      EventType = "attachment_added"
	EventAttachmentDeleted    EventType = "attachment_deleted"
	EventActivityLogAdded     EventType = "activity_log_added"
	EventActivityLogDeleted   EventType = "activity_log_deleted"
	EventNotificationReceived EventType = "notification_received"
	EventPresenceChanged      EventType = "presence_changed"
)

// Event is a single push-delivered message. The payload shape depends on
// the type; it stays raw until the reconciler decodes it so that unknown
// or malformed events can be dropped without failing the stream.
type Event struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// TaskUpdatedPayload carries only the fields that actually changed.
// Absent fields must not overwrite local state.
type TaskUpdatedPayload struct {
	TaskID    string `json:"taskId"`
	TaskPatch        // Changed fields, inline
}

// CommentEventPayload is shared by comment add and delete events.
type CommentEventPayload struct {
	TaskID    string  `json:"taskId"`
	CommentID string  `json:"commentId,omitempty"`
	Comment   Comment `json:"comment,omitempty"`
}

// AttachmentEventPayload is shared by attachment add and delete events.
type AttachmentEventPayload struct {
	TaskID     string     `json:"taskId"`
	FileID     string     `json:"fileId,omitempty"`
	Attachment Attachment `json:"attachment,omitempty"`
}

// PresencePayload reports a user coming online or going offline.
type PresencePayload struct {
	UserID string `json:"userId"`
	Online bool   `json:"online"`
}
