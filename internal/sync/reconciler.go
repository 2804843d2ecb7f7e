// Package sync merges asynchronously delivered server events into the
// entity store without clobbering concurrent local edits.
package sync

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// Reconciler applies push events to the store in delivery order. It is safe
// under at-least-once delivery: inserts are idempotent and merges are last
// write wins per field. Events referencing unknown entities are dropped,
// not treated as fatal.
type Reconciler struct {
	store   *store.Store
	logger  domain.Logger
	allowed map[domain.NotificationKind]bool
}

// NewReconciler creates a Reconciler. extraKinds extends the built-in set
// of notification kinds that are surfaced to the user.
func NewReconciler(s *store.Store, logger domain.Logger, extraKinds []domain.NotificationKind) *Reconciler {
	allowed := map[domain.NotificationKind]bool{
		domain.NotifyInfo:    true,
		domain.NotifySuccess: true,
		domain.NotifyWarning: true,
		domain.NotifyError:   true,
	}
	for _, k := range extraKinds {
		allowed[k] = true
	}
	return &Reconciler{
		store:   s,
		logger:  logger,
		allowed: allowed,
	}
}

// Apply merges one event into the store. It never returns an error to the
// transport; anomalies are logged and dropped so the stream keeps flowing.
func (r *Reconciler) Apply(event domain.Event) {
	switch event.Type {
	case domain.EventTaskUpdated:
		r.applyTaskUpdated(event.Payload)
	case domain.EventTaskCreated:
		r.applyTaskCreated(event.Payload)
	case domain.EventCommentAdded:
		r.applyCommentAdded(event.Payload)
	case domain.EventCommentDeleted:
		r.applyCommentDeleted(event.Payload)
	case domain.EventAttachmentAdded:
		r.applyAttachmentAdded(event.Payload)
	case domain.EventAttachmentDeleted:
		r.applyAttachmentDeleted(event.Payload)
	case domain.EventActivityLogAdded:
		r.applyActivityAdded(event.Payload)
	case domain.EventActivityLogDeleted:
		r.applyActivityDeleted(event.Payload)
	case domain.EventNotificationReceived:
		r.applyNotification(event.Payload)
	case domain.EventPresenceChanged:
		r.applyPresence(event.Payload)
	default:
		r.logger.Debug("", "push", fmt.Sprintf("dropping unknown event type %q", event.Type))
	}
}

func (r *Reconciler) applyTaskUpdated(payload json.RawMessage) {
	var p domain.TaskUpdatedPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("malformed task_updated payload: %v", err))
		return
	}
	// Nil patch fields never overwrite local values; the payload only
	// carries fields that actually changed.
	if err := r.store.MergeTask(p.TaskID, p.TaskPatch); err != nil {
		r.logger.Debug("", "push", fmt.Sprintf("task_updated for unknown task %s dropped", p.TaskID))
	}
}

func (r *Reconciler) applyTaskCreated(payload json.RawMessage) {
	var task domain.Task
	if err := json.Unmarshal(payload, &task); err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("malformed task_created payload: %v", err))
		return
	}
	// Idempotent insert: the local optimistic create may already have
	// resolved to this ID.
	if r.store.HasTask(task.ID) {
		return
	}
	r.store.PutTask(&task)
}

func (r *Reconciler) applyCommentAdded(payload json.RawMessage) {
	var p domain.CommentEventPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("malformed comment_added payload: %v", err))
		return
	}
	if err := r.store.AddComment(p.TaskID, p.Comment); err != nil {
		r.logger.Debug("", "push", fmt.Sprintf("comment_added for unknown task %s dropped", p.TaskID))
	}
}

func (r *Reconciler) applyCommentDeleted(payload json.RawMessage) {
	var p domain.CommentEventPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("malformed comment_deleted payload: %v", err))
		return
	}
	if err := r.store.RemoveComment(p.TaskID, p.CommentID); err != nil {
		r.logger.Debug("", "push", fmt.Sprintf("comment_deleted for task %s dropped: %v", p.TaskID, err))
	}
}

func (r *Reconciler) applyAttachmentAdded(payload json.RawMessage) {
	var p domain.AttachmentEventPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("malformed attachment_added payload: %v", err))
		return
	}
	if err := r.store.AddAttachment(p.TaskID, p.Attachment); err != nil {
		r.logger.Debug("", "push", fmt.Sprintf("attachment_added for unknown task %s dropped", p.TaskID))
	}
}

func (r *Reconciler) applyAttachmentDeleted(payload json.RawMessage) {
	var p domain.AttachmentEventPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("malformed attachment_deleted payload: %v", err))
		return
	}
	if err := r.store.RemoveAttachment(p.TaskID, p.FileID); err != nil {
		r.logger.Debug("", "push", fmt.Sprintf("attachment_deleted for task %s dropped: %v", p.TaskID, err))
	}
}

// activityFields maps the key variants different server versions emit to
// canonical field names. Normalization happens here, at the boundary, so
// the rest of the client only ever sees one casing.
var activityFields = map[string]string{
	"id":         "id",
	"userid":     "userId",
	"user_id":    "userId",
	"action":     "action",
	"target":     "target",
	"taskid":     "taskId",
	"task_id":    "taskId",
	"createdat":  "createdAt",
	"created_at": "createdAt",
}

func (r *Reconciler) applyActivityAdded(payload json.RawMessage) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("malformed activity payload: %v", err))
		return
	}

	normalized := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		canonical, ok := activityFields[strings.ToLower(key)]
		if !ok {
			continue // Unknown field, drop rather than guess
		}
		normalized[canonical] = value
	}

	merged, err := json.Marshal(normalized)
	if err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("re-encode activity payload: %v", err))
		return
	}
	var entry domain.ActivityLog
	if err := json.Unmarshal(merged, &entry); err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("decode activity payload: %v", err))
		return
	}
	if entry.ID == "" {
		r.logger.Debug("", "push", "activity entry without id dropped")
		return
	}
	r.store.PrependActivity(entry)
}

func (r *Reconciler) applyActivityDeleted(payload json.RawMessage) {
	var p struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("malformed activity_log_deleted payload: %v", err))
		return
	}
	r.store.RemoveActivity(p.ID)
}

func (r *Reconciler) applyNotification(payload json.RawMessage) {
	var n domain.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("malformed notification payload: %v", err))
		return
	}
	// Only known kinds reach the user; unrecognized server-side event
	// kinds are dropped silently.
	if !r.allowed[n.Kind] {
		r.logger.Debug("", "push", fmt.Sprintf("notification with kind %q dropped", n.Kind))
		return
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.store.PrependNotification(n)
}

func (r *Reconciler) applyPresence(payload json.RawMessage) {
	var p domain.PresencePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		r.logger.Warn("", "push", fmt.Sprintf("malformed presence payload: %v", err))
		return
	}
	r.store.SetUserOnline(p.UserID, p.Online)
}
