package sync

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
	"github.com/mhiguchi/boardsync/internal/testutil"
)

func newReconciler(s *store.Store, extra ...domain.NotificationKind) *Reconciler {
	return NewReconciler(s, &testutil.MockLogger{}, extra)
}

func event(t domain.EventType, payload string) domain.Event {
	return domain.Event{Type: t, Payload: json.RawMessage(payload)}
}

func TestReconciler_TaskUpdated_MergesOnlyCarriedFields(t *testing.T) {
	// Setup
	s := store.New()
	s.PutTask(&domain.Task{
		ID:          "t1",
		ProjectID:   "p1",
		Title:       "Title",
		Description: "Description",
		Status:      domain.StatusTodo,
		Priority:    domain.PriorityHigh,
	})
	r := newReconciler(s)

	// Execute
	r.Apply(event(domain.EventTaskUpdated, `{"taskId":"t1","status":"done"}`))

	// Assert
	got := s.Task("t1")
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Equal(t, "Title", got.Title)
	assert.Equal(t, "Description", got.Description)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
}

func TestReconciler_TaskUpdated_UnknownTaskDropped(t *testing.T) {
	// Setup
	s := store.New()
	r := newReconciler(s)

	// Execute
	r.Apply(event(domain.EventTaskUpdated, `{"taskId":"ghost","status":"done"}`))

	// Assert
	assert.Empty(t, s.Tasks())
}

func TestReconciler_TaskCreated_IdempotentUnderRedelivery(t *testing.T) {
	// Setup
	s := store.New()
	r := newReconciler(s)
	payload := `{"id":"t1","projectId":"p1","title":"Pushed","status":"todo","priority":"medium"}`

	// Execute
	r.Apply(event(domain.EventTaskCreated, payload))
	r.Apply(event(domain.EventTaskCreated, payload))

	// Assert
	assert.Len(t, s.Tasks(), 1)
}

func TestReconciler_TaskCreated_DoesNotClobberExisting(t *testing.T) {
	// Setup
	s := store.New()
	s.PutTask(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Local edit", Status: domain.StatusInProgress})
	r := newReconciler(s)

	// Execute
	r.Apply(event(domain.EventTaskCreated, `{"id":"t1","projectId":"p1","title":"Stale copy","status":"todo"}`))

	// Assert
	assert.Equal(t, "Local edit", s.Task("t1").Title)
}

func TestReconciler_CommentAdded_Duplicate(t *testing.T) {
	// Setup
	s := store.New()
	s.PutTask(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task"})
	r := newReconciler(s)
	payload := `{"taskId":"t1","comment":{"id":"c1","authorId":"u1","text":"hi"}}`

	// Execute
	r.Apply(event(domain.EventCommentAdded, payload))
	r.Apply(event(domain.EventCommentAdded, payload))

	// Assert
	assert.Len(t, s.Task("t1").Comments, 1)
}

func TestReconciler_AttachmentLifecycle(t *testing.T) {
	// Setup
	s := store.New()
	s.PutTask(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task"})
	r := newReconciler(s)

	// Execute
	r.Apply(event(domain.EventAttachmentAdded, `{"taskId":"t1","attachment":{"id":"f1","name":"spec.pdf","size":42}}`))
	require.Len(t, s.Task("t1").Files, 1)
	r.Apply(event(domain.EventAttachmentDeleted, `{"taskId":"t1","fileId":"f1"}`))

	// Assert
	assert.Empty(t, s.Task("t1").Files)
}

func TestReconciler_ActivityAdded_NormalizesCasing(t *testing.T) {
	// Setup
	s := store.New()
	r := newReconciler(s)

	// Execute
	r.Apply(event(domain.EventActivityLogAdded, `{"id":"a1","user_id":"u1","action":"updated","target":"Task","task_id":"t1","surprise":"ignored"}`))

	// Assert
	acts := s.Activities()
	require.Len(t, acts, 1)
	assert.Equal(t, "u1", acts[0].UserID)
	assert.Equal(t, "t1", acts[0].TaskID)
}

func TestReconciler_ActivityAdded_MissingIDDropped(t *testing.T) {
	// Setup
	s := store.New()
	r := newReconciler(s)

	// Execute
	r.Apply(event(domain.EventActivityLogAdded, `{"userId":"u1","action":"updated"}`))

	// Assert
	assert.Empty(t, s.Activities())
}

func TestReconciler_Notification_UnknownKindDropped(t *testing.T) {
	// Setup
	s := store.New()
	r := newReconciler(s)

	// Execute
	r.Apply(event(domain.EventNotificationReceived, `{"id":"n1","message":"hi","kind":"mystery"}`))
	r.Apply(event(domain.EventNotificationReceived, `{"id":"n2","message":"real","kind":"info"}`))

	// Assert
	ns := s.Notifications()
	require.Len(t, ns, 1)
	assert.Equal(t, "n2", ns[0].ID)
}

func TestReconciler_Notification_ExtraKindAllowed(t *testing.T) {
	// Setup
	s := store.New()
	r := newReconciler(s, domain.NotificationKind("deploy"))

	// Execute
	r.Apply(event(domain.EventNotificationReceived, `{"id":"n1","message":"rollout done","kind":"deploy"}`))

	// Assert
	assert.Len(t, s.Notifications(), 1)
}

func TestReconciler_Notification_FillsZeroCreatedAt(t *testing.T) {
	// Setup
	s := store.New()
	r := newReconciler(s)
	before := time.Now()

	// Execute
	r.Apply(event(domain.EventNotificationReceived, `{"id":"n1","message":"hi","kind":"info"}`))

	// Assert
	ns := s.Notifications()
	require.Len(t, ns, 1)
	assert.False(t, ns[0].CreatedAt.Before(before))
}

func TestReconciler_PresenceChanged(t *testing.T) {
	// Setup
	s := store.New()
	s.PutUser(&domain.User{ID: "u1", Name: "Alice"})
	r := newReconciler(s)

	// Execute
	r.Apply(event(domain.EventPresenceChanged, `{"userId":"u1","online":true}`))

	// Assert
	assert.True(t, s.User("u1").Online)
}

func TestReconciler_MalformedAndUnknownEventsIgnored(t *testing.T) {
	// Setup
	s := store.New()
	r := newReconciler(s)

	// Execute
	r.Apply(event(domain.EventTaskUpdated, `not json`))
	r.Apply(event(domain.EventType("future_event"), `{}`))

	// Assert
	assert.Empty(t, s.Tasks())
}
