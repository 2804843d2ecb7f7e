package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhiguchi/boardsync/internal/domain"
)

func newTask(id, projectID, title string) *domain.Task {
	return &domain.Task{
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		Status:    domain.StatusTodo,
		Priority:  domain.PriorityMedium,
	}
}

func TestStore_PutTask_ReturnsCopies(t *testing.T) {
	// Setup
	s := New()
	task := newTask("t1", "p1", "Original")

	// Execute
	s.PutTask(task)
	task.Title = "Mutated after insert"
	got := s.Task("t1")
	got.Title = "Mutated after read"

	// Assert
	assert.Equal(t, "Original", s.Task("t1").Title)
}

func TestStore_MergeTask_UnknownID(t *testing.T) {
	// Setup
	s := New()

	// Execute
	title := "New title"
	err := s.MergeTask("missing", domain.TaskPatch{Title: &title})

	// Assert
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestStore_MergeTask_OnlyPatchedFieldsChange(t *testing.T) {
	// Setup
	s := New()
	task := newTask("t1", "p1", "Title")
	task.Description = "Description"
	s.PutTask(task)

	// Execute
	status := domain.StatusDone
	err := s.MergeTask("t1", domain.TaskPatch{Status: &status})

	// Assert
	require.NoError(t, err)
	got := s.Task("t1")
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Equal(t, "Title", got.Title)
	assert.Equal(t, "Description", got.Description)
}

func TestStore_RemoveTask_CascadesToSubtasks(t *testing.T) {
	// Setup
	s := New()
	parentID := "t1"
	s.PutTask(newTask("t1", "p1", "Parent"))
	sub := newTask("t2", "p1", "Child")
	sub.ParentID = &parentID
	s.PutTask(sub)
	s.PutTask(newTask("t3", "p1", "Unrelated"))

	// Execute
	removed := s.RemoveTask("t1")

	// Assert
	assert.Len(t, removed, 2)
	assert.Nil(t, s.Task("t1"))
	assert.Nil(t, s.Task("t2"))
	assert.NotNil(t, s.Task("t3"))
}

func TestStore_RestoreTasks_BringsBackSubtree(t *testing.T) {
	// Setup
	s := New()
	parentID := "t1"
	s.PutTask(newTask("t1", "p1", "Parent"))
	sub := newTask("t2", "p1", "Child")
	sub.ParentID = &parentID
	s.PutTask(sub)
	removed := s.RemoveTask("t1")

	// Execute
	s.RestoreTasks(removed)

	// Assert
	assert.NotNil(t, s.Task("t1"))
	require.NotNil(t, s.Task("t2"))
	assert.Equal(t, "t1", *s.Task("t2").ParentID)
}

func TestStore_RekeyTask_ReplacesLocalID(t *testing.T) {
	// Setup
	s := New()
	s.PutTask(newTask("local-123", "p1", "Draft"))

	// Execute
	canonical := newTask("srv-9", "p1", "Draft")
	s.RekeyTask("local-123", canonical)

	// Assert
	assert.Nil(t, s.Task("local-123"))
	assert.NotNil(t, s.Task("srv-9"))
}

func TestStore_RekeyTask_UnknownOldID(t *testing.T) {
	// Setup
	s := New()

	// Execute
	s.RekeyTask("local-unknown", newTask("srv-1", "p1", "Ghost"))

	// Assert
	assert.Nil(t, s.Task("srv-1"))
}

func TestStore_TasksByProject_SortedByCreation(t *testing.T) {
	// Setup
	s := New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := newTask("t-b", "p1", "Older")
	older.CreatedAt = base
	newer := newTask("t-a", "p1", "Newer")
	newer.CreatedAt = base.Add(time.Hour)
	s.PutTask(newer)
	s.PutTask(older)
	s.PutTask(newTask("t-x", "p2", "Other project"))

	// Execute
	tasks := s.TasksByProject("p1")

	// Assert
	require.Len(t, tasks, 2)
	assert.Equal(t, "t-b", tasks[0].ID)
	assert.Equal(t, "t-a", tasks[1].ID)
}

func TestStore_AddComment_DropsDuplicateID(t *testing.T) {
	// Setup
	s := New()
	s.PutTask(newTask("t1", "p1", "Task"))
	comment := domain.Comment{ID: "c1", AuthorID: "u1", Text: "Hello"}

	// Execute
	require.NoError(t, s.AddComment("t1", comment))
	require.NoError(t, s.AddComment("t1", comment))

	// Assert
	assert.Len(t, s.Task("t1").Comments, 1)
}

func TestStore_RemoveComment_UnknownComment(t *testing.T) {
	// Setup
	s := New()
	s.PutTask(newTask("t1", "p1", "Task"))

	// Execute
	err := s.RemoveComment("t1", "missing")

	// Assert
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestStore_RemoveProject_CascadesToTasks(t *testing.T) {
	// Setup
	s := New()
	s.PutProject(&domain.Project{ID: "p1", Name: "Project"})
	s.PutTask(newTask("t1", "p1", "Task"))
	s.PutTask(newTask("t2", "p2", "Other"))

	// Execute
	s.RemoveProject("p1")

	// Assert
	assert.Nil(t, s.Project("p1"))
	assert.Nil(t, s.Task("t1"))
	assert.NotNil(t, s.Task("t2"))
}

func TestStore_Subscribe_NotifiedOnWrite(t *testing.T) {
	// Setup
	s := New()
	var calls int
	s.Subscribe(func() { calls++ })

	// Execute
	s.PutTask(newTask("t1", "p1", "Task"))
	s.RemoveTask("t1")

	// Assert
	assert.Equal(t, 2, calls)
}

func TestStore_PrependNotification_DropsDurableDuplicates(t *testing.T) {
	// Setup
	s := New()
	durable := domain.Notification{ID: "n1", Message: "Server says hi", Kind: domain.NotifyInfo}

	// Execute
	s.PrependNotification(durable)
	s.PrependNotification(durable)
	s.PrependNotification(domain.Notification{Message: "Local error", Kind: domain.NotifyError})
	s.PrependNotification(domain.Notification{Message: "Another local error", Kind: domain.NotifyError})

	// Assert
	ns := s.Notifications()
	assert.Len(t, ns, 3)
	assert.Equal(t, "Another local error", ns[0].Message)
}

func TestStore_PrependActivity_DropsDuplicateID(t *testing.T) {
	// Setup
	s := New()
	entry := domain.ActivityLog{ID: "a1", UserID: "u1", Action: "updated", Target: "Task"}

	// Execute
	s.PrependActivity(entry)
	s.PrependActivity(entry)
	s.PrependActivity(domain.ActivityLog{ID: "a2", UserID: "u1", Action: "created", Target: "Task"})

	// Assert
	acts := s.Activities()
	require.Len(t, acts, 2)
	assert.Equal(t, "a2", acts[0].ID)
}

func TestStore_MarkAllNotificationsRead(t *testing.T) {
	// Setup
	s := New()
	s.SetNotifications([]domain.Notification{
		{ID: "n1", Message: "one"},
		{ID: "n2", Message: "two"},
	})

	// Execute
	s.MarkAllNotificationsRead()

	// Assert
	for _, n := range s.Notifications() {
		assert.True(t, n.Read)
	}
}

func TestStore_SetUserOnline_UnknownUserIgnored(t *testing.T) {
	// Setup
	s := New()
	s.PutUser(&domain.User{ID: "u1", Name: "Alice"})

	// Execute
	s.SetUserOnline("u1", true)
	s.SetUserOnline("ghost", true)

	// Assert
	assert.True(t, s.User("u1").Online)
	assert.Nil(t, s.User("ghost"))
}
