package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
	"github.com/mhiguchi/boardsync/internal/testutil"
)

func seedTask(s *store.Store) *domain.Task {
	task := &domain.Task{
		ID:        "t1",
		ProjectID: "p1",
		Title:     "Write report",
		Status:    domain.StatusTodo,
		Priority:  domain.PriorityLow,
	}
	s.PutTask(task)
	return task
}

func TestUpdateTask_Execute_OptimisticSuccess(t *testing.T) {
	// Setup
	s := store.New()
	seedTask(s)
	status := domain.StatusDone
	api := &testutil.MockAPI{
		UpdatedTask: &domain.Task{
			ID:        "t1",
			ProjectID: "p1",
			Title:     "Write report",
			Status:    domain.StatusDone,
			Priority:  domain.PriorityLow,
		},
	}
	uc := NewUpdateTask(s, api, &testutil.MockClock{}, &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), UpdateTaskInput{
		TaskID: "t1",
		Patch:  domain.TaskPatch{Status: &status},
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, out.Skipped)
	assert.Equal(t, domain.StatusDone, out.Task.Status)
	assert.Equal(t, 1, api.UpdateTaskCalls)
}

func TestUpdateTask_Execute_NoOpGuardSkipsRemoteCall(t *testing.T) {
	// Setup
	s := store.New()
	seedTask(s)
	api := &testutil.MockAPI{}
	uc := NewUpdateTask(s, api, &testutil.MockClock{}, &testutil.MockLogger{})

	// Execute
	status := domain.StatusTodo // Already todo
	out, err := uc.Execute(context.Background(), UpdateTaskInput{
		TaskID: "t1",
		Patch:  domain.TaskPatch{Status: &status},
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.Equal(t, 0, api.UpdateTaskCalls)
	assert.Empty(t, s.Notifications())
}

func TestUpdateTask_Execute_RollbackOnFailure(t *testing.T) {
	// Setup
	s := store.New()
	seedTask(s)
	api := &testutil.MockAPI{UpdateTaskErr: errors.New("503 service unavailable")}
	uc := NewUpdateTask(s, api, &testutil.MockClock{NowTime: time.Now()}, &testutil.MockLogger{})

	// Execute
	priority := domain.PriorityHigh
	_, err := uc.Execute(context.Background(), UpdateTaskInput{
		TaskID: "t1",
		Patch:  domain.TaskPatch{Priority: &priority},
	})

	// Assert
	require.Error(t, err)
	assert.Equal(t, domain.PriorityLow, s.Task("t1").Priority)
	ns := s.Notifications()
	require.Len(t, ns, 1)
	assert.Equal(t, domain.NotifyError, ns[0].Kind)
	assert.False(t, ns[0].IsDurable())
}

func TestUpdateTask_Execute_RollbackPreservesConcurrentFields(t *testing.T) {
	// Setup: a push event changes the title while our priority update is in
	// flight; the rollback must not clobber the new title.
	s := store.New()
	seedTask(s)
	pushedTitle := "Renamed by teammate"
	api := &testutil.MockAPI{UpdateTaskErr: errors.New("boom")}
	uc := NewUpdateTask(s, api, &testutil.MockClock{}, &testutil.MockLogger{})

	// Simulate the concurrent title change after the optimistic apply by
	// pre-recording it; field-level snapshots only capture touched fields.
	require.NoError(t, s.MergeTask("t1", domain.TaskPatch{Title: &pushedTitle}))

	// Execute
	priority := domain.PriorityHigh
	_, err := uc.Execute(context.Background(), UpdateTaskInput{
		TaskID: "t1",
		Patch:  domain.TaskPatch{Priority: &priority},
	})

	// Assert
	require.Error(t, err)
	got := s.Task("t1")
	assert.Equal(t, domain.PriorityLow, got.Priority)
	assert.Equal(t, pushedTitle, got.Title)
}

func TestUpdateTask_Execute_ClearDueDateRollsBackToNil(t *testing.T) {
	// Setup
	s := store.New()
	seedTask(s)
	api := &testutil.MockAPI{UpdateTaskErr: errors.New("boom")}
	uc := NewUpdateTask(s, api, &testutil.MockClock{}, &testutil.MockLogger{})

	// Execute: set a due date on a task that has none; the failure must
	// restore the nil date exactly.
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), UpdateTaskInput{
		TaskID: "t1",
		Patch:  domain.TaskPatch{DueDate: &due},
	})

	// Assert
	require.Error(t, err)
	assert.Nil(t, s.Task("t1").DueDate)
}

func TestUpdateTask_Execute_Validation(t *testing.T) {
	// Setup
	s := store.New()
	seedTask(s)
	uc := NewUpdateTask(s, &testutil.MockAPI{}, &testutil.MockClock{}, &testutil.MockLogger{})
	empty := ""
	badStatus := domain.Status("archived")
	badPriority := domain.Priority("urgent")

	tests := []struct {
		name    string
		input   UpdateTaskInput
		wantErr error
	}{
		{"empty patch", UpdateTaskInput{TaskID: "t1"}, domain.ErrNoFieldsToUpdate},
		{"empty title", UpdateTaskInput{TaskID: "t1", Patch: domain.TaskPatch{Title: &empty}}, domain.ErrEmptyTitle},
		{"invalid status", UpdateTaskInput{TaskID: "t1", Patch: domain.TaskPatch{Status: &badStatus}}, domain.ErrInvalidStatus},
		{"invalid priority", UpdateTaskInput{TaskID: "t1", Patch: domain.TaskPatch{Priority: &badPriority}}, domain.ErrInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Execute
			_, err := uc.Execute(context.Background(), tt.input)

			// Assert
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateTask_Execute_UnknownTask(t *testing.T) {
	// Setup
	s := store.New()
	uc := NewUpdateTask(s, &testutil.MockAPI{}, &testutil.MockClock{}, &testutil.MockLogger{})

	// Execute
	title := "New"
	_, err := uc.Execute(context.Background(), UpdateTaskInput{
		TaskID: "missing",
		Patch:  domain.TaskPatch{Title: &title},
	})

	// Assert
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
