package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string // Task to delete (required)
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Removed int // Number of tasks removed, including cascaded subtasks
}

// DeleteTask is the use case for deleting a task. Deleting a root task
// optimistically removes it and all of its subtasks before the remote call
// resolves; a failed call restores the exact pre-deletion subtree.
type DeleteTask struct {
	store  *store.Store
	api    domain.TaskAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(s *store.Store, api domain.TaskAPI, clock domain.Clock, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute deletes a task with the given ID.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	task := uc.store.Task(in.TaskID)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	// Optimistic cascade remove; keep the subtree for rollback
	removed := uc.store.RemoveTask(in.TaskID)

	if err := uc.api.DeleteTask(ctx, in.TaskID); err != nil {
		uc.store.RestoreTasks(removed)
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to delete task %q: %v", task.Title, err))
		uc.logger.Error(task.ProjectID, "task", fmt.Sprintf("delete %s rolled back: %v", in.TaskID, err))
		return nil, fmt.Errorf("delete task: %w", err)
	}

	uc.logger.Info(task.ProjectID, "task", fmt.Sprintf("deleted %s (%d tasks)", in.TaskID, len(removed)))
	return &DeleteTaskOutput{Removed: len(removed)}, nil
}
