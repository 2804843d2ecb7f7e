package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// UpdateTaskInput contains the parameters for updating a task.
type UpdateTaskInput struct {
	TaskID string           // Task to update (required)
	Patch  domain.TaskPatch // Fields to change; nil fields are untouched
}

// UpdateTaskOutput contains the result of updating a task.
type UpdateTaskOutput struct {
	Task    *domain.Task // Store state after the mutation settled
	Skipped bool         // True when the no-op guard suppressed the remote call
}

// UpdateTask is the use case for editing task fields optimistically.
type UpdateTask struct {
	store  *store.Store
	api    domain.TaskAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewUpdateTask creates a new UpdateTask use case.
func NewUpdateTask(s *store.Store, api domain.TaskAPI, clock domain.Clock, logger domain.Logger) *UpdateTask {
	return &UpdateTask{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute updates a task with the given input.
func (uc *UpdateTask) Execute(ctx context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	// Validate before anything reaches the network
	if in.Patch.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if in.Patch.Title != nil && *in.Patch.Title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if in.Patch.Status != nil && !in.Patch.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	if in.Patch.Priority != nil && !in.Patch.Priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}

	task := uc.store.Task(in.TaskID)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	// No-op guard: a patch that is field-equal to current state issues no
	// remote call and no activity-log traffic.
	if in.Patch.ChangesNothingOn(task) {
		return &UpdateTaskOutput{Task: task, Skipped: true}, nil
	}

	// Optimistic apply with a rollback snapshot of the touched fields
	txn := beginTaskTxn(uc.store, task, in.Patch)
	if err := uc.store.MergeTask(in.TaskID, in.Patch); err != nil {
		return nil, fmt.Errorf("apply patch: %w", err)
	}

	canonical, err := uc.api.UpdateTask(ctx, in.TaskID, in.Patch)
	if err != nil {
		txn.rollback()
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to update task %q: %v", task.Title, err))
		uc.logger.Error(task.ProjectID, "task", fmt.Sprintf("update %s rolled back: %v", in.TaskID, err))
		return nil, fmt.Errorf("update task: %w", err)
	}

	// Authoritative values for the touched fields only; concurrent edits
	// to other fields survive.
	if canonical != nil {
		_ = uc.store.MergeTask(in.TaskID, canonicalTaskPatch(canonical, in.Patch))
	}

	return &UpdateTaskOutput{Task: uc.store.Task(in.TaskID)}, nil
}
