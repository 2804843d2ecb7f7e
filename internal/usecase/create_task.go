package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// CreateTaskInput contains the parameters for creating a task.
// Fields are ordered to minimize memory padding.
type CreateTaskInput struct {
	ParentID    *string // Parent task ID (nil = root task)
	ProjectID   string  // Owning project (required)
	Title       string  // Title (required)
	Description string
	AssigneeID  string
	Priority    domain.Priority // Empty = medium
}

// CreateTaskOutput contains the result of creating a task.
type CreateTaskOutput struct {
	Task *domain.Task // Canonical task with the server-assigned ID
}

// CreateTask is the use case for creating a task optimistically. The task
// appears in the store under a temporary local ID immediately and is
// re-keyed to the server-assigned ID when the remote call resolves.
type CreateTask struct {
	store  *store.Store
	api    domain.TaskAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewCreateTask creates a new CreateTask use case.
func NewCreateTask(s *store.Store, api domain.TaskAPI, clock domain.Clock, logger domain.Logger) *CreateTask {
	return &CreateTask{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute creates a task with the given input.
func (uc *CreateTask) Execute(ctx context.Context, in CreateTaskInput) (*CreateTaskOutput, error) {
	// Validate before anything reaches the network
	if in.Title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if !in.Priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}
	if in.ParentID != nil {
		parent := uc.store.Task(*in.ParentID)
		if parent == nil {
			return nil, domain.ErrParentNotFound
		}
		// One level of nesting only
		if !parent.IsRoot() {
			return nil, domain.ErrSubtaskNesting
		}
		if parent.ProjectID != in.ProjectID {
			return nil, domain.ErrCrossProjectParent
		}
	}

	now := uc.clock.Now()
	task := &domain.Task{
		ID:          fmt.Sprintf("local-%d", now.UnixNano()),
		ProjectID:   in.ProjectID,
		ParentID:    in.ParentID,
		Title:       in.Title,
		Description: in.Description,
		AssigneeID:  in.AssigneeID,
		Status:      domain.StatusTodo,
		Priority:    in.Priority,
		CreatedAt:   now,
	}

	// Optimistic insert under the local ID
	uc.store.PutTask(task)
	localID := task.ID

	canonical, err := uc.api.CreateTask(ctx, task)
	if err != nil {
		uc.store.RemoveTask(localID)
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to create task %q: %v", in.Title, err))
		uc.logger.Error(in.ProjectID, "task", fmt.Sprintf("create rolled back: %v", err))
		return nil, fmt.Errorf("create task: %w", err)
	}

	// Re-key to the server-assigned ID. A task_created push event for the
	// same ID afterwards becomes a no-op.
	uc.store.RekeyTask(localID, canonical)
	uc.logger.Info(in.ProjectID, "task", fmt.Sprintf("created %s: %q", canonical.ID, in.Title))

	return &CreateTaskOutput{Task: uc.store.Task(canonical.ID)}, nil
}
