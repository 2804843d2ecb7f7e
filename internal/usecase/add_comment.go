package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// AddCommentInput contains the parameters for adding a comment.
type AddCommentInput struct {
	TaskID   string // Task to comment on (required)
	AuthorID string // Commenting user
	Text     string // Comment text (required)
}

// AddCommentOutput contains the result of adding a comment.
type AddCommentOutput struct {
	Comment *domain.Comment // Canonical comment with the server-assigned ID
}

// AddComment is the use case for appending a comment to a task.
type AddComment struct {
	store  *store.Store
	api    domain.TaskAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewAddComment creates a new AddComment use case.
func NewAddComment(s *store.Store, api domain.TaskAPI, clock domain.Clock, logger domain.Logger) *AddComment {
	return &AddComment{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute adds a comment with the given input.
func (uc *AddComment) Execute(ctx context.Context, in AddCommentInput) (*AddCommentOutput, error) {
	if in.Text == "" {
		return nil, domain.ErrEmptyComment
	}
	task := uc.store.Task(in.TaskID)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	// Optimistic append under a local ID
	local := domain.Comment{
		ID:        fmt.Sprintf("local-%d", uc.clock.Now().UnixNano()),
		AuthorID:  in.AuthorID,
		Text:      in.Text,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.store.AddComment(in.TaskID, local); err != nil {
		return nil, fmt.Errorf("apply comment: %w", err)
	}

	canonical, err := uc.api.CreateComment(ctx, in.TaskID, in.Text)
	if err != nil {
		_ = uc.store.RemoveComment(in.TaskID, local.ID)
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to add comment to %q: %v", task.Title, err))
		uc.logger.Error(task.ProjectID, "comment", fmt.Sprintf("add to %s rolled back: %v", in.TaskID, err))
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// Swap the optimistic comment for the canonical one. A comment_added
	// push for the same ID afterwards is a duplicate no-op.
	_ = uc.store.RemoveComment(in.TaskID, local.ID)
	if err := uc.store.AddComment(in.TaskID, *canonical); err != nil {
		return nil, fmt.Errorf("store comment: %w", err)
	}

	return &AddCommentOutput{Comment: canonical}, nil
}
