package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// DeleteCommentInput contains the parameters for removing a comment.
type DeleteCommentInput struct {
	TaskID    string // Task the comment belongs to (required)
	CommentID string // Comment to remove (required)
}

// DeleteCommentOutput contains the result of removing a comment.
type DeleteCommentOutput struct{}

// DeleteComment is the use case for removing a comment from a task.
type DeleteComment struct {
	store  *store.Store
	api    domain.TaskAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewDeleteComment creates a new DeleteComment use case.
func NewDeleteComment(s *store.Store, api domain.TaskAPI, clock domain.Clock, logger domain.Logger) *DeleteComment {
	return &DeleteComment{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute removes a comment with the given input.
func (uc *DeleteComment) Execute(ctx context.Context, in DeleteCommentInput) (*DeleteCommentOutput, error) {
	task := uc.store.Task(in.TaskID)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	// Snapshot the comment before the optimistic remove
	var snapshot *domain.Comment
	for i := range task.Comments {
		if task.Comments[i].ID == in.CommentID {
			snapshot = &task.Comments[i]
			break
		}
	}
	if snapshot == nil {
		return nil, domain.ErrCommentNotFound
	}
	if err := uc.store.RemoveComment(in.TaskID, in.CommentID); err != nil {
		return nil, fmt.Errorf("remove comment: %w", err)
	}

	if err := uc.api.DeleteComment(ctx, in.TaskID, in.CommentID); err != nil {
		_ = uc.store.AddComment(in.TaskID, *snapshot)
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to delete comment on %q: %v", task.Title, err))
		uc.logger.Error(task.ProjectID, "comment", fmt.Sprintf("delete %s rolled back: %v", in.CommentID, err))
		return nil, fmt.Errorf("delete comment: %w", err)
	}

	return &DeleteCommentOutput{}, nil
}
