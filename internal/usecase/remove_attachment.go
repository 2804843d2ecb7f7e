package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// RemoveAttachmentInput contains the parameters for removing an attachment.
type RemoveAttachmentInput struct {
	TaskID string // Task the attachment belongs to (required)
	FileID string // Attachment to remove (required)
}

// RemoveAttachmentOutput contains the result of removing an attachment.
type RemoveAttachmentOutput struct{}

// RemoveAttachment is the use case for detaching a file from a task.
type RemoveAttachment struct {
	store  *store.Store
	api    domain.TaskAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewRemoveAttachment creates a new RemoveAttachment use case.
func NewRemoveAttachment(s *store.Store, api domain.TaskAPI, clock domain.Clock, logger domain.Logger) *RemoveAttachment {
	return &RemoveAttachment{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute removes an attachment with the given input.
func (uc *RemoveAttachment) Execute(ctx context.Context, in RemoveAttachmentInput) (*RemoveAttachmentOutput, error) {
	task := uc.store.Task(in.TaskID)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	// Snapshot the metadata before the optimistic remove
	var snapshot *domain.Attachment
	for i := range task.Files {
		if task.Files[i].ID == in.FileID {
			snapshot = &task.Files[i]
			break
		}
	}
	if snapshot == nil {
		return nil, domain.ErrAttachmentNotFound
	}
	if err := uc.store.RemoveAttachment(in.TaskID, in.FileID); err != nil {
		return nil, fmt.Errorf("remove attachment: %w", err)
	}

	if err := uc.api.DeleteAttachment(ctx, in.TaskID, in.FileID); err != nil {
		_ = uc.store.AddAttachment(in.TaskID, *snapshot)
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to remove %q: %v", snapshot.Name, err))
		uc.logger.Error(task.ProjectID, "attachment", fmt.Sprintf("remove %s rolled back: %v", in.FileID, err))
		return nil, fmt.Errorf("delete attachment: %w", err)
	}

	return &RemoveAttachmentOutput{}, nil
}
