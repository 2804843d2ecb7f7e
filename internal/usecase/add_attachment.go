package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// AddAttachmentInput contains the parameters for attaching a file.
type AddAttachmentInput struct {
	Content io.Reader // File content (required)
	TaskID  string    // Task to attach to (required)
	Name    string    // File name (required)
}

// AddAttachmentOutput contains the result of attaching a file.
type AddAttachmentOutput struct {
	Attachment *domain.Attachment // Metadata returned by the blob store
}

// AddAttachment is the use case for attaching a file to a task. Unlike the
// other mutations there is no optimistic phase: the metadata (ID, URL,
// size) only exists once the upload resolves, so the store is written after
// the remote call.
type AddAttachment struct {
	store  *store.Store
	api    domain.TaskAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewAddAttachment creates a new AddAttachment use case.
func NewAddAttachment(s *store.Store, api domain.TaskAPI, clock domain.Clock, logger domain.Logger) *AddAttachment {
	return &AddAttachment{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute uploads the file and records its metadata on the task.
func (uc *AddAttachment) Execute(ctx context.Context, in AddAttachmentInput) (*AddAttachmentOutput, error) {
	if in.Name == "" {
		return nil, domain.ErrEmptyName
	}
	task := uc.store.Task(in.TaskID)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	attachment, err := uc.api.UploadAttachment(ctx, in.TaskID, in.Name, in.Content)
	if err != nil {
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to upload %q: %v", in.Name, err))
		uc.logger.Error(task.ProjectID, "attachment", fmt.Sprintf("upload to %s failed: %v", in.TaskID, err))
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	if err := uc.store.AddAttachment(in.TaskID, *attachment); err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}
	return &AddAttachmentOutput{Attachment: attachment}, nil
}
