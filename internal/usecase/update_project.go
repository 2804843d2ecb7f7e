package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// UpdateProjectInput contains the parameters for updating a project.
type UpdateProjectInput struct {
	ProjectID string              // Project to update (required)
	Patch     domain.ProjectPatch // Fields to change; nil fields are untouched
}

// UpdateProjectOutput contains the result of updating a project.
type UpdateProjectOutput struct {
	Project *domain.Project // Store state after the mutation settled
	Skipped bool            // True when the no-op guard suppressed the remote call
}

// UpdateProject is the use case for renaming or re-describing a project.
type UpdateProject struct {
	store  *store.Store
	api    domain.ProjectAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewUpdateProject creates a new UpdateProject use case.
func NewUpdateProject(s *store.Store, api domain.ProjectAPI, clock domain.Clock, logger domain.Logger) *UpdateProject {
	return &UpdateProject{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute updates a project with the given input.
func (uc *UpdateProject) Execute(ctx context.Context, in UpdateProjectInput) (*UpdateProjectOutput, error) {
	if in.Patch.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if in.Patch.Name != nil && *in.Patch.Name == "" {
		return nil, domain.ErrEmptyName
	}

	project := uc.store.Project(in.ProjectID)
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}

	// No-op guard
	if in.Patch.ChangesNothingOn(project) {
		return &UpdateProjectOutput{Project: project, Skipped: true}, nil
	}

	// Snapshot the touched fields for rollback
	var prev domain.ProjectPatch
	if in.Patch.Name != nil {
		v := project.Name
		prev.Name = &v
	}
	if in.Patch.Description != nil {
		v := project.Description
		prev.Description = &v
	}

	if err := uc.store.MergeProject(in.ProjectID, in.Patch); err != nil {
		return nil, fmt.Errorf("apply patch: %w", err)
	}

	canonical, err := uc.api.UpdateProject(ctx, in.ProjectID, in.Patch)
	if err != nil {
		_ = uc.store.MergeProject(in.ProjectID, prev)
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to update project %q: %v", project.Name, err))
		uc.logger.Error(in.ProjectID, "project", fmt.Sprintf("update rolled back: %v", err))
		return nil, fmt.Errorf("update project: %w", err)
	}

	if canonical != nil {
		uc.store.PutProject(canonical)
	}
	return &UpdateProjectOutput{Project: uc.store.Project(in.ProjectID)}, nil
}
