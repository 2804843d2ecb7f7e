package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// DeleteProjectInput contains the parameters for deleting a project.
type DeleteProjectInput struct {
	ProjectID string // Project to delete (required)
}

// DeleteProjectOutput contains the result of deleting a project.
type DeleteProjectOutput struct{}

// DeleteProject is the use case for deleting a project and its tasks.
// The remote call runs first: restoring a whole project subtree after a
// failed optimistic delete is not worth the complexity for an operation
// this rare.
type DeleteProject struct {
	store  *store.Store
	api    domain.ProjectAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewDeleteProject creates a new DeleteProject use case.
func NewDeleteProject(s *store.Store, api domain.ProjectAPI, clock domain.Clock, logger domain.Logger) *DeleteProject {
	return &DeleteProject{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute deletes a project with the given ID.
func (uc *DeleteProject) Execute(ctx context.Context, in DeleteProjectInput) (*DeleteProjectOutput, error) {
	project := uc.store.Project(in.ProjectID)
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}

	if err := uc.api.DeleteProject(ctx, in.ProjectID); err != nil {
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to delete project %q: %v", project.Name, err))
		return nil, fmt.Errorf("delete project: %w", err)
	}

	uc.store.RemoveProject(in.ProjectID)
	uc.logger.Info(in.ProjectID, "project", fmt.Sprintf("deleted %q", project.Name))
	return &DeleteProjectOutput{}, nil
}
