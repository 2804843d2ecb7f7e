package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// CreateProjectInput contains the parameters for creating a project.
type CreateProjectInput struct {
	Name        string // Project name (required)
	Description string
}

// CreateProjectOutput contains the result of creating a project.
type CreateProjectOutput struct {
	Project *domain.Project // Canonical project with the server-assigned ID
}

// CreateProject is the use case for creating a project. Project creation is
// not applied optimistically: membership and ownership are server-assigned,
// so the store is only written once the canonical entity arrives.
type CreateProject struct {
	store  *store.Store
	api    domain.ProjectAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewCreateProject creates a new CreateProject use case.
func NewCreateProject(s *store.Store, api domain.ProjectAPI, clock domain.Clock, logger domain.Logger) *CreateProject {
	return &CreateProject{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute creates a project with the given input.
func (uc *CreateProject) Execute(ctx context.Context, in CreateProjectInput) (*CreateProjectOutput, error) {
	if in.Name == "" {
		return nil, domain.ErrEmptyName
	}

	project, err := uc.api.CreateProject(ctx, in.Name, in.Description)
	if err != nil {
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to create project %q: %v", in.Name, err))
		return nil, fmt.Errorf("create project: %w", err)
	}

	uc.store.PutProject(project)
	uc.logger.Info(project.ID, "project", fmt.Sprintf("created %q", in.Name))
	return &CreateProjectOutput{Project: project}, nil
}
