package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// OpenProjectInput contains the parameters for loading a project.
type OpenProjectInput struct {
	ProjectID string // Project to load (required)
}

// OpenProjectOutput contains the result of loading a project.
type OpenProjectOutput struct {
	Project *domain.Project
	Tasks   int // Number of tasks loaded
}

// OpenProject is the use case for the initial bulk load of a project:
// tasks, members and recent activity are fetched and placed in the store.
// Tasks are inserted in one pass before any parent check applies, so
// subtask-before-parent ordering in the server response is harmless.
type OpenProject struct {
	store  *store.Store
	api    domain.API
	logger domain.Logger
}

// NewOpenProject creates a new OpenProject use case.
func NewOpenProject(s *store.Store, api domain.API, logger domain.Logger) *OpenProject {
	return &OpenProject{
		store:  s,
		api:    api,
		logger: logger,
	}
}

// Execute loads the project with the given ID.
func (uc *OpenProject) Execute(ctx context.Context, in OpenProjectInput) (*OpenProjectOutput, error) {
	project := uc.store.Project(in.ProjectID)
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}

	members, err := uc.api.ListMembers(ctx, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if err := uc.store.SetMembers(in.ProjectID, members); err != nil {
		return nil, fmt.Errorf("store members: %w", err)
	}

	tasks, err := uc.api.ListTasks(ctx, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	for _, t := range tasks {
		uc.store.PutTask(t)
	}

	activities, err := uc.api.ListProjectActivities(ctx, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	uc.store.SetActivities(activities)

	uc.logger.Info(in.ProjectID, "project", fmt.Sprintf("loaded %d tasks, %d members", len(tasks), len(members)))
	return &OpenProjectOutput{Project: uc.store.Project(in.ProjectID), Tasks: len(tasks)}, nil
}
