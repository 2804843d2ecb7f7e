package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// ListProjectsInput contains the parameters for listing projects.
type ListProjectsInput struct {
	UserID string // Viewer (required)
}

// ListProjectsOutput contains the result of listing projects.
type ListProjectsOutput struct {
	Projects []*domain.Project
}

// ListProjects is the use case for fetching the projects visible to the
// user into the store.
type ListProjects struct {
	store *store.Store
	api   domain.ProjectAPI
}

// NewListProjects creates a new ListProjects use case.
func NewListProjects(s *store.Store, api domain.ProjectAPI) *ListProjects {
	return &ListProjects{store: s, api: api}
}

// Execute lists projects for the given user.
func (uc *ListProjects) Execute(ctx context.Context, in ListProjectsInput) (*ListProjectsOutput, error) {
	projects, err := uc.api.ListProjects(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	for _, p := range projects {
		uc.store.PutProject(p)
	}
	return &ListProjectsOutput{Projects: uc.store.Projects()}, nil
}
