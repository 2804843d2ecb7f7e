package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// AddMemberInput contains the parameters for adding a project member.
type AddMemberInput struct {
	ProjectID string      // Project to modify (required)
	UserID    string      // User to add (required)
	Role      domain.Role // Role to grant (required)
}

// AddMemberOutput contains the result of adding a member.
type AddMemberOutput struct{}

// AddMember is the use case for adding a user to a project.
type AddMember struct {
	store  *store.Store
	api    domain.ProjectAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewAddMember creates a new AddMember use case.
func NewAddMember(s *store.Store, api domain.ProjectAPI, clock domain.Clock, logger domain.Logger) *AddMember {
	return &AddMember{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute adds a member with the given input.
func (uc *AddMember) Execute(ctx context.Context, in AddMemberInput) (*AddMemberOutput, error) {
	if !in.Role.IsValid() || in.Role == domain.RoleOwner {
		return nil, domain.ErrInvalidRole
	}
	project := uc.store.Project(in.ProjectID)
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	if _, ok := project.MemberRole(in.UserID); ok {
		return nil, domain.ErrMemberExists
	}

	// Optimistic apply against the snapshot member list
	prev := project.Members
	updated := append(append([]domain.Member{}, prev...), domain.Member{UserID: in.UserID, Role: in.Role})
	if err := uc.store.SetMembers(in.ProjectID, updated); err != nil {
		return nil, fmt.Errorf("apply members: %w", err)
	}

	if err := uc.api.AddMember(ctx, in.ProjectID, in.UserID, in.Role); err != nil {
		_ = uc.store.SetMembers(in.ProjectID, prev)
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to add member to %q: %v", project.Name, err))
		uc.logger.Error(in.ProjectID, "member", fmt.Sprintf("add %s rolled back: %v", in.UserID, err))
		return nil, fmt.Errorf("add member: %w", err)
	}

	return &AddMemberOutput{}, nil
}
