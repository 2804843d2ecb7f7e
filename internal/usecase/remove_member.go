package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// RemoveMemberInput contains the parameters for removing a project member.
type RemoveMemberInput struct {
	ProjectID string // Project to modify (required)
	UserID    string // Member to remove (required)
}

// RemoveMemberOutput contains the result of removing a member.
type RemoveMemberOutput struct{}

// RemoveMember is the use case for removing a user from a project.
type RemoveMember struct {
	store  *store.Store
	api    domain.ProjectAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewRemoveMember creates a new RemoveMember use case.
func NewRemoveMember(s *store.Store, api domain.ProjectAPI, clock domain.Clock, logger domain.Logger) *RemoveMember {
	return &RemoveMember{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute removes a member with the given input.
func (uc *RemoveMember) Execute(ctx context.Context, in RemoveMemberInput) (*RemoveMemberOutput, error) {
	project := uc.store.Project(in.ProjectID)
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	role, ok := project.MemberRole(in.UserID)
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	// The owner cannot leave through role edits
	if role == domain.RoleOwner {
		return nil, domain.ErrOwnerRoleChange
	}

	prev := project.Members
	updated := slices.DeleteFunc(slices.Clone(prev), func(m domain.Member) bool {
		return m.UserID == in.UserID
	})
	if err := uc.store.SetMembers(in.ProjectID, updated); err != nil {
		return nil, fmt.Errorf("apply members: %w", err)
	}

	if err := uc.api.RemoveMember(ctx, in.ProjectID, in.UserID); err != nil {
		_ = uc.store.SetMembers(in.ProjectID, prev)
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to remove member from %q: %v", project.Name, err))
		uc.logger.Error(in.ProjectID, "member", fmt.Sprintf("remove %s rolled back: %v", in.UserID, err))
		return nil, fmt.Errorf("remove member: %w", err)
	}

	return &RemoveMemberOutput{}, nil
}
