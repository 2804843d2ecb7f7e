package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// SetMemberRoleInput contains the parameters for changing a member's role.
type SetMemberRoleInput struct {
	ProjectID string      // Project to modify (required)
	UserID    string      // Member to change (required)
	Role      domain.Role // New role (required)
}

// SetMemberRoleOutput contains the result of changing a member's role.
type SetMemberRoleOutput struct {
	Skipped bool // True when the member already had the role
}

// SetMemberRole is the use case for changing a member's project role.
type SetMemberRole struct {
	store  *store.Store
	api    domain.ProjectAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewSetMemberRole creates a new SetMemberRole use case.
func NewSetMemberRole(s *store.Store, api domain.ProjectAPI, clock domain.Clock, logger domain.Logger) *SetMemberRole {
	return &SetMemberRole{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute changes a member's role with the given input.
func (uc *SetMemberRole) Execute(ctx context.Context, in SetMemberRoleInput) (*SetMemberRoleOutput, error) {
	if !in.Role.IsValid() || in.Role == domain.RoleOwner {
		return nil, domain.ErrInvalidRole
	}
	project := uc.store.Project(in.ProjectID)
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	current, ok := project.MemberRole(in.UserID)
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	// Ownership transfer is a separate server-side operation
	if current == domain.RoleOwner {
		return nil, domain.ErrOwnerRoleChange
	}

	// No-op guard
	if current == in.Role {
		return &SetMemberRoleOutput{Skipped: true}, nil
	}

	prev := project.Members
	updated := slices.Clone(prev)
	for i := range updated {
		if updated[i].UserID == in.UserID {
			updated[i].Role = in.Role
		}
	}
	if err := uc.store.SetMembers(in.ProjectID, updated); err != nil {
		return nil, fmt.Errorf("apply members: %w", err)
	}

	if err := uc.api.UpdateMemberRole(ctx, in.ProjectID, in.UserID, in.Role); err != nil {
		_ = uc.store.SetMembers(in.ProjectID, prev)
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to change role in %q: %v", project.Name, err))
		uc.logger.Error(in.ProjectID, "member", fmt.Sprintf("role change for %s rolled back: %v", in.UserID, err))
		return nil, fmt.Errorf("update member role: %w", err)
	}

	return &SetMemberRoleOutput{}, nil
}
