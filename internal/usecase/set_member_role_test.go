package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
	"github.com/mhiguchi/boardsync/internal/testutil"
)

func seedProject(s *store.Store) {
	s.PutProject(&domain.Project{
		ID:      "p1",
		Name:    "Project",
		OwnerID: "u1",
		Members: []domain.Member{
			{UserID: "u1", Role: domain.RoleOwner},
			{UserID: "u2", Role: domain.RoleViewer},
		},
	})
}

func TestSetMemberRole_Execute_Promotes(t *testing.T) {
	// Setup
	s := store.New()
	seedProject(s)
	api := &testutil.MockAPI{}
	uc := NewSetMemberRole(s, api, &testutil.MockClock{}, &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), SetMemberRoleInput{
		ProjectID: "p1",
		UserID:    "u2",
		Role:      domain.RoleMember,
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, out.Skipped)
	role, ok := s.Project("p1").MemberRole("u2")
	require.True(t, ok)
	assert.Equal(t, domain.RoleMember, role)
}

func TestSetMemberRole_Execute_NoOpGuard(t *testing.T) {
	// Setup
	s := store.New()
	seedProject(s)
	uc := NewSetMemberRole(s, &testutil.MockAPI{}, &testutil.MockClock{}, &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), SetMemberRoleInput{
		ProjectID: "p1",
		UserID:    "u2",
		Role:      domain.RoleViewer, // Already a viewer
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Skipped)
}

func TestSetMemberRole_Execute_RollbackOnFailure(t *testing.T) {
	// Setup
	s := store.New()
	seedProject(s)
	api := &testutil.MockAPI{UpdateRoleErr: errors.New("boom")}
	uc := NewSetMemberRole(s, api, &testutil.MockClock{NowTime: time.Now()}, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), SetMemberRoleInput{
		ProjectID: "p1",
		UserID:    "u2",
		Role:      domain.RoleMember,
	})

	// Assert
	require.Error(t, err)
	role, _ := s.Project("p1").MemberRole("u2")
	assert.Equal(t, domain.RoleViewer, role)
	assert.Len(t, s.Notifications(), 1)
}

func TestSetMemberRole_Execute_OwnerGuards(t *testing.T) {
	// Setup
	s := store.New()
	seedProject(s)
	uc := NewSetMemberRole(s, &testutil.MockAPI{}, &testutil.MockClock{}, &testutil.MockLogger{})

	// Execute: granting owner and demoting the owner are both refused
	_, grantErr := uc.Execute(context.Background(), SetMemberRoleInput{
		ProjectID: "p1", UserID: "u2", Role: domain.RoleOwner,
	})
	_, demoteErr := uc.Execute(context.Background(), SetMemberRoleInput{
		ProjectID: "p1", UserID: "u1", Role: domain.RoleMember,
	})

	// Assert
	assert.ErrorIs(t, grantErr, domain.ErrInvalidRole)
	assert.ErrorIs(t, demoteErr, domain.ErrOwnerRoleChange)
}
