// Package view derives task hierarchy and permission information from
// current store state. Everything here is a pure function: no mutation, no
// caching, recomputed on every call.
package view

import (
	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// SubtasksOf returns all tasks whose parent is taskID.
func SubtasksOf(s *store.Store, taskID string) []*domain.Task {
	return s.SubtasksOf(taskID)
}

// Progress returns the percentage of done subtasks of taskID, 0 when the
// task has no subtasks. Used for progress bars.
func Progress(s *store.Store, taskID string) int {
	subtasks := s.SubtasksOf(taskID)
	if len(subtasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range subtasks {
		if t.Status == domain.StatusDone {
			done++
		}
	}
	return done * 100 / len(subtasks)
}

// RoleOf returns userID's role in projectID, or false if the user is not a
// member (or the project is unknown).
func RoleOf(s *store.Store, projectID, userID string) (domain.Role, bool) {
	project := s.Project(projectID)
	if project == nil {
		return "", false
	}
	return project.MemberRole(userID)
}

// CanEdit returns true if the role grants write access. Non-members
// (ok == false) are read-only.
func CanEdit(role domain.Role, ok bool) bool {
	return ok && role.CanEdit()
}
