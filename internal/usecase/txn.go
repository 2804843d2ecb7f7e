// Package usecase contains application use cases. Every user-initiated
// write follows the same protocol: validate, skip if nothing changes, apply
// optimistically, call the remote API, and on failure roll back to the
// pre-mutation snapshot and surface exactly one error notification.
package usecase

import (
	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// taskTxn captures the pre-mutation values of exactly the fields a patch
// touches. Rolling back merges those values instead of overwriting the
// whole entity, so two concurrent mutations on the same task roll back
// independently without clobbering each other's fields.
type taskTxn struct {
	store *store.Store
	id    string
	prev  domain.TaskPatch
}

// beginTaskTxn records the current values of the fields patch will change.
func beginTaskTxn(s *store.Store, task *domain.Task, patch domain.TaskPatch) taskTxn {
	var prev domain.TaskPatch
	if patch.Title != nil {
		v := task.Title
		prev.Title = &v
	}
	if patch.Description != nil {
		v := task.Description
		prev.Description = &v
	}
	if patch.Status != nil {
		v := task.Status
		prev.Status = &v
	}
	if patch.Priority != nil {
		v := task.Priority
		prev.Priority = &v
	}
	if patch.AssigneeID != nil {
		v := task.AssigneeID
		prev.AssigneeID = &v
	}
	if patch.TouchesStartDate() {
		if task.StartDate == nil {
			prev.ClearStartDate = true
		} else {
			v := *task.StartDate
			prev.StartDate = &v
		}
	}
	if patch.TouchesDueDate() {
		if task.DueDate == nil {
			prev.ClearDueDate = true
		} else {
			v := *task.DueDate
			prev.DueDate = &v
		}
	}
	return taskTxn{store: s, id: task.ID, prev: prev}
}

// rollback restores the captured field values. If the task has vanished in
// the meantime (deleted by a push event), there is nothing to restore.
func (t taskTxn) rollback() {
	_ = t.store.MergeTask(t.id, t.prev)
}

// canonicalTaskPatch extracts the fields touched by the original patch from
// the server-returned canonical task, so authoritative values replace the
// optimistic ones without disturbing unrelated fields.
func canonicalTaskPatch(canonical *domain.Task, touched domain.TaskPatch) domain.TaskPatch {
	var p domain.TaskPatch
	if touched.Title != nil {
		v := canonical.Title
		p.Title = &v
	}
	if touched.Description != nil {
		v := canonical.Description
		p.Description = &v
	}
	if touched.Status != nil {
		v := canonical.Status
		p.Status = &v
	}
	if touched.Priority != nil {
		v := canonical.Priority
		p.Priority = &v
	}
	if touched.AssigneeID != nil {
		v := canonical.AssigneeID
		p.AssigneeID = &v
	}
	if touched.TouchesStartDate() {
		if canonical.StartDate == nil {
			p.ClearStartDate = true
		} else {
			v := *canonical.StartDate
			p.StartDate = &v
		}
	}
	if touched.TouchesDueDate() {
		if canonical.DueDate == nil {
			p.ClearDueDate = true
		} else {
			v := *canonical.DueDate
			p.DueDate = &v
		}
	}
	return p
}

// notifyError surfaces a mutation failure as a single local error
// notification. Local notifications carry no ID and never reach the server.
func notifyError(s *store.Store, clock domain.Clock, message string) {
	s.PrependNotification(domain.Notification{
		Kind:      domain.NotifyError,
		Message:   message,
		CreatedAt: clock.Now(),
	})
}
