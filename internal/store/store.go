// Package store provides the in-memory entity store that is the single
// source of truth for the client's view of server state.
package store

import (
	"slices"
	"sync"

	"github.com/mhiguchi/boardsync/internal/domain"
)

// Store holds the canonical in-memory collections keyed by ID. All writes
// go through its methods so that merge, cascade and rollback semantics stay
// in one place; reads return copies that callers may not write back.
// Fields are ordered to minimize memory padding.
type Store struct {
	tasks         map[string]*domain.Task
	projects      map[string]*domain.Project
	users         map[string]*domain.User
	activities    []domain.ActivityLog  // Newest first
	notifications []domain.Notification // Newest first
	subscribers   []func()
	mu            sync.Mutex
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		tasks:    make(map[string]*domain.Task),
		projects: make(map[string]*domain.Project),
		users:    make(map[string]*domain.User),
	}
}

// Subscribe registers fn to run after every successful write. Callbacks run
// outside the store lock.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// === Tasks ===

// PutTask inserts or fully replaces a task.
func (s *Store) PutTask(task *domain.Task) {
	s.mu.Lock()
	s.tasks[task.ID] = task.Clone()
	s.mu.Unlock()
	s.notify()
}

// MergeTask applies a shallow field merge to an existing task. The patch is
// rejected wholesale with ErrTaskNotFound if the ID is unknown; it is never
// partially applied.
func (s *Store) MergeTask(id string, patch domain.TaskPatch) error {
	s.mu.Lock()
	task, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	patch.ApplyTo(task)
	s.mu.Unlock()
	s.notify()
	return nil
}

// RemoveTask deletes a task and, for root tasks, every task whose ParentID
// equals id. The cascade happens under one lock acquisition: readers never
// observe subtasks outliving their parent. The removed subtree is returned
// so a failed remote delete can restore it exactly.
func (s *Store) RemoveTask(id string) []*domain.Task {
	s.mu.Lock()
	task, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	removed := []*domain.Task{task.Clone()}
	delete(s.tasks, id)
	for childID, child := range s.tasks {
		if child.ParentID != nil && *child.ParentID == id {
			removed = append(removed, child.Clone())
			delete(s.tasks, childID)
		}
	}
	s.mu.Unlock()
	s.notify()
	return removed
}

// RestoreTasks puts a previously removed subtree back.
func (s *Store) RestoreTasks(tasks []*domain.Task) {
	s.mu.Lock()
	for _, t := range tasks {
		s.tasks[t.ID] = t.Clone()
	}
	s.mu.Unlock()
	s.notify()
}

// RekeyTask moves a task from a temporary local ID to its server-assigned
// one. No-op if the old ID is unknown.
func (s *Store) RekeyTask(oldID string, task *domain.Task) {
	s.mu.Lock()
	if _, ok := s.tasks[oldID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.tasks, oldID)
	s.tasks[task.ID] = task.Clone()
	s.mu.Unlock()
	s.notify()
}

// Task returns a copy of the task, or nil if unknown.
func (s *Store) Task(id string) *domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil
	}
	return task.Clone()
}

// HasTask reports whether a task with the given ID exists.
func (s *Store) HasTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[id]
	return ok
}

// Tasks returns copies of all tasks, sorted by creation time then ID for
// consistent ordering.
func (s *Store) Tasks() []*domain.Task {
	s.mu.Lock()
	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t.Clone())
	}
	s.mu.Unlock()
	sortTasks(tasks)
	return tasks
}

// TasksByProject returns copies of all tasks belonging to projectID.
func (s *Store) TasksByProject(projectID string) []*domain.Task {
	s.mu.Lock()
	var tasks []*domain.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, t.Clone())
		}
	}
	s.mu.Unlock()
	sortTasks(tasks)
	return tasks
}

// SubtasksOf returns copies of all tasks whose ParentID equals taskID.
func (s *Store) SubtasksOf(taskID string) []*domain.Task {
	s.mu.Lock()
	var tasks []*domain.Task
	for _, t := range s.tasks {
		if t.ParentID != nil && *t.ParentID == taskID {
			tasks = append(tasks, t.Clone())
		}
	}
	s.mu.Unlock()
	sortTasks(tasks)
	return tasks
}

func sortTasks(tasks []*domain.Task) {
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return compareStrings(a.ID, b.ID)
	})
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AddComment appends a comment to a task's comment list. Duplicate comment
// IDs are dropped so at-least-once delivery stays safe.
func (s *Store) AddComment(taskID string, comment domain.Comment) error {
	s.mu.Lock()
	task, ok := s.tasks[taskID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	for _, c := range task.Comments {
		if c.ID == comment.ID {
			s.mu.Unlock()
			return nil
		}
	}
	task.Comments = append(task.Comments, comment)
	s.mu.Unlock()
	s.notify()
	return nil
}

// RemoveComment deletes a comment by ID from a task's comment list.
func (s *Store) RemoveComment(taskID, commentID string) error {
	s.mu.Lock()
	task, ok := s.tasks[taskID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	for i, c := range task.Comments {
		if c.ID == commentID {
			task.Comments = slices.Delete(task.Comments, i, i+1)
			s.mu.Unlock()
			s.notify()
			return nil
		}
	}
	s.mu.Unlock()
	return domain.ErrCommentNotFound
}

// AddAttachment appends attachment metadata to a task. Duplicate IDs are
// dropped.
func (s *Store) AddAttachment(taskID string, file domain.Attachment) error {
	s.mu.Lock()
	task, ok := s.tasks[taskID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	for _, f := range task.Files {
		if f.ID == file.ID {
			s.mu.Unlock()
			return nil
		}
	}
	task.Files = append(task.Files, file)
	s.mu.Unlock()
	s.notify()
	return nil
}

// RemoveAttachment deletes attachment metadata by ID from a task.
func (s *Store) RemoveAttachment(taskID, fileID string) error {
	s.mu.Lock()
	task, ok := s.tasks[taskID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	for i, f := range task.Files {
		if f.ID == fileID {
			task.Files = slices.Delete(task.Files, i, i+1)
			s.mu.Unlock()
			s.notify()
			return nil
		}
	}
	s.mu.Unlock()
	return domain.ErrAttachmentNotFound
}

// === Projects ===

// PutProject inserts or fully replaces a project.
func (s *Store) PutProject(project *domain.Project) {
	s.mu.Lock()
	s.projects[project.ID] = project.Clone()
	s.mu.Unlock()
	s.notify()
}

// MergeProject applies a shallow field merge to an existing project.
func (s *Store) MergeProject(id string, patch domain.ProjectPatch) error {
	s.mu.Lock()
	project, ok := s.projects[id]
	if !ok {
		s.mu.Unlock()
		return domain.ErrProjectNotFound
	}
	patch.ApplyTo(project)
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetMembers replaces a project's member list.
func (s *Store) SetMembers(projectID string, members []domain.Member) error {
	s.mu.Lock()
	project, ok := s.projects[projectID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrProjectNotFound
	}
	project.Members = slices.Clone(members)
	s.mu.Unlock()
	s.notify()
	return nil
}

// RemoveProject deletes a project and all of its tasks.
func (s *Store) RemoveProject(id string) {
	s.mu.Lock()
	delete(s.projects, id)
	for taskID, t := range s.tasks {
		if t.ProjectID == id {
			delete(s.tasks, taskID)
		}
	}
	s.mu.Unlock()
	s.notify()
}

// Project returns a copy of the project, or nil if unknown.
func (s *Store) Project(id string) *domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return nil
	}
	return project.Clone()
}

// Projects returns copies of all projects sorted by name.
func (s *Store) Projects() []*domain.Project {
	s.mu.Lock()
	projects := make([]*domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p.Clone())
	}
	s.mu.Unlock()
	slices.SortFunc(projects, func(a, b *domain.Project) int {
		return compareStrings(a.Name, b.Name)
	})
	return projects
}

// === Users ===

// PutUser inserts or fully replaces a user.
func (s *Store) PutUser(user *domain.User) {
	s.mu.Lock()
	u := *user
	s.users[user.ID] = &u
	s.mu.Unlock()
	s.notify()
}

// SetUserOnline updates a user's presence flag. Unknown users are ignored;
// presence is best-effort.
func (s *Store) SetUserOnline(userID string, online bool) {
	s.mu.Lock()
	if u, ok := s.users[userID]; ok {
		u.Online = online
	}
	s.mu.Unlock()
	s.notify()
}

// User returns a copy of the user, or nil if unknown.
func (s *Store) User(id string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil
	}
	u := *user
	return &u
}

// === Activities ===

// PrependActivity inserts an activity entry at the head of the list.
// Entries with an already-known ID are dropped.
func (s *Store) PrependActivity(entry domain.ActivityLog) {
	s.mu.Lock()
	for _, a := range s.activities {
		if a.ID == entry.ID {
			s.mu.Unlock()
			return
		}
	}
	s.activities = slices.Insert(s.activities, 0, entry)
	s.mu.Unlock()
	s.notify()
}

// RemoveActivity deletes an activity entry by ID.
func (s *Store) RemoveActivity(id string) {
	s.mu.Lock()
	s.activities = slices.DeleteFunc(s.activities, func(a domain.ActivityLog) bool {
		return a.ID == id
	})
	s.mu.Unlock()
	s.notify()
}

// SetActivities replaces the activity list wholesale (initial load).
func (s *Store) SetActivities(entries []domain.ActivityLog) {
	s.mu.Lock()
	s.activities = slices.Clone(entries)
	s.mu.Unlock()
	s.notify()
}

// Activities returns a copy of the activity list, newest first.
func (s *Store) Activities() []domain.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.activities)
}

// === Notifications ===

// PrependNotification inserts a notification at the head of the list.
// Durable notifications with an already-known ID are dropped.
func (s *Store) PrependNotification(n domain.Notification) {
	s.mu.Lock()
	if n.ID != "" {
		for _, existing := range s.notifications {
			if existing.ID == n.ID {
				s.mu.Unlock()
				return
			}
		}
	}
	s.notifications = slices.Insert(s.notifications, 0, n)
	s.mu.Unlock()
	s.notify()
}

// SetNotifications replaces the notification list wholesale (initial load).
func (s *Store) SetNotifications(ns []domain.Notification) {
	s.mu.Lock()
	s.notifications = slices.Clone(ns)
	s.mu.Unlock()
	s.notify()
}

// MarkNotificationRead flips the read flag on one notification.
func (s *Store) MarkNotificationRead(id string) error {
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			s.mu.Unlock()
			s.notify()
			return nil
		}
	}
	s.mu.Unlock()
	return domain.ErrNotificationNotFound
}

// MarkAllNotificationsRead flips the read flag on every notification.
func (s *Store) MarkAllNotificationsRead() {
	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.mu.Unlock()
	s.notify()
}

// DismissNotification removes a notification from the visible list. For
// ephemeral (ID-less) notifications the index into the current list is used.
func (s *Store) DismissNotification(id string) error {
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = slices.Delete(s.notifications, i, i+1)
			s.mu.Unlock()
			s.notify()
			return nil
		}
	}
	s.mu.Unlock()
	return domain.ErrNotificationNotFound
}

// Notifications returns a copy of the notification list, newest first.
func (s *Store) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notifications)
}
