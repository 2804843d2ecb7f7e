// Package domain contains core business entities and interfaces.
package domain

import "time"

// Task represents a work item inside a project.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt   time.Time    `json:"createdAt"`           // Creation time (server-assigned, immutable)
	StartDate   *time.Time   `json:"startDate,omitempty"` // Optional scheduled start
	DueDate     *time.Time   `json:"dueDate,omitempty"`   // Optional due date
	ParentID    *string      `json:"parentId"`            // Parent task ID (nil = root task)
	ID          string       `json:"id"`                  // Server-assigned ID (stable)
	ProjectID   string       `json:"projectId"`           // Owning project (immutable)
	Title       string       `json:"title"`               // Title (required)
	Description string       `json:"description,omitempty"`
	AssigneeID  string       `json:"assigneeId,omitempty"` // Empty = unassigned
	Status      Status       `json:"status"`
	Priority    Priority     `json:"priority"`
	Comments    []Comment    `json:"comments,omitempty"`
	Files       []Attachment `json:"files,omitempty"`
}

// IsRoot returns true if this is a root task (no parent).
func (t *Task) IsRoot() bool {
	return t.ParentID == nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.StartDate != nil {
		d := *t.StartDate
		c.StartDate = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.ParentID != nil {
		p := *t.ParentID
		c.ParentID = &p
	}
	if t.Comments != nil {
		c.Comments = make([]Comment, len(t.Comments))
		copy(c.Comments, t.Comments)
	}
	if t.Files != nil {
		c.Files = make([]Attachment, len(t.Files))
		copy(c.Files, t.Files)
	}
	return &c
}

// Comment represents a note attached to a task.
type Comment struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
}

// Attachment holds metadata for an externally stored file blob.
// The client never holds the blob itself, only this record.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// TaskPatch describes a partial task update. Nil fields are left untouched;
// the Clear flags remove the corresponding optional field.
// Fields are ordered to minimize memory padding.
type TaskPatch struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Status         *Status    `json:"status,omitempty"`
	Priority       *Priority  `json:"priority,omitempty"`
	AssigneeID     *string    `json:"assigneeId,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	ClearStartDate bool       `json:"clearStartDate,omitempty"`
	ClearDueDate   bool       `json:"clearDueDate,omitempty"`
}

// IsEmpty returns true if the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.AssigneeID == nil &&
		p.StartDate == nil && p.DueDate == nil &&
		!p.ClearStartDate && !p.ClearDueDate
}

// TouchesStartDate returns true if the patch modifies the start date.
func (p TaskPatch) TouchesStartDate() bool {
	return p.StartDate != nil || p.ClearStartDate
}

// TouchesDueDate returns true if the patch modifies the due date.
func (p TaskPatch) TouchesDueDate() bool {
	return p.DueDate != nil || p.ClearDueDate
}

// ChangesNothingOn returns true if applying the patch to t would leave every
// field at its current value. Used as the no-op guard before a remote call.
func (p TaskPatch) ChangesNothingOn(t *Task) bool {
	if p.Title != nil && *p.Title != t.Title {
		return false
	}
	if p.Description != nil && *p.Description != t.Description {
		return false
	}
	if p.Status != nil && *p.Status != t.Status {
		return false
	}
	if p.Priority != nil && *p.Priority != t.Priority {
		return false
	}
	if p.AssigneeID != nil && *p.AssigneeID != t.AssigneeID {
		return false
	}
	if p.ClearStartDate {
		if t.StartDate != nil {
			return false
		}
	} else if p.StartDate != nil && !equalTime(p.StartDate, t.StartDate) {
		return false
	}
	if p.ClearDueDate {
		if t.DueDate != nil {
			return false
		}
	} else if p.DueDate != nil && !equalTime(p.DueDate, t.DueDate) {
		return false
	}
	return true
}

// ApplyTo merges the patch into the task in place.
func (p TaskPatch) ApplyTo(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.AssigneeID != nil {
		t.AssigneeID = *p.AssigneeID
	}
	switch {
	case p.ClearStartDate:
		t.StartDate = nil
	case p.StartDate != nil:
		d := *p.StartDate
		t.StartDate = &d
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		d := *p.DueDate
		t.DueDate = &d
	}
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
