package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())

	title := "x"
	assert.False(t, TaskPatch{Title: &title}.IsEmpty())
	assert.False(t, TaskPatch{ClearDueDate: true}.IsEmpty())
}

func TestTaskPatch_ChangesNothingOn(t *testing.T) {
	// Setup
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{
		ID:       "t1",
		Title:    "Title",
		Status:   StatusTodo,
		Priority: PriorityLow,
		DueDate:  &due,
	}

	// Same values change nothing
	sameTitle := "Title"
	sameStatus := StatusTodo
	sameDue := due
	assert.True(t, TaskPatch{Title: &sameTitle, Status: &sameStatus, DueDate: &sameDue}.ChangesNothingOn(task))

	// Any differing field counts as a change
	newStatus := StatusDone
	assert.False(t, TaskPatch{Status: &newStatus}.ChangesNothingOn(task))
	assert.False(t, TaskPatch{ClearDueDate: true}.ChangesNothingOn(task))

	// Clearing an already-nil date is a no-op
	noDates := &Task{ID: "t2", Title: "Bare", Status: StatusTodo}
	assert.True(t, TaskPatch{ClearStartDate: true}.ChangesNothingOn(noDates))
}

func TestTaskPatch_ApplyTo(t *testing.T) {
	// Setup
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{
		ID:          "t1",
		Title:       "Title",
		Description: "Description",
		Status:      StatusTodo,
		Priority:    PriorityLow,
		DueDate:     &due,
	}

	// Execute
	status := StatusInProgress
	TaskPatch{Status: &status, ClearDueDate: true}.ApplyTo(task)

	// Assert
	assert.Equal(t, StatusInProgress, task.Status)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, "Title", task.Title)
	assert.Equal(t, "Description", task.Description)
}

func TestTask_Clone_DeepCopies(t *testing.T) {
	// Setup
	parentID := "t0"
	task := &Task{
		ID:       "t1",
		ParentID: &parentID,
		Title:    "Original",
		Comments: []Comment{{ID: "c1", Text: "hi"}},
		Files:    []Attachment{{ID: "f1", Name: "a.txt"}},
	}

	// Execute
	clone := task.Clone()
	clone.Comments[0].Text = "mutated"
	*clone.ParentID = "elsewhere"

	// Assert
	assert.Equal(t, "hi", task.Comments[0].Text)
	assert.Equal(t, "t0", *task.ParentID)
}

func TestTask_IsRoot(t *testing.T) {
	parentID := "t1"
	assert.True(t, (&Task{ID: "t1"}).IsRoot())
	assert.False(t, (&Task{ID: "t2", ParentID: &parentID}).IsRoot())
}
