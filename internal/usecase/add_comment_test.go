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

func TestAddComment_Execute_SwapsLocalForCanonical(t *testing.T) {
	// Setup
	s := store.New()
	s.PutTask(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task"})
	api := &testutil.MockAPI{
		Comment: &domain.Comment{ID: "c-srv", AuthorID: "u1", Text: "Looks good"},
	}
	uc := NewAddComment(s, api, &testutil.MockClock{NowTime: time.Now()}, &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), AddCommentInput{
		TaskID:   "t1",
		AuthorID: "u1",
		Text:     "Looks good",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "c-srv", out.Comment.ID)
	comments := s.Task("t1").Comments
	require.Len(t, comments, 1)
	assert.Equal(t, "c-srv", comments[0].ID)
}

func TestAddComment_Execute_RollbackOnFailure(t *testing.T) {
	// Setup
	s := store.New()
	s.PutTask(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task"})
	api := &testutil.MockAPI{CreateCommentErr: errors.New("boom")}
	uc := NewAddComment(s, api, &testutil.MockClock{NowTime: time.Now()}, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), AddCommentInput{
		TaskID:   "t1",
		AuthorID: "u1",
		Text:     "Doomed",
	})

	// Assert
	require.Error(t, err)
	assert.Empty(t, s.Task("t1").Comments)
	require.Len(t, s.Notifications(), 1)
	assert.Equal(t, domain.NotifyError, s.Notifications()[0].Kind)
}

func TestAddComment_Execute_EmptyText(t *testing.T) {
	// Setup
	s := store.New()
	s.PutTask(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task"})
	uc := NewAddComment(s, &testutil.MockAPI{}, &testutil.MockClock{}, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), AddCommentInput{TaskID: "t1"})

	// Assert
	assert.ErrorIs(t, err, domain.ErrEmptyComment)
}
