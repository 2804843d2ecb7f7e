package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
	syncpkg "github.com/mhiguchi/boardsync/internal/sync"
	"github.com/mhiguchi/boardsync/internal/testutil"
)

func TestWatchProject_Execute_AppliesEventsUntilCanceled(t *testing.T) {
	// Setup
	s := store.New()
	s.PutTask(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task", Status: domain.StatusTodo})
	channel := &testutil.MockPushChannel{
		Events: []domain.Event{
			{Type: domain.EventTaskUpdated, Payload: json.RawMessage(`{"taskId":"t1","status":"done"}`)},
		},
	}
	reconciler := syncpkg.NewReconciler(s, &testutil.MockLogger{}, nil)
	uc := NewWatchProject(channel, reconciler, &testutil.MockLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Execute
	_, err := uc.Execute(ctx, WatchProjectInput{ProjectID: "p1"})

	// Assert: cancellation is a clean shutdown, not a failure
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, s.Task("t1").Status)
}

func TestWatchProject_Execute_ChannelFailureReturned(t *testing.T) {
	// Setup
	s := store.New()
	channel := &testutil.MockPushChannel{ConnectErr: errors.New("connection refused")}
	reconciler := syncpkg.NewReconciler(s, &testutil.MockLogger{}, nil)
	uc := NewWatchProject(channel, reconciler, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), WatchProjectInput{ProjectID: "p1"})

	// Assert
	require.Error(t, err)
	assert.Equal(t, 1, channel.ConnectCalls)
}
