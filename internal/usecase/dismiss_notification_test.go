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

func TestDismissNotification_Execute_DurableIssuesRemoteDelete(t *testing.T) {
	// Setup
	s := store.New()
	s.SetNotifications([]domain.Notification{{ID: "n1", Message: "hello", Kind: domain.NotifyInfo}})
	api := &testutil.MockAPI{}
	uc := NewDismissNotification(s, api, &testutil.MockClock{}, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), DismissNotificationInput{NotificationID: "n1"})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, s.Notifications())
}

func TestDismissNotification_Execute_EphemeralSkipsRemote(t *testing.T) {
	// Setup: an ID-less local error notification must never reach the server
	s := store.New()
	s.PrependNotification(domain.Notification{Message: "local failure", Kind: domain.NotifyError})
	api := &testutil.MockAPI{DeleteNotifErr: errors.New("would fail if called")}
	uc := NewDismissNotification(s, api, &testutil.MockClock{}, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), DismissNotificationInput{NotificationID: ""})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, s.Notifications())
}

func TestDismissNotification_Execute_RestoredOnRemoteFailure(t *testing.T) {
	// Setup
	s := store.New()
	s.SetNotifications([]domain.Notification{{ID: "n1", Message: "hello", Kind: domain.NotifyInfo}})
	api := &testutil.MockAPI{DeleteNotifErr: errors.New("boom")}
	uc := NewDismissNotification(s, api, &testutil.MockClock{NowTime: time.Now()}, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), DismissNotificationInput{NotificationID: "n1"})

	// Assert
	require.Error(t, err)
	var found bool
	for _, n := range s.Notifications() {
		if n.ID == "n1" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDismissNotification_Execute_Unknown(t *testing.T) {
	// Setup
	s := store.New()
	uc := NewDismissNotification(s, &testutil.MockAPI{}, &testutil.MockClock{}, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), DismissNotificationInput{NotificationID: "ghost"})

	// Assert
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}
