package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// SyncNotificationsInput contains the parameters for refreshing notifications.
type SyncNotificationsInput struct{}

// SyncNotificationsOutput contains the result of refreshing notifications.
type SyncNotificationsOutput struct {
	Notifications []domain.Notification
}

// SyncNotifications is the use case for replacing the local notification
// list with the server's, newest first.
type SyncNotifications struct {
	store *store.Store
	api   domain.NotificationAPI
}

// NewSyncNotifications creates a new SyncNotifications use case.
func NewSyncNotifications(s *store.Store, api domain.NotificationAPI) *SyncNotifications {
	return &SyncNotifications{store: s, api: api}
}

// Execute refreshes the notification list.
func (uc *SyncNotifications) Execute(ctx context.Context, _ SyncNotificationsInput) (*SyncNotificationsOutput, error) {
	ns, err := uc.api.ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	uc.store.SetNotifications(ns)
	return &SyncNotificationsOutput{Notifications: uc.store.Notifications()}, nil
}
