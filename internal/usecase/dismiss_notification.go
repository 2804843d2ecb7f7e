package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// DismissNotificationInput contains the parameters for dismissing a
// notification.
type DismissNotificationInput struct {
	NotificationID string // Notification to dismiss (required)
}

// DismissNotificationOutput contains the result of dismissing a notification.
type DismissNotificationOutput struct{}

// DismissNotification is the use case for removing a notification from the
// visible list. Dismissal only issues a remote delete when the notification
// is durable (has a server-assigned ID).
type DismissNotification struct {
	store  *store.Store
	api    domain.NotificationAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewDismissNotification creates a new DismissNotification use case.
func NewDismissNotification(s *store.Store, api domain.NotificationAPI, clock domain.Clock, logger domain.Logger) *DismissNotification {
	return &DismissNotification{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute dismisses a notification with the given input.
func (uc *DismissNotification) Execute(ctx context.Context, in DismissNotificationInput) (*DismissNotificationOutput, error) {
	// Find the entry first: ephemeral local notifications (empty ID) never
	// reach the server.
	var target *domain.Notification
	for _, n := range uc.store.Notifications() {
		if n.ID == in.NotificationID {
			target = &n
			break
		}
	}
	if target == nil {
		return nil, domain.ErrNotificationNotFound
	}

	if err := uc.store.DismissNotification(in.NotificationID); err != nil {
		return nil, err
	}
	if !target.IsDurable() {
		return &DismissNotificationOutput{}, nil
	}

	if err := uc.api.DeleteNotification(ctx, in.NotificationID); err != nil {
		uc.store.PrependNotification(*target)
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to dismiss notification: %v", err))
		return nil, fmt.Errorf("delete notification: %w", err)
	}
	return &DismissNotificationOutput{}, nil
}
