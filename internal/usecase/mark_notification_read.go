package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// MarkNotificationReadInput contains the parameters for marking
// notifications read.
type MarkNotificationReadInput struct {
	NotificationID string // Notification to mark; ignored when All is set
	All            bool   // Mark every notification read
}

// MarkNotificationReadOutput contains the result of marking notifications read.
type MarkNotificationReadOutput struct{}

// MarkNotificationRead is the use case for flipping the read flag. The flag
// flips optimistically; a failed remote call flips it back.
type MarkNotificationRead struct {
	store  *store.Store
	api    domain.NotificationAPI
	clock  domain.Clock
	logger domain.Logger
}

// NewMarkNotificationRead creates a new MarkNotificationRead use case.
func NewMarkNotificationRead(s *store.Store, api domain.NotificationAPI, clock domain.Clock, logger domain.Logger) *MarkNotificationRead {
	return &MarkNotificationRead{
		store:  s,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Execute marks notifications read with the given input.
func (uc *MarkNotificationRead) Execute(ctx context.Context, in MarkNotificationReadInput) (*MarkNotificationReadOutput, error) {
	if in.All {
		prev := uc.store.Notifications()
		uc.store.MarkAllNotificationsRead()
		if err := uc.api.MarkAllNotificationsRead(ctx); err != nil {
			uc.store.SetNotifications(prev)
			notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to mark notifications read: %v", err))
			return nil, fmt.Errorf("mark all read: %w", err)
		}
		return &MarkNotificationReadOutput{}, nil
	}

	if err := uc.store.MarkNotificationRead(in.NotificationID); err != nil {
		return nil, err
	}
	if err := uc.api.MarkNotificationRead(ctx, in.NotificationID); err != nil {
		// Re-sync would be heavyweight for one flag; flip it back in place
		prev := uc.store.Notifications()
		for i := range prev {
			if prev[i].ID == in.NotificationID {
				prev[i].Read = false
			}
		}
		uc.store.SetNotifications(prev)
		notifyError(uc.store, uc.clock, fmt.Sprintf("Failed to mark notification read: %v", err))
		return nil, fmt.Errorf("mark read: %w", err)
	}
	return &MarkNotificationReadOutput{}, nil
}
