package usecase

import (
	"context"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	syncpkg "github.com/mhiguchi/boardsync/internal/sync"
)

// WatchProjectInput contains the parameters for watching a project.
type WatchProjectInput struct {
	ProjectID string              // Project to watch (required)
	Presence  domain.PresenceInfo // Announced to other members
}

// WatchProjectOutput contains the result of watching a project.
type WatchProjectOutput struct{}

// WatchProject is the use case for streaming push events into the store.
// It blocks until the context is canceled. Channel failures are logged and
// returned; the store keeps serving last-known state either way.
type WatchProject struct {
	channel    domain.PushChannel
	reconciler *syncpkg.Reconciler
	logger     domain.Logger
}

// NewWatchProject creates a new WatchProject use case.
func NewWatchProject(channel domain.PushChannel, reconciler *syncpkg.Reconciler, logger domain.Logger) *WatchProject {
	return &WatchProject{
		channel:    channel,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Execute watches the project until ctx is canceled.
func (uc *WatchProject) Execute(ctx context.Context, in WatchProjectInput) (*WatchProjectOutput, error) {
	err := uc.channel.Connect(ctx, in.ProjectID, in.Presence, uc.reconciler.Apply)
	if err != nil && ctx.Err() == nil {
		uc.logger.Warn(in.ProjectID, "push", fmt.Sprintf("channel closed: %v", err))
		return nil, fmt.Errorf("push channel: %w", err)
	}
	return &WatchProjectOutput{}, nil
}
