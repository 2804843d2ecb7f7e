// Package app provides the dependency injection container for the application.
package app

import (
	"time"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/infra/api"
	"github.com/mhiguchi/boardsync/internal/infra/config"
	"github.com/mhiguchi/boardsync/internal/infra/logging"
	"github.com/mhiguchi/boardsync/internal/infra/push"
	"github.com/mhiguchi/boardsync/internal/infra/session"
	"github.com/mhiguchi/boardsync/internal/store"
	syncpkg "github.com/mhiguchi/boardsync/internal/sync"
	"github.com/mhiguchi/boardsync/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	API      domain.API
	Channel  domain.PushChannel
	Sessions domain.SessionStore
	Clock    domain.Clock
	Logger   domain.Logger

	// Shared state
	Store      *store.Store
	Reconciler *syncpkg.Reconciler
	Config     *config.Config

	// Current session, nil until Login or a successful session load
	Session *domain.Session
}

// New creates a new Container from the config directory.
func New() (*Container, error) {
	loader := config.NewLoader()
	return NewWithConfigDir(loader.Dir())
}

// NewWithConfigDir creates a new Container reading config from confDir.
func NewWithConfigDir(confDir string) (*Container, error) {
	loader := config.NewLoaderWithDir(confDir)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(confDir, logging.ParseLevel(cfg.Log.Level))
	client := api.New(cfg.Server.URL, time.Duration(cfg.Server.Timeout)*time.Second)
	channel := push.New(cfg.Server.URL, logger)
	sessions := session.New(confDir)

	s := store.New()
	c := &Container{
		API:        client,
		Channel:    channel,
		Sessions:   sessions,
		Clock:      domain.RealClock{},
		Logger:     logger,
		Store:      s,
		Reconciler: syncpkg.NewReconciler(s, logger, cfg.ExtraKinds()),
		Config:     cfg,
	}

	// Restore a saved session if one exists; commands that need auth check
	// Session themselves.
	if sess, err := sessions.Load(); err == nil {
		c.Session = sess
		client.SetToken(sess.Token)
		channel.SetToken(sess.Token)
		s.PutUser(&sess.User)
	}

	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(s *store.Store, remote domain.API, channel domain.PushChannel, sessions domain.SessionStore, clock domain.Clock, logger domain.Logger, cfg *config.Config) *Container {
	return &Container{
		API:        remote,
		Channel:    channel,
		Sessions:   sessions,
		Clock:      clock,
		Logger:     logger,
		Store:      s,
		Reconciler: syncpkg.NewReconciler(s, logger, cfg.ExtraKinds()),
		Config:     cfg,
	}
}

// RequireSession returns the current session or ErrNotAuthenticated.
func (c *Container) RequireSession() (*domain.Session, error) {
	if c.Session == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return c.Session, nil
}

// UseCase factory methods

// LoginUseCase returns a new Login use case.
func (c *Container) LoginUseCase() *usecase.Login {
	return usecase.NewLogin(c.Store, c.API, c.Sessions, c.Logger)
}

// RegisterUseCase returns a new Register use case.
func (c *Container) RegisterUseCase() *usecase.Register {
	return usecase.NewRegister(c.API)
}

// ListProjectsUseCase returns a new ListProjects use case.
func (c *Container) ListProjectsUseCase() *usecase.ListProjects {
	return usecase.NewListProjects(c.Store, c.API)
}

// OpenProjectUseCase returns a new OpenProject use case.
func (c *Container) OpenProjectUseCase() *usecase.OpenProject {
	return usecase.NewOpenProject(c.Store, c.API, c.Logger)
}

// CreateProjectUseCase returns a new CreateProject use case.
func (c *Container) CreateProjectUseCase() *usecase.CreateProject {
	return usecase.NewCreateProject(c.Store, c.API, c.Clock, c.Logger)
}

// UpdateProjectUseCase returns a new UpdateProject use case.
func (c *Container) UpdateProjectUseCase() *usecase.UpdateProject {
	return usecase.NewUpdateProject(c.Store, c.API, c.Clock, c.Logger)
}

// DeleteProjectUseCase returns a new DeleteProject use case.
func (c *Container) DeleteProjectUseCase() *usecase.DeleteProject {
	return usecase.NewDeleteProject(c.Store, c.API, c.Clock, c.Logger)
}

// AddMemberUseCase returns a new AddMember use case.
func (c *Container) AddMemberUseCase() *usecase.AddMember {
	return usecase.NewAddMember(c.Store, c.API, c.Clock, c.Logger)
}

// RemoveMemberUseCase returns a new RemoveMember use case.
func (c *Container) RemoveMemberUseCase() *usecase.RemoveMember {
	return usecase.NewRemoveMember(c.Store, c.API, c.Clock, c.Logger)
}

// SetMemberRoleUseCase returns a new SetMemberRole use case.
func (c *Container) SetMemberRoleUseCase() *usecase.SetMemberRole {
	return usecase.NewSetMemberRole(c.Store, c.API, c.Clock, c.Logger)
}

// CreateTaskUseCase returns a new CreateTask use case.
func (c *Container) CreateTaskUseCase() *usecase.CreateTask {
	return usecase.NewCreateTask(c.Store, c.API, c.Clock, c.Logger)
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase() *usecase.UpdateTask {
	return usecase.NewUpdateTask(c.Store, c.API, c.Clock, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store, c.API, c.Clock, c.Logger)
}

// AddCommentUseCase returns a new AddComment use case.
func (c *Container) AddCommentUseCase() *usecase.AddComment {
	return usecase.NewAddComment(c.Store, c.API, c.Clock, c.Logger)
}

// DeleteCommentUseCase returns a new DeleteComment use case.
func (c *Container) DeleteCommentUseCase() *usecase.DeleteComment {
	return usecase.NewDeleteComment(c.Store, c.API, c.Clock, c.Logger)
}

// AddAttachmentUseCase returns a new AddAttachment use case.
func (c *Container) AddAttachmentUseCase() *usecase.AddAttachment {
	return usecase.NewAddAttachment(c.Store, c.API, c.Clock, c.Logger)
}

// RemoveAttachmentUseCase returns a new RemoveAttachment use case.
func (c *Container) RemoveAttachmentUseCase() *usecase.RemoveAttachment {
	return usecase.NewRemoveAttachment(c.Store, c.API, c.Clock, c.Logger)
}

// SyncNotificationsUseCase returns a new SyncNotifications use case.
func (c *Container) SyncNotificationsUseCase() *usecase.SyncNotifications {
	return usecase.NewSyncNotifications(c.Store, c.API)
}

// MarkNotificationReadUseCase returns a new MarkNotificationRead use case.
func (c *Container) MarkNotificationReadUseCase() *usecase.MarkNotificationRead {
	return usecase.NewMarkNotificationRead(c.Store, c.API, c.Clock, c.Logger)
}

// DismissNotificationUseCase returns a new DismissNotification use case.
func (c *Container) DismissNotificationUseCase() *usecase.DismissNotification {
	return usecase.NewDismissNotification(c.Store, c.API, c.Clock, c.Logger)
}

// WatchProjectUseCase returns a new WatchProject use case.
func (c *Container) WatchProjectUseCase() *usecase.WatchProject {
	return usecase.NewWatchProject(c.Channel, c.Reconciler, c.Logger)
}
