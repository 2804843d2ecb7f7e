package domain

import (
	"context"
	"io"
	"time"
)

// AuthAPI handles authentication against the remote tracker.
type AuthAPI interface {
	// Authenticate exchanges credentials for a user profile and session token.
	Authenticate(ctx context.Context, email, password string) (*User, string, error)

	// Register creates a new account.
	Register(ctx context.Context, name, email, password string) error
}

// ProjectAPI manages projects and their membership.
type ProjectAPI interface {
	// ListProjects retrieves projects visible to the user.
	ListProjects(ctx context.Context, userID string) ([]*Project, error)

	// CreateProject creates a project and returns the canonical entity.
	CreateProject(ctx context.Context, name, description string) (*Project, error)

	// UpdateProject applies a patch and returns the canonical entity.
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*Project, error)

	// DeleteProject removes a project.
	DeleteProject(ctx context.Context, id string) error

	// ListMembers retrieves the member list of a project.
	ListMembers(ctx context.Context, projectID string) ([]Member, error)

	// AddMember adds a user to a project.
	AddMember(ctx context.Context, projectID, userID string, role Role) error

	// RemoveMember removes a user from a project.
	RemoveMember(ctx context.Context, projectID, userID string) error

	// UpdateMemberRole changes a member's role.
	UpdateMemberRole(ctx context.Context, projectID, userID string, role Role) error
}

// TaskAPI manages tasks, comments and attachments.
type TaskAPI interface {
	// ListTasks retrieves all tasks of a project.
	ListTasks(ctx context.Context, projectID string) ([]*Task, error)

	// CreateTask creates a task and returns the canonical entity
	// (server-assigned ID and timestamps).
	CreateTask(ctx context.Context, task *Task) (*Task, error)

	// UpdateTask applies a patch and returns the canonical entity.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error)

	// DeleteTask removes a task. The server cascades to subtasks.
	DeleteTask(ctx context.Context, id string) error

	// CreateComment adds a comment and returns the canonical entity.
	CreateComment(ctx context.Context, taskID, text string) (*Comment, error)

	// DeleteComment removes a comment.
	DeleteComment(ctx context.Context, taskID, commentID string) error

	// UploadAttachment stores a file blob externally and returns its metadata.
	UploadAttachment(ctx context.Context, taskID, name string, content io.Reader) (*Attachment, error)

	// DeleteAttachment removes an attachment.
	DeleteAttachment(ctx context.Context, taskID, fileID string) error
}

// ActivityAPI retrieves activity logs.
type ActivityAPI interface {
	// ListProjectActivities retrieves activity entries for a project, newest first.
	ListProjectActivities(ctx context.Context, projectID string) ([]ActivityLog, error)

	// ListTaskActivities retrieves activity entries for a task, newest first.
	ListTaskActivities(ctx context.Context, taskID string) ([]ActivityLog, error)
}

// NotificationAPI manages server-side notifications.
type NotificationAPI interface {
	// ListNotifications retrieves the user's notifications, newest first.
	ListNotifications(ctx context.Context) ([]Notification, error)

	// MarkNotificationRead flips the read flag on one notification.
	MarkNotificationRead(ctx context.Context, id string) error

	// MarkAllNotificationsRead flips the read flag on all notifications.
	MarkAllNotificationsRead(ctx context.Context) error

	// DeleteNotification removes a durable notification server-side.
	DeleteNotification(ctx context.Context, id string) error
}

// API is the full remote tracker surface.
type API interface {
	AuthAPI
	ProjectAPI
	TaskAPI
	ActivityAPI
	NotificationAPI
}

// PresenceInfo is announced when connecting to the push channel.
type PresenceInfo struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// PushChannel delivers server events for one project. Delivery is
// at-least-once and in order; duplicates are the consumer's problem.
type PushChannel interface {
	// Connect starts delivering events to onEvent until the context is
	// canceled or Disconnect is called. Blocks while connected.
	Connect(ctx context.Context, projectID string, presence PresenceInfo, onEvent func(Event)) error

	// Disconnect stops event delivery.
	Disconnect() error
}

// Session is the persisted authentication state.
type Session struct {
	User  User   `yaml:"user"`
	Token string `yaml:"token"`
}

// SessionStore persists the session between invocations.
type SessionStore interface {
	// Load returns the stored session, or ErrNotAuthenticated if none exists.
	Load() (*Session, error)

	// Save writes the session.
	Save(session *Session) error

	// Clear removes the stored session.
	Clear() error
}

// Logger writes categorized log entries, optionally scoped to a project.
type Logger interface {
	Debug(projectID, category, msg string)
	Info(projectID, category, msg string)
	Warn(projectID, category, msg string)
	Error(projectID, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
