// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mhiguchi/boardsync/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []string
}

func (m *MockLogger) record(level, projectID, category, msg string) {
	m.Entries = append(m.Entries, fmt.Sprintf("[%s] [%s] [%s] %s", level, projectID, category, msg))
}

// Debug records a debug entry.
func (m *MockLogger) Debug(projectID, category, msg string) {
	m.record("DEBUG", projectID, category, msg)
}

// Info records an info entry.
func (m *MockLogger) Info(projectID, category, msg string) {
	m.record("INFO", projectID, category, msg)
}

// Warn records a warn entry.
func (m *MockLogger) Warn(projectID, category, msg string) {
	m.record("WARN", projectID, category, msg)
}

// Error records an error entry.
func (m *MockLogger) Error(projectID, category, msg string) {
	m.record("ERROR", projectID, category, msg)
}

// MockSessionStore is a test double for domain.SessionStore.
type MockSessionStore struct {
	Session *domain.Session
	SaveErr error
}

// Load returns the stored session.
func (m *MockSessionStore) Load() (*domain.Session, error) {
	if m.Session == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return m.Session, nil
}

// Save stores the session.
func (m *MockSessionStore) Save(sess *domain.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Session = sess
	return nil
}

// Clear removes the stored session.
func (m *MockSessionStore) Clear() error {
	m.Session = nil
	return nil
}

// MockPushChannel is a test double for domain.PushChannel. Connect delivers
// the queued events, then blocks until the context is canceled.
type MockPushChannel struct {
	Events       []domain.Event
	ConnectErr   error
	ConnectCalls int
}

// Connect delivers the queued events in order.
func (m *MockPushChannel) Connect(ctx context.Context, _ string, _ domain.PresenceInfo, onEvent func(domain.Event)) error {
	m.ConnectCalls++
	if m.ConnectErr != nil {
		return m.ConnectErr
	}
	for _, ev := range m.Events {
		onEvent(ev)
	}
	<-ctx.Done()
	return ctx.Err()
}

// Disconnect is a no-op.
func (m *MockPushChannel) Disconnect() error {
	return nil
}

// MockAPI is a test double for domain.API. Each method returns the
// corresponding configured value or error and counts its calls.
// Fields are ordered to minimize memory padding.
type MockAPI struct {
	// Canned responses
	User          *domain.User
	Token         string
	Projects      []*domain.Project
	Members       []domain.Member
	Tasks         []*domain.Task
	CreatedTask   *domain.Task
	UpdatedTask   *domain.Task
	UpdatedProj   *domain.Project
	CreatedProj   *domain.Project
	Comment       *domain.Comment
	Attachment    *domain.Attachment
	Activities    []domain.ActivityLog
	Notifications []domain.Notification

	// Error injection per method
	AuthenticateErr     error
	RegisterErr         error
	ListProjectsErr     error
	CreateProjectErr    error
	UpdateProjectErr    error
	DeleteProjectErr    error
	ListMembersErr      error
	AddMemberErr        error
	RemoveMemberErr     error
	UpdateRoleErr       error
	ListTasksErr        error
	CreateTaskErr       error
	UpdateTaskErr       error
	DeleteTaskErr       error
	CreateCommentErr    error
	DeleteCommentErr    error
	UploadAttachmentErr error
	DeleteAttachmentErr error
	ListActivitiesErr   error
	NotificationsErr    error
	MarkReadErr         error
	MarkAllReadErr      error
	DeleteNotifErr      error

	// Call counters
	UpdateTaskCalls    int
	CreateTaskCalls    int
	DeleteTaskCalls    int
	UpdateProjectCalls int
}

// Ensure MockAPI implements the full API surface.
var _ domain.API = (*MockAPI)(nil)

// Authenticate returns the configured user and token.
func (m *MockAPI) Authenticate(_ context.Context, _, _ string) (*domain.User, string, error) {
	if m.AuthenticateErr != nil {
		return nil, "", m.AuthenticateErr
	}
	return m.User, m.Token, nil
}

// Register returns the configured error.
func (m *MockAPI) Register(_ context.Context, _, _, _ string) error {
	return m.RegisterErr
}

// ListProjects returns the configured projects.
func (m *MockAPI) ListProjects(_ context.Context, _ string) ([]*domain.Project, error) {
	if m.ListProjectsErr != nil {
		return nil, m.ListProjectsErr
	}
	return m.Projects, nil
}

// CreateProject returns the configured project.
func (m *MockAPI) CreateProject(_ context.Context, _, _ string) (*domain.Project, error) {
	if m.CreateProjectErr != nil {
		return nil, m.CreateProjectErr
	}
	return m.CreatedProj, nil
}

// UpdateProject returns the configured project.
func (m *MockAPI) UpdateProject(_ context.Context, _ string, _ domain.ProjectPatch) (*domain.Project, error) {
	m.UpdateProjectCalls++
	if m.UpdateProjectErr != nil {
		return nil, m.UpdateProjectErr
	}
	return m.UpdatedProj, nil
}

// DeleteProject returns the configured error.
func (m *MockAPI) DeleteProject(_ context.Context, _ string) error {
	return m.DeleteProjectErr
}

// ListMembers returns the configured members.
func (m *MockAPI) ListMembers(_ context.Context, _ string) ([]domain.Member, error) {
	if m.ListMembersErr != nil {
		return nil, m.ListMembersErr
	}
	return m.Members, nil
}

// AddMember returns the configured error.
func (m *MockAPI) AddMember(_ context.Context, _, _ string, _ domain.Role) error {
	return m.AddMemberErr
}

// RemoveMember returns the configured error.
func (m *MockAPI) RemoveMember(_ context.Context, _, _ string) error {
	return m.RemoveMemberErr
}

// UpdateMemberRole returns the configured error.
func (m *MockAPI) UpdateMemberRole(_ context.Context, _, _ string, _ domain.Role) error {
	return m.UpdateRoleErr
}

// ListTasks returns the configured tasks.
func (m *MockAPI) ListTasks(_ context.Context, _ string) ([]*domain.Task, error) {
	if m.ListTasksErr != nil {
		return nil, m.ListTasksErr
	}
	return m.Tasks, nil
}

// CreateTask returns the configured task.
func (m *MockAPI) CreateTask(_ context.Context, _ *domain.Task) (*domain.Task, error) {
	m.CreateTaskCalls++
	if m.CreateTaskErr != nil {
		return nil, m.CreateTaskErr
	}
	return m.CreatedTask, nil
}

// UpdateTask returns the configured task.
func (m *MockAPI) UpdateTask(_ context.Context, _ string, _ domain.TaskPatch) (*domain.Task, error) {
	m.UpdateTaskCalls++
	if m.UpdateTaskErr != nil {
		return nil, m.UpdateTaskErr
	}
	return m.UpdatedTask, nil
}

// DeleteTask returns the configured error.
func (m *MockAPI) DeleteTask(_ context.Context, _ string) error {
	m.DeleteTaskCalls++
	return m.DeleteTaskErr
}

// CreateComment returns the configured comment.
func (m *MockAPI) CreateComment(_ context.Context, _, _ string) (*domain.Comment, error) {
	if m.CreateCommentErr != nil {
		return nil, m.CreateCommentErr
	}
	return m.Comment, nil
}

// DeleteComment returns the configured error.
func (m *MockAPI) DeleteComment(_ context.Context, _, _ string) error {
	return m.DeleteCommentErr
}

// UploadAttachment returns the configured attachment.
func (m *MockAPI) UploadAttachment(_ context.Context, _, _ string, _ io.Reader) (*domain.Attachment, error) {
	if m.UploadAttachmentErr != nil {
		return nil, m.UploadAttachmentErr
	}
	return m.Attachment, nil
}

// DeleteAttachment returns the configured error.
func (m *MockAPI) DeleteAttachment(_ context.Context, _, _ string) error {
	return m.DeleteAttachmentErr
}

// ListProjectActivities returns the configured activities.
func (m *MockAPI) ListProjectActivities(_ context.Context, _ string) ([]domain.ActivityLog, error) {
	if m.ListActivitiesErr != nil {
		return nil, m.ListActivitiesErr
	}
	return m.Activities, nil
}

// ListTaskActivities returns the configured activities.
func (m *MockAPI) ListTaskActivities(_ context.Context, _ string) ([]domain.ActivityLog, error) {
	if m.ListActivitiesErr != nil {
		return nil, m.ListActivitiesErr
	}
	return m.Activities, nil
}

// ListNotifications returns the configured notifications.
func (m *MockAPI) ListNotifications(_ context.Context) ([]domain.Notification, error) {
	if m.NotificationsErr != nil {
		return nil, m.NotificationsErr
	}
	return m.Notifications, nil
}

// MarkNotificationRead returns the configured error.
func (m *MockAPI) MarkNotificationRead(_ context.Context, _ string) error {
	return m.MarkReadErr
}

// MarkAllNotificationsRead returns the configured error.
func (m *MockAPI) MarkAllNotificationsRead(_ context.Context) error {
	return m.MarkAllReadErr
}

// DeleteNotification returns the configured error.
func (m *MockAPI) DeleteNotification(_ context.Context, _ string) error {
	return m.DeleteNotifErr
}
