// Package api implements the remote tracker API over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/mhiguchi/boardsync/internal/domain"
)

// Ensure Client implements the full API surface.
var _ domain.API = (*Client)(nil)

// Client talks to the tracker server over HTTP/JSON.
// Fields are ordered to minimize memory padding.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// New creates a new Client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SetToken sets the session token sent with every request.
func (c *Client) SetToken(token string) {
	c.token = token
}

// apiError is the server's error envelope.
type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		content, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(content)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp, method, path)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response, method, path string) error {
	var envelope apiError
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		return fmt.Errorf("%s %s: %s (status %d)", method, path, envelope.Error, resp.StatusCode)
	}
	return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
}

// === Auth ===

// Authenticate exchanges credentials for a user profile and session token.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*domain.User, string, error) {
	req := map[string]string{"email": email, "password": password}
	var resp struct {
		User  domain.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	req := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", req, nil)
}

// === Projects ===

// ListProjects retrieves projects visible to the user.
func (c *Client) ListProjects(ctx context.Context, userID string) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects?userId="+userID, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project and returns the canonical entity.
func (c *Client) CreateProject(ctx context.Context, name, description string) (*domain.Project, error) {
	req := map[string]string{"name": name, "description": description}
	var project domain.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies a patch and returns the canonical entity.
func (c *Client) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	var project domain.Project
	if err := c.do(ctx, http.MethodPatch, "/api/projects/"+id, patch, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil)
}

// ListMembers retrieves the member list of a project.
func (c *Client) ListMembers(ctx context.Context, projectID string) ([]domain.Member, error) {
	var members []domain.Member
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember adds a user to a project.
func (c *Client) AddMember(ctx context.Context, projectID, userID string, role domain.Role) error {
	req := map[string]string{"userId": userID, "role": string(role)}
	return c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/members", req, nil)
}

// RemoveMember removes a user from a project.
func (c *Client) RemoveMember(ctx context.Context, projectID, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+projectID+"/members/"+userID, nil, nil)
}

// UpdateMemberRole changes a member's role.
func (c *Client) UpdateMemberRole(ctx context.Context, projectID, userID string, role domain.Role) error {
	req := map[string]string{"role": string(role)}
	return c.do(ctx, http.MethodPatch, "/api/projects/"+projectID+"/members/"+userID, req, nil)
}

// === Tasks ===

// ListTasks retrieves all tasks of a project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns the canonical entity.
func (c *Client) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	var created domain.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask applies a patch and returns the canonical entity.
func (c *Client) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+id, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task. The server cascades to subtasks.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// CreateComment adds a comment and returns the canonical entity.
func (c *Client) CreateComment(ctx context.Context, taskID, text string) (*domain.Comment, error) {
	req := map[string]string{"text": text}
	var comment domain.Comment
	if err := c.do(ctx, http.MethodPost, "/api/tasks/"+taskID+"/comments", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, taskID, commentID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+taskID+"/comments/"+commentID, nil, nil)
}

// UploadAttachment stores a file blob externally and returns its metadata.
func (c *Client) UploadAttachment(ctx context.Context, taskID, name string, content io.Reader) (*domain.Attachment, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	path := "/api/tasks/" + taskID + "/files"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, c.decodeError(resp, http.MethodPost, path)
	}
	var attachment domain.Attachment
	if err := json.NewDecoder(resp.Body).Decode(&attachment); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &attachment, nil
}

// DeleteAttachment removes an attachment.
func (c *Client) DeleteAttachment(ctx context.Context, taskID, fileID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+taskID+"/files/"+fileID, nil, nil)
}

// === Activities ===

// ListProjectActivities retrieves activity entries for a project, newest first.
func (c *Client) ListProjectActivities(ctx context.Context, projectID string) ([]domain.ActivityLog, error) {
	var logs []domain.ActivityLog
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/activities", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListTaskActivities retrieves activity entries for a task, newest first.
func (c *Client) ListTaskActivities(ctx context.Context, taskID string) ([]domain.ActivityLog, error) {
	var logs []domain.ActivityLog
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+taskID+"/activities", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// === Notifications ===

// ListNotifications retrieves the user's notifications, newest first.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var ns []domain.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// MarkNotificationRead flips the read flag on one notification.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/api/notifications/"+id+"/read", nil, nil)
}

// MarkAllNotificationsRead flips the read flag on all notifications.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/read-all", nil, nil)
}

// DeleteNotification removes a durable notification server-side.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notifications/"+id, nil, nil)
}
