package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhiguchi/boardsync/internal/domain"
)

func TestClient_Authenticate(t *testing.T) {
	// Setup
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req["email"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":  domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com"},
			"token": "tok-123",
		})
	}))
	defer srv.Close()
	client := New(srv.URL, 5*time.Second)

	// Execute
	user, token, err := client.Authenticate(context.Background(), "alice@example.com", "secret")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "tok-123", token)
}

func TestClient_UpdateTask_SendsBearerTokenAndPatch(t *testing.T) {
	// Setup
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/tasks/t1", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "done", patch["status"])
		assert.NotContains(t, patch, "title") // Untouched fields stay absent

		_ = json.NewEncoder(w).Encode(domain.Task{ID: "t1", ProjectID: "p1", Title: "Task", Status: domain.StatusDone})
	}))
	defer srv.Close()
	client := New(srv.URL, 5*time.Second)
	client.SetToken("tok-123")

	// Execute
	status := domain.StatusDone
	task, err := client.UpdateTask(context.Background(), "t1", domain.TaskPatch{Status: &status})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, task.Status)
}

func TestClient_ErrorEnvelopeSurfaced(t *testing.T) {
	// Setup
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "viewers cannot edit"})
	}))
	defer srv.Close()
	client := New(srv.URL, 5*time.Second)

	// Execute
	err := client.DeleteTask(context.Background(), "t1")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "viewers cannot edit")
	assert.Contains(t, err.Error(), "403")
}

func TestClient_UploadAttachment_Multipart(t *testing.T) {
	// Setup
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks/t1/files", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "notes.txt", header.Filename)

		_ = json.NewEncoder(w).Encode(domain.Attachment{ID: "f1", Name: "notes.txt", Size: 5})
	}))
	defer srv.Close()
	client := New(srv.URL, 5*time.Second)

	// Execute
	attachment, err := client.UploadAttachment(context.Background(), "t1", "notes.txt", strings.NewReader("hello"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "f1", attachment.ID)
}

func TestClient_ListNotifications(t *testing.T) {
	// Setup
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notifications", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]domain.Notification{
			{ID: "n1", Message: "hello", Kind: domain.NotifyInfo},
		})
	}))
	defer srv.Close()
	client := New(srv.URL, 5*time.Second)

	// Execute
	ns, err := client.ListNotifications(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, "n1", ns[0].ID)
}
