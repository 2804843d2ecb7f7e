package push

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/testutil"
)

func TestChannel_Connect_DeliversEventsInOrder(t *testing.T) {
	// Setup
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/p1/events", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("userId"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		fmt.Fprintln(w, `{"type":"task_created","payload":{"id":"t1"}}`)
		fmt.Fprintln(w, `not json at all`)
		fmt.Fprintln(w, `{"type":"task_updated","payload":{"taskId":"t1"}}`)
	}))
	defer srv.Close()

	logger := &testutil.MockLogger{}
	channel := New(srv.URL, logger)
	channel.SetToken("tok")

	// Execute
	var got []domain.EventType
	err := channel.Connect(context.Background(), "p1", domain.PresenceInfo{UserID: "u1", Name: "Alice"}, func(ev domain.Event) {
		got = append(got, ev.Type)
	})

	// Assert: malformed lines are skipped, order is preserved
	require.NoError(t, err)
	assert.Equal(t, []domain.EventType{domain.EventTaskCreated, domain.EventTaskUpdated}, got)
	assert.NotEmpty(t, logger.Entries)
}

func TestChannel_Connect_ErrorStatus(t *testing.T) {
	// Setup
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	channel := New(srv.URL, &testutil.MockLogger{})

	// Execute
	err := channel.Connect(context.Background(), "p1", domain.PresenceInfo{}, func(domain.Event) {})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
