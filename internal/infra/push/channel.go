// Package push implements the server push channel over a streaming HTTP
// connection. The server writes one JSON event per line; the channel
// decodes lines and hands events to the consumer in arrival order.
package push

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/mhiguchi/boardsync/internal/domain"
)

// Ensure Channel implements domain.PushChannel interface.
var _ domain.PushChannel = (*Channel)(nil)

// Channel streams project events from the tracker server.
// Fields are ordered to minimize memory padding.
type Channel struct {
	http    *http.Client
	logger  domain.Logger
	cancel  context.CancelFunc
	baseURL string
	token   string
	mu      sync.Mutex
}

// New creates a new Channel for the given base URL.
// The HTTP client carries no timeout; the stream stays open until canceled.
func New(baseURL string, logger domain.Logger) *Channel {
	return &Channel{
		http:    &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// SetToken sets the session token sent when connecting.
func (c *Channel) SetToken(token string) {
	c.token = token
}

// Connect opens the event stream and delivers events to onEvent until the
// context is canceled or Disconnect is called. Blocks while connected.
func (c *Channel) Connect(ctx context.Context, projectID string, presence domain.PresenceInfo, onEvent func(domain.Event)) error {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	query := url.Values{}
	query.Set("userId", presence.UserID)
	query.Set("name", presence.Name)
	streamURL := fmt.Sprintf("%s/api/projects/%s/events?%s", c.baseURL, projectID, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return fmt.Errorf("build stream request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("connect event stream: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("connect event stream: status %d", resp.StatusCode)
	}

	var skippedLines int
	scanner := bufio.NewScanner(resp.Body)

	// Start with default buffer, allow up to 1MB for large JSON lines
	const (
		initialBufSize = 64 * 1024   // 64KB
		maxLineSize    = 1024 * 1024 // 1MB
	)
	scanner.Buffer(make([]byte, initialBufSize), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(line, &event); err != nil {
			// Count malformed lines but continue
			skippedLines++
			continue
		}
		onEvent(event)
	}

	if skippedLines > 0 {
		c.logger.Warn(projectID, "push", fmt.Sprintf("skipped %d malformed event lines", skippedLines))
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("scan event stream: %w", err)
	}
	return ctx.Err()
}

// Disconnect stops event delivery.
func (c *Channel) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return nil
}
