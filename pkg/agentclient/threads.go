package agentclient

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Thread is the service's conversation-thread record.
type Thread struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	ResourceID string         `json:"resourceId,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Archived reports whether the thread's metadata marks it archived.
func (t Thread) Archived() bool {
	v, ok := t.Metadata["isArchived"].(bool)
	return ok && v
}

// CreateThreadRequest is the body of a thread creation call.
type CreateThreadRequest struct {
	ThreadID   string         `json:"threadId,omitempty"`
	Title      string         `json:"title"`
	ResourceID string         `json:"resourceId"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// UpdateThreadRequest is the body of a thread update call. Metadata replaces
// the stored metadata wholesale.
type UpdateThreadRequest struct {
	Title    string         `json:"title"`
	Metadata map[string]any `json:"metadata"`
}

// ListThreads returns all threads owned by resourceID on the given agent.
func (c *Client) ListThreads(ctx context.Context, agentID, resourceID string) ([]Thread, error) {
	path := fmt.Sprintf("/api/memory/threads?agentId=%s&resourceId=%s",
		url.QueryEscape(agentID), url.QueryEscape(resourceID))

	var threads []Thread
	if err := c.doJSON(ctx, "GET", path, nil, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// GetThread fetches one thread record.
func (c *Client) GetThread(ctx context.Context, threadID, agentID string) (Thread, error) {
	var t Thread
	err := c.doJSON(ctx, "GET", threadPath(threadID, agentID), nil, &t)
	return t, err
}

// CreateThread creates a thread. When req.ThreadID is empty the service
// assigns one.
func (c *Client) CreateThread(ctx context.Context, agentID string, req CreateThreadRequest) (Thread, error) {
	path := "/api/memory/threads?agentId=" + url.QueryEscape(agentID)

	var t Thread
	err := c.doJSON(ctx, "POST", path, req, &t)
	return t, err
}

// UpdateThread updates a thread's title and metadata.
func (c *Client) UpdateThread(ctx context.Context, threadID, agentID string, req UpdateThreadRequest) (Thread, error) {
	var t Thread
	err := c.doJSON(ctx, "PATCH", threadPath(threadID, agentID), req, &t)
	return t, err
}

// DeleteThread removes a thread and its messages.
func (c *Client) DeleteThread(ctx context.Context, threadID, agentID string) error {
	return c.doJSON(ctx, "DELETE", threadPath(threadID, agentID), nil, nil)
}

// ThreadMessages returns the persisted messages of a thread, oldest first.
func (c *Client) ThreadMessages(ctx context.Context, threadID, agentID string) ([]CoreMessage, error) {
	path := fmt.Sprintf("/api/memory/threads/%s/messages?agentId=%s",
		url.PathEscape(threadID), url.QueryEscape(agentID))

	var body struct {
		Messages []CoreMessage `json:"messages"`
	}
	if err := c.doJSON(ctx, "GET", path, nil, &body); err != nil {
		return nil, err
	}
	return body.Messages, nil
}

func threadPath(threadID, agentID string) string {
	return fmt.Sprintf("/api/memory/threads/%s?agentId=%s",
		url.PathEscape(threadID), url.QueryEscape(agentID))
}
