package session

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/germanamz/chatwire/pkg/agentclient"
)

// ThreadList maintains a cached view of the threads owned by one resource on
// one agent, split into regular and archived groups. Mutating operations go
// to the service first and refresh the cache on success.
type ThreadList struct {
	client     *agentclient.Client
	agentID    string
	resourceID string

	mu       sync.Mutex
	regular  []agentclient.Thread
	archived []agentclient.Thread
}

// NewThreadList creates a ThreadList. The cache is empty until Refresh.
func NewThreadList(client *agentclient.Client, agentID, resourceID string) *ThreadList {
	return &ThreadList{
		client:     client,
		agentID:    agentID,
		resourceID: resourceID,
	}
}

// Refresh reloads the thread cache from the service. Threads are split by
// archive state and ordered newest first within each group.
func (l *ThreadList) Refresh(ctx context.Context) error {
	threads, err := l.client.ListThreads(ctx, l.agentID, l.resourceID)
	if err != nil {
		return err
	}

	var regular, archived []agentclient.Thread
	for _, t := range threads {
		if t.Archived() {
			archived = append(archived, t)
		} else {
			regular = append(regular, t)
		}
	}
	byNewest := func(ts []agentclient.Thread) {
		sort.SliceStable(ts, func(i, j int) bool {
			return ts[i].CreatedAt.After(ts[j].CreatedAt)
		})
	}
	byNewest(regular)
	byNewest(archived)

	l.mu.Lock()
	l.regular = regular
	l.archived = archived
	l.mu.Unlock()
	return nil
}

// Regular returns the cached non-archived threads, newest first.
func (l *ThreadList) Regular() []agentclient.Thread {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]agentclient.Thread(nil), l.regular...)
}

// Archived returns the cached archived threads, newest first.
func (l *ThreadList) Archived() []agentclient.Thread {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]agentclient.Thread(nil), l.archived...)
}

// Create creates a new thread with a client-assigned ID and refreshes the
// cache. An empty title is allowed; the service may auto-title the thread
// from its first message.
func (l *ThreadList) Create(ctx context.Context, title string) (agentclient.Thread, error) {
	t, err := l.client.CreateThread(ctx, l.agentID, agentclient.CreateThreadRequest{
		ThreadID:   uuid.NewString(),
		Title:      title,
		ResourceID: l.resourceID,
	})
	if err != nil {
		return agentclient.Thread{}, err
	}
	return t, l.Refresh(ctx)
}

// Rename sets a thread's title, preserving its metadata.
func (l *ThreadList) Rename(ctx context.Context, threadID, title string) error {
	return l.update(ctx, threadID, func(req *agentclient.UpdateThreadRequest) {
		req.Title = title
	})
}

// Archive moves a thread to the archived group.
func (l *ThreadList) Archive(ctx context.Context, threadID string) error {
	return l.setArchived(ctx, threadID, true)
}

// Unarchive moves a thread back to the regular group.
func (l *ThreadList) Unarchive(ctx context.Context, threadID string) error {
	return l.setArchived(ctx, threadID, false)
}

// Delete removes a thread and its messages, then refreshes the cache.
func (l *ThreadList) Delete(ctx context.Context, threadID string) error {
	if err := l.client.DeleteThread(ctx, threadID, l.agentID); err != nil {
		return err
	}
	return l.Refresh(ctx)
}

func (l *ThreadList) setArchived(ctx context.Context, threadID string, archived bool) error {
	return l.update(ctx, threadID, func(req *agentclient.UpdateThreadRequest) {
		req.Metadata["isArchived"] = archived
	})
}

// update reads the current thread record, applies fn to a request seeded
// with the thread's title and metadata, and PATCHes it back. The service
// replaces metadata wholesale, so the read precedes every update.
func (l *ThreadList) update(ctx context.Context, threadID string, fn func(*agentclient.UpdateThreadRequest)) error {
	t, err := l.client.GetThread(ctx, threadID, l.agentID)
	if err != nil {
		return fmt.Errorf("session: update thread %s: %w", threadID, err)
	}

	req := agentclient.UpdateThreadRequest{
		Title:    t.Title,
		Metadata: t.Metadata,
	}
	if req.Metadata == nil {
		req.Metadata = map[string]any{}
	}
	fn(&req)

	if _, err := l.client.UpdateThread(ctx, threadID, l.agentID, req); err != nil {
		return fmt.Errorf("session: update thread %s: %w", threadID, err)
	}
	return l.Refresh(ctx)
}
