// Package session orchestrates one conversation against the remote agent
// service: it converts and appends the user's message, opens the response
// stream, folds each event into the transcript, and publishes immutable
// snapshots for the renderer.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/germanamz/chatwire/pkg/agentclient"
	"github.com/germanamz/chatwire/pkg/chats/message"
	"github.com/germanamz/chatwire/pkg/convert"
	"github.com/germanamz/chatwire/pkg/stream"
	"github.com/germanamz/chatwire/pkg/transcript"
)

// ErrBusy is returned by Send while another send is in flight. A second send
// is rejected, not queued, so callers can disable input affordances.
var ErrBusy = errors.New("session: another send is already in flight")

// Session owns the transcript of one conversation thread. Only one Send may
// be active at a time; between stream events nothing else mutates the
// transcript.
type Session struct {
	client *agentclient.Client
	cfg    Config
	events *EventBus

	mu      sync.Mutex
	active  bool
	cancel  context.CancelFunc
	current transcript.Transcript
}

// New creates a Session for the configured agent and thread.
func New(client *agentclient.Client, cfg Config) *Session {
	return &Session{
		client: client,
		cfg:    cfg,
		events: NewEventBus(),
	}
}

// Events returns the session's event bus.
func (s *Session) Events() *EventBus { return s.events }

// ThreadID returns the conversation thread this session targets.
func (s *Session) ThreadID() string { return s.cfg.ThreadID }

// IsRunning reports whether a send is in flight.
func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Messages returns the current transcript snapshot. The returned value is
// never mutated by later folds.
func (s *Session) Messages() transcript.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetMessages replaces the transcript wholesale (e.g. for edits). It fails
// with ErrBusy while a send is in flight.
func (s *Session) SetMessages(t transcript.Transcript) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return ErrBusy
	}
	s.current = t
	s.mu.Unlock()

	s.publishTranscript(t)
	return nil
}

// LoadHistory fetches the thread's persisted messages, normalizes them
// (tool-role messages fold into their assistant message), and replaces the
// transcript.
func (s *Session) LoadHistory(ctx context.Context) error {
	msgs, err := s.client.ThreadMessages(ctx, s.cfg.ThreadID, s.cfg.AgentID)
	if err != nil {
		return err
	}
	return s.SetMessages(transcript.Transcript(convert.FromCoreMessages(msgs)))
}

// AddToolResult attaches a client-side tool result to the matching tool call
// in the transcript. It fails with ErrBusy while a send is in flight (the
// fold loop owns the transcript then) and reports unknown tool-call IDs.
func (s *Session) AddToolResult(toolCallID string, result any, isError bool) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return ErrBusy
	}
	next, ok := transcript.AttachToolResult(s.current, toolCallID, result, isError)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("session: no tool call %s in transcript", toolCallID)
	}
	s.current = next
	s.mu.Unlock()

	s.publishTranscript(next)
	return nil
}

// SendText sends a plain text user message.
func (s *Session) SendText(ctx context.Context, text string) error {
	return s.Send(ctx, convert.NewUserText(text))
}

// Send converts the appended message, adds it to the transcript, streams the
// agent's response, and folds every event into the transcript as it arrives.
// It blocks until the response is sealed. Conversion failures surface before
// any transcript mutation; stream-setup failures leave the transcript in its
// last-known-good state.
func (s *Session) Send(ctx context.Context, m convert.AppendMessage) error {
	coreMsg, err := convert.ToCoreMessage(m)
	if err != nil {
		return err
	}
	userMsg, err := convert.ToMessage(m)
	if err != nil {
		return err
	}

	streamCtx, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer s.release()

	s.setTranscript(transcript.Append(s.Messages(), userMsg))

	s.events.Publish(Event{Kind: EventRunStart, ThreadID: s.cfg.ThreadID, Timestamp: time.Now()})
	defer s.events.Publish(Event{Kind: EventRunEnd, ThreadID: s.cfg.ThreadID, Timestamp: time.Now()})

	dec, err := s.client.Agent(s.cfg.AgentID).Stream(streamCtx, agentclient.StreamRequest{
		Messages:     []agentclient.CoreMessage{coreMsg},
		ThreadID:     s.cfg.ThreadID,
		ResourceID:   s.cfg.ResourceID,
		MaxSteps:     s.cfg.MaxSteps,
		Temperature:  s.cfg.Temperature,
		Instructions: s.cfg.Instructions,
		Output:       s.cfg.Output,
	})
	if err != nil {
		s.publishError(err)
		return err
	}
	defer dec.Close()

	return s.consume(streamCtx, dec)
}

// consume folds stream events until the stream ends, fails, or is cancelled.
func (s *Session) consume(ctx context.Context, dec *stream.Decoder) error {
	for {
		if ctx.Err() != nil {
			// Cancelled: discard any late events and seal the open message.
			s.sealOpen(message.Status{Type: message.StatusIncomplete, Reason: message.ReasonCancelled})
			return nil
		}

		ev, err := dec.Next()
		if err == io.EOF {
			// The service ended the stream without a finish event; the open
			// message must not stay running forever.
			s.sealOpen(message.Status{Type: message.StatusIncomplete, Reason: message.ReasonOther})
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				s.sealOpen(message.Status{Type: message.StatusIncomplete, Reason: message.ReasonCancelled})
				return nil
			}
			terr := &agentclient.TransportError{Op: "read stream", Err: err}
			s.sealOpen(message.Status{Type: message.StatusIncomplete, Reason: message.ReasonError})
			s.publishError(terr)
			return terr
		}

		next, warns := transcript.Fold(s.Messages(), ev)
		for _, w := range warns {
			s.events.Publish(Event{Kind: EventWarning, ThreadID: s.cfg.ThreadID, Timestamp: time.Now(), Data: w})
		}
		s.setTranscript(next)
	}
}

// Cancel requests teardown of the in-flight stream, if any. Cancellation is
// cooperative: the open message is sealed with reason cancelled once the
// fold loop observes it, and events arriving after that are discarded.
func (s *Session) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (s *Session) acquire(ctx context.Context) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return nil, fmt.Errorf("session: thread %s: %w", s.cfg.ThreadID, ErrBusy)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	s.active = true
	s.cancel = cancel
	return streamCtx, nil
}

func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.active = false
	s.cancel = nil
}

// sealOpen seals the open assistant message, if any, and publishes the
// resulting snapshot.
func (s *Session) sealOpen(st message.Status) {
	cur := s.Messages()
	next := transcript.Seal(cur, st)
	if len(cur) == 0 || next[len(next)-1].Status == cur[len(cur)-1].Status {
		return
	}
	s.setTranscript(next)
}

func (s *Session) setTranscript(t transcript.Transcript) {
	s.mu.Lock()
	s.current = t
	s.mu.Unlock()

	s.publishTranscript(t)
}

func (s *Session) publishTranscript(t transcript.Transcript) {
	s.events.Publish(Event{
		Kind:      EventTranscript,
		ThreadID:  s.cfg.ThreadID,
		Timestamp: time.Now(),
		Data:      t,
	})
}

func (s *Session) publishError(err error) {
	s.events.Publish(Event{
		Kind:      EventError,
		ThreadID:  s.cfg.ThreadID,
		Timestamp: time.Now(),
		Data:      err,
	})
}
