// Package message defines the Message type used in agent conversations.
package message

import (
	"strings"

	"github.com/google/uuid"

	"github.com/germanamz/chatwire/pkg/chats/content"
	"github.com/germanamz/chatwire/pkg/chats/role"
)

// StatusType describes where a message is in its lifecycle.
type StatusType string

const (
	StatusRunning    StatusType = "running"
	StatusComplete   StatusType = "complete"
	StatusIncomplete StatusType = "incomplete"
)

// Reason explains why a message finished early or at all.
type Reason string

const (
	ReasonStop          Reason = "stop"
	ReasonLength        Reason = "length"
	ReasonContentFilter Reason = "content-filter"
	ReasonCancelled     Reason = "cancelled"
	ReasonError         Reason = "error"
	ReasonOther         Reason = "other"
)

// Status is the lifecycle state of a message. The zero value means the
// message was never streamed (e.g. a user message).
type Status struct {
	Type   StatusType
	Reason Reason
}

// Message is a single message in a conversation. Content is either the
// string form (Text, with Parts nil) or the sequence form (Parts).
// Conversion is one-directional: Promote moves string form to sequence form,
// never the reverse. Message is a value type that copies cheaply; Parts
// slices are never mutated in place by this package.
type Message struct {
	ID     string
	Role   role.Role
	Text   string
	Parts  []content.Part
	Status Status
}

// New creates a sequence-form message with a fresh ID. A call with no parts
// yields an empty sequence, not string form.
func New(r role.Role, parts ...content.Part) Message {
	if parts == nil {
		parts = []content.Part{}
	}
	return Message{
		ID:    uuid.NewString(),
		Role:  r,
		Parts: parts,
	}
}

// NewText creates a string-form message with a fresh ID.
func NewText(r role.Role, text string) Message {
	return Message{
		ID:   uuid.NewString(),
		Role: r,
		Text: text,
	}
}

// IsStringForm reports whether the message carries string-form content.
func (m Message) IsStringForm() bool {
	return m.Parts == nil
}

// Promote converts string-form content to sequence form. Empty text becomes
// an empty sequence rather than an empty Text part. Promoting a message
// already in sequence form is a no-op.
func (m *Message) Promote() {
	if m.Parts != nil {
		return
	}
	if m.Text == "" {
		m.Parts = []content.Part{}
		return
	}
	m.Parts = []content.Part{content.Text{Text: m.Text}}
	m.Text = ""
}

// Running reports whether the message is still accumulating streamed content.
func (m Message) Running() bool {
	return m.Status.Type == StatusRunning
}

// TextContent returns the string-form text, or the concatenation of all Text
// parts for sequence-form messages.
func (m Message) TextContent() string {
	if m.IsStringForm() {
		return m.Text
	}

	var b strings.Builder
	for _, p := range m.Parts {
		if t, ok := p.(content.Text); ok {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

// FindToolCall returns the index of the ToolCall part with the given ID,
// searching the whole content sequence, or -1 if absent.
func (m Message) FindToolCall(id string) int {
	for i, p := range m.Parts {
		if tc, ok := p.(content.ToolCall); ok && tc.ID == id {
			return i
		}
	}
	return -1
}

// ToolCalls returns all ToolCall parts in the message.
func (m Message) ToolCalls() []content.ToolCall {
	var calls []content.ToolCall
	for _, p := range m.Parts {
		if tc, ok := p.(content.ToolCall); ok {
			calls = append(calls, tc)
		}
	}
	return calls
}

// CloneParts returns a copy of the message with a freshly allocated Parts
// slice, so the copy can be appended to or patched without aliasing the
// original. Part values themselves are immutable by convention.
func (m Message) CloneParts() Message {
	if m.Parts == nil {
		return m
	}
	parts := make([]content.Part, len(m.Parts))
	copy(parts, m.Parts)
	m.Parts = parts
	return m
}
