// Package transcript holds the ordered conversation log and the folding
// engine that incorporates stream events into it one at a time.
package transcript

import (
	"github.com/germanamz/chatwire/pkg/chats/content"
	"github.com/germanamz/chatwire/pkg/chats/message"
	"github.com/germanamz/chatwire/pkg/chats/role"
)

// Transcript is the ordered sequence of messages in one conversation.
// Fold never mutates its input; each call returns a new value sharing
// unmodified messages with the old one, so a published Transcript is safe to
// read concurrently with later folds.
type Transcript []message.Message

// Append returns a new transcript with msgs added at the end.
func Append(t Transcript, msgs ...message.Message) Transcript {
	next := make(Transcript, len(t), len(t)+len(msgs))
	copy(next, t)
	return append(next, msgs...)
}

// Last returns the most recent message and true, or a zero Message and false
// if the transcript is empty.
func (t Transcript) Last() (message.Message, bool) {
	if len(t) == 0 {
		return message.Message{}, false
	}
	return t[len(t)-1], true
}

// openIndex returns the index of the open assistant message (the last message
// when it is an assistant message still accumulating), or -1.
func (t Transcript) openIndex() int {
	if len(t) == 0 {
		return -1
	}
	last := t[len(t)-1]
	if last.Role == role.Assistant && last.Running() {
		return len(t) - 1
	}
	return -1
}

// replace returns a copy of t with the message at i swapped for m.
func (t Transcript) replace(i int, m message.Message) Transcript {
	next := make(Transcript, len(t))
	copy(next, t)
	next[i] = m
	return next
}

// Seal closes the open assistant message with the given status. If there is
// no open assistant message, Seal returns t unchanged.
func Seal(t Transcript, st message.Status) Transcript {
	i := t.openIndex()
	if i < 0 {
		return t
	}

	m := t[i]
	m.Status = st
	return t.replace(i, m)
}

// AttachToolResult attaches an out-of-band result (e.g. a client-executed
// tool) to the matching ToolCall part, searching assistant messages newest
// first. Unlike folding, the owning message need not be open. Returns t
// unchanged and false when no call matches.
func AttachToolResult(t Transcript, toolCallID string, result any, isError bool) (Transcript, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Role != role.Assistant {
			continue
		}

		m := t[i].CloneParts()
		j := m.FindToolCall(toolCallID)
		if j < 0 {
			continue
		}

		tc := m.Parts[j].(content.ToolCall)
		tc.Result = result
		tc.HasResult = true
		tc.IsError = isError
		m.Parts[j] = tc
		return t.replace(i, m), true
	}
	return t, false
}
