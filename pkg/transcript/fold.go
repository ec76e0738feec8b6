package transcript

import (
	"fmt"

	"github.com/germanamz/chatwire/pkg/chats/content"
	"github.com/germanamz/chatwire/pkg/chats/message"
	"github.com/germanamz/chatwire/pkg/chats/role"
	"github.com/germanamz/chatwire/pkg/stream"
)

// WarningKind classifies tolerated anomalies observed while folding.
type WarningKind string

const (
	// WarnOrphanResult is a tool-result with no matching tool-call in the
	// open assistant message. The event is dropped.
	WarnOrphanResult WarningKind = "orphan_result"

	// WarnStreamError is a service-side error event. The open message is
	// sealed incomplete; the error itself is never embedded in the transcript.
	WarnStreamError WarningKind = "stream_error"
)

// Warning reports a tolerated anomaly. Folding always continues after a
// warning; it is observability, not failure.
type Warning struct {
	Kind       WarningKind
	ToolCallID string
	Err        error
}

// Fold incorporates one stream event into the transcript and returns the
// next transcript. It is a pure reducer: the input transcript is never
// mutated, and the same inputs always produce the same outputs. Events must
// be applied in arrival order, one at a time.
func Fold(t Transcript, ev stream.Event) (Transcript, []Warning) {
	switch e := ev.(type) {
	case stream.TextDelta:
		return foldText(t, e.Text), nil

	case stream.ReasoningDelta:
		return foldPart(t, content.Reasoning{Text: e.Text}, coalesceReasoning(e.Text)), nil

	case stream.RedactedReasoningDelta:
		return foldPart(t, content.RedactedReasoning{Data: e.Data}, coalesceRedacted(e.Data)), nil

	case stream.ToolCallStart:
		return foldToolCallStart(t, e), nil

	case stream.ToolCallDelta:
		return foldToolCallDelta(t, e), nil

	case stream.ToolCall:
		return foldToolCall(t, e), nil

	case stream.ToolResult:
		return foldToolResult(t, e)

	case stream.File:
		return foldPart(t, content.File{MimeType: e.MimeType, Data: e.Data}, nil), nil

	case stream.Image:
		return foldPart(t, content.Image{URL: e.URL}, nil), nil

	case stream.FinishMessage:
		return Seal(t, finishStatus(e.Reason)), nil

	case stream.Error:
		warn := []Warning{{Kind: WarnStreamError, Err: fmt.Errorf("transcript: stream error: %s", e.Message)}}
		return Seal(t, message.Status{Type: message.StatusIncomplete, Reason: message.ReasonError}), warn

	default:
		// start-step, finish-step, data, annotations, unknown: no-op.
		return t, nil
	}
}

// openOrNew returns the transcript with an open assistant message guaranteed
// at the end, the message (parts cloned for safe mutation), and its index.
func openOrNew(t Transcript) (Transcript, message.Message, int) {
	if i := t.openIndex(); i >= 0 {
		return t, t[i].CloneParts(), i
	}

	m := message.New(role.Assistant)
	m.Status = message.Status{Type: message.StatusRunning}
	next := Append(t, m)
	return next, m, len(next) - 1
}

// foldText merges a text delta. String-form assistant content grows by plain
// concatenation; sequence form coalesces with a trailing Text part and never
// merges across an intervening non-text part.
func foldText(t Transcript, text string) Transcript {
	next, m, i := openOrNew(t)

	if m.IsStringForm() {
		m.Text += text
		return next.replace(i, m)
	}

	if n := len(m.Parts); n > 0 {
		if last, ok := m.Parts[n-1].(content.Text); ok {
			m.Parts[n-1] = content.Text{Text: last.Text + text}
			return next.replace(i, m)
		}
	}

	m.Parts = append(m.Parts, content.Text{Text: text})
	return next.replace(i, m)
}

func coalesceReasoning(text string) func(content.Part) (content.Part, bool) {
	return func(last content.Part) (content.Part, bool) {
		r, ok := last.(content.Reasoning)
		if !ok {
			return nil, false
		}
		return content.Reasoning{Text: r.Text + text}, true
	}
}

func coalesceRedacted(data string) func(content.Part) (content.Part, bool) {
	return func(last content.Part) (content.Part, bool) {
		r, ok := last.(content.RedactedReasoning)
		if !ok {
			return nil, false
		}
		return content.RedactedReasoning{Data: r.Data + data}, true
	}
}

// foldPart appends part to the open assistant message, first trying coalesce
// against the trailing part when a coalesce func is given. String-form
// content is promoted, since a non-text part needs the sequence form.
func foldPart(t Transcript, part content.Part, coalesce func(content.Part) (content.Part, bool)) Transcript {
	next, m, i := openOrNew(t)
	m.Promote()

	if coalesce != nil {
		if n := len(m.Parts); n > 0 {
			if merged, ok := coalesce(m.Parts[n-1]); ok {
				m.Parts[n-1] = merged
				return next.replace(i, m)
			}
		}
	}

	m.Parts = append(m.Parts, part)
	return next.replace(i, m)
}

// foldToolCallStart appends an empty ToolCall part that subsequent argument
// deltas accumulate into. A start for an already known ID is a
// retransmission and is ignored.
func foldToolCallStart(t Transcript, e stream.ToolCallStart) Transcript {
	next, m, i := openOrNew(t)
	if m.FindToolCall(e.ToolCallID) >= 0 {
		return t
	}

	m.Promote()
	m.Parts = append(m.Parts, content.ToolCall{ID: e.ToolCallID, Name: e.ToolName})
	return next.replace(i, m)
}

// foldToolCallDelta appends an argument JSON chunk to the matching call's
// ArgsText. A delta with no matching call is dropped; the complete
// announcement that follows carries the full arguments anyway.
func foldToolCallDelta(t Transcript, e stream.ToolCallDelta) Transcript {
	i := t.openIndex()
	if i < 0 {
		return t
	}

	m := t[i].CloneParts()
	j := m.FindToolCall(e.ToolCallID)
	if j < 0 {
		return t
	}

	tc := m.Parts[j].(content.ToolCall)
	tc.ArgsText += e.ArgsTextDelta
	m.Parts[j] = tc
	return t.replace(i, m)
}

// foldToolCall records the complete tool-call announcement. A duplicate ID is
// a retransmission: the existing part's name and arguments are overwritten in
// place, preserving its position and any result already attached.
func foldToolCall(t Transcript, e stream.ToolCall) Transcript {
	next, m, i := openOrNew(t)
	m.Promote()

	if j := m.FindToolCall(e.ToolCallID); j >= 0 {
		tc := m.Parts[j].(content.ToolCall)
		tc.Name = e.ToolName
		tc.Args = e.Args
		tc.ArgsText = ""
		m.Parts[j] = tc
		return next.replace(i, m)
	}

	m.Parts = append(m.Parts, content.ToolCall{ID: e.ToolCallID, Name: e.ToolName, Args: e.Args})
	return next.replace(i, m)
}

// foldToolResult attaches a result to the matching ToolCall part anywhere in
// the open message, preserving its position. A result with no matching call
// is dropped and reported; it must never create a result-only part.
func foldToolResult(t Transcript, e stream.ToolResult) (Transcript, []Warning) {
	orphan := []Warning{{Kind: WarnOrphanResult, ToolCallID: e.ToolCallID}}

	i := t.openIndex()
	if i < 0 {
		return t, orphan
	}

	m := t[i].CloneParts()
	j := m.FindToolCall(e.ToolCallID)
	if j < 0 {
		return t, orphan
	}

	tc := m.Parts[j].(content.ToolCall)
	tc.Result = e.Result
	tc.HasResult = true
	tc.IsError = e.IsError
	m.Parts[j] = tc
	return t.replace(i, m), nil
}

// finishStatus maps a service finish reason onto a terminal message status.
func finishStatus(reason string) message.Status {
	switch reason {
	case "stop", "tool-calls":
		return message.Status{Type: message.StatusComplete, Reason: message.ReasonStop}
	case "length":
		return message.Status{Type: message.StatusIncomplete, Reason: message.ReasonLength}
	case "content-filter":
		return message.Status{Type: message.StatusIncomplete, Reason: message.ReasonContentFilter}
	case "error":
		return message.Status{Type: message.StatusIncomplete, Reason: message.ReasonError}
	default:
		return message.Status{Type: message.StatusIncomplete, Reason: message.ReasonOther}
	}
}
