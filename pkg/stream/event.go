// Package stream defines the typed events delivered by the agent service's
// streaming protocol and a Decoder for its wire format.
package stream

// Event is one incremental update from an in-flight agent response.
// The concrete type identifies the event; unknown kinds decode to Unknown so
// callers can ignore them without failing the stream.
type Event interface {
	EventKind() string
}

// TextDelta appends text to the assistant's current text run.
type TextDelta struct {
	Text string
}

func (e TextDelta) EventKind() string { return "text_delta" }

// ReasoningDelta appends visible reasoning text.
type ReasoningDelta struct {
	Text string
}

func (e ReasoningDelta) EventKind() string { return "reasoning_delta" }

// RedactedReasoningDelta appends opaque redacted-reasoning data.
type RedactedReasoningDelta struct {
	Data string
}

func (e RedactedReasoningDelta) EventKind() string { return "redacted_reasoning_delta" }

// ToolCallStart announces that tool-call arguments will stream in for the
// given call before the full announcement arrives.
type ToolCallStart struct {
	ToolCallID string
	ToolName   string
}

func (e ToolCallStart) EventKind() string { return "tool_call_start" }

// ToolCallDelta carries a chunk of the argument JSON for a streaming call.
type ToolCallDelta struct {
	ToolCallID    string
	ArgsTextDelta string
}

func (e ToolCallDelta) EventKind() string { return "tool_call_delta" }

// ToolCall is the complete tool-call announcement.
type ToolCall struct {
	ToolCallID string
	ToolName   string
	Args       map[string]any
}

func (e ToolCall) EventKind() string { return "tool_call" }

// ToolResult delivers the outcome of a previously announced tool call.
type ToolResult struct {
	ToolCallID string
	Result     any
	IsError    bool
}

func (e ToolResult) EventKind() string { return "tool_result" }

// File delivers an embedded file produced by the agent.
type File struct {
	MimeType string
	Data     string
}

func (e File) EventKind() string { return "file" }

// Image delivers an image reference produced by the agent.
type Image struct {
	URL string
}

func (e Image) EventKind() string { return "image" }

// StartStep marks the beginning of one model invocation within a response.
type StartStep struct {
	MessageID string
}

func (e StartStep) EventKind() string { return "start_step" }

// FinishStep marks the end of one model invocation within a response.
type FinishStep struct {
	Reason string
}

func (e FinishStep) EventKind() string { return "finish_step" }

// FinishMessage terminates the assistant response.
type FinishMessage struct {
	Reason string
}

func (e FinishMessage) EventKind() string { return "finish_message" }

// Error reports a service-side failure for the current response.
type Error struct {
	Message string
}

func (e Error) EventKind() string { return "error" }

// Unknown carries an event the decoder does not recognize. Consumers must
// treat it as a no-op.
type Unknown struct {
	Prefix string
	Raw    string
}

func (e Unknown) EventKind() string { return "unknown" }
