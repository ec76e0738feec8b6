// Package content defines multi-modal content parts for agent messages.
package content

// Part is a piece of content within a message.
// External packages can implement this interface to add custom content types.
type Part interface {
	PartKind() string
}

// Text is a plain text content part.
type Text struct {
	Text string
}

func (t Text) PartKind() string { return "text" }

// Image is an image content part referenced by URL or data URI.
type Image struct {
	URL string
}

func (i Image) PartKind() string { return "image" }

// File is an embedded file content part. Data holds the file payload as
// delivered by the service, typically base64.
type File struct {
	MimeType string
	Data     string
}

func (f File) PartKind() string { return "file" }

// Reasoning is visible model reasoning text.
type Reasoning struct {
	Text string
}

func (r Reasoning) PartKind() string { return "reasoning" }

// RedactedReasoning is reasoning the service withheld. Data is an opaque
// blob that must survive round-trips unmodified.
type RedactedReasoning struct {
	Data string
}

func (r RedactedReasoning) PartKind() string { return "redacted_reasoning" }

// ToolCall represents an assistant's request to invoke a tool, together with
// the result once it arrives. A ToolCall is identified solely by ID; at most
// one ToolCall with a given ID exists per message.
//
// Args holds the parsed arguments object. ArgsText accumulates the raw
// argument JSON while it is still streaming in; once the full announcement
// arrives, Args is authoritative.
type ToolCall struct {
	ID       string
	Name     string
	Args     map[string]any
	ArgsText string

	Result    any
	HasResult bool
	IsError   bool
}

func (tc ToolCall) PartKind() string { return "tool_call" }
