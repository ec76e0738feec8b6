package agentclient

import (
	"encoding/json"
	"fmt"
)

// CoreMessage is the service's message envelope. Content is either a plain
// string or an ordered list of typed parts.
type CoreMessage struct {
	Role    string      `json:"role"`
	Content CoreContent `json:"content"`
}

// CoreContent holds the two wire forms of message content. Parts is nil for
// string-form content.
type CoreContent struct {
	Text  string
	Parts []CorePart
}

// CorePart is one typed unit of wire content. Type selects which fields are
// meaningful; unused fields stay zero and are omitted on the wire.
type CorePart struct {
	Type       string         `json:"type"`
	Text       string         `json:"text,omitempty"`
	Image      string         `json:"image,omitempty"`
	MimeType   string         `json:"mimeType,omitempty"`
	Data       string         `json:"data,omitempty"`
	ToolCallID string         `json:"toolCallId,omitempty"`
	ToolName   string         `json:"toolName,omitempty"`
	Args       map[string]any `json:"args,omitempty"`
	Result     any            `json:"result,omitempty"`
	IsError    bool           `json:"isError,omitempty"`
}

// Part type tags used by the service.
const (
	PartText              = "text"
	PartImage             = "image"
	PartFile              = "file"
	PartReasoning         = "reasoning"
	PartRedactedReasoning = "redacted-reasoning"
	PartToolCall          = "tool-call"
	PartToolResult        = "tool-result"
)

// NewTextContent returns string-form content.
func NewTextContent(text string) CoreContent {
	return CoreContent{Text: text}
}

// NewPartContent returns sequence-form content. A nil parts slice becomes an
// empty sequence so it still marshals as an array.
func NewPartContent(parts []CorePart) CoreContent {
	if parts == nil {
		parts = []CorePart{}
	}
	return CoreContent{Parts: parts}
}

// IsString reports whether the content is the plain string form.
func (c CoreContent) IsString() bool {
	return c.Parts == nil
}

func (c CoreContent) MarshalJSON() ([]byte, error) {
	if c.IsString() {
		return json.Marshal(c.Text)
	}
	return json.Marshal(c.Parts)
}

func (c *CoreContent) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*c = CoreContent{Text: text}
		return nil
	}

	var parts []CorePart
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("agentclient: content is neither string nor part list: %w", err)
	}
	if parts == nil {
		parts = []CorePart{}
	}
	*c = CoreContent{Parts: parts}
	return nil
}
