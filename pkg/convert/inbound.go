package convert

import (
	"encoding/json"
	"fmt"

	"github.com/germanamz/chatwire/pkg/chats/content"
	"github.com/germanamz/chatwire/pkg/chats/message"
	"github.com/germanamz/chatwire/pkg/chats/role"
)

// RenderPartKind tags a RenderPart.
type RenderPartKind string

const (
	RenderText      RenderPartKind = "text"
	RenderReasoning RenderPartKind = "reasoning"
	RenderImage     RenderPartKind = "image"
	RenderFile      RenderPartKind = "file"
	RenderToolCall  RenderPartKind = "tool-call"
)

// RenderPart is one display-ready content unit. Kind selects which fields
// are meaningful.
type RenderPart struct {
	Kind RenderPartKind

	Text string // text, reasoning

	Image string // image

	MimeType string // file
	Data     string // file

	ToolCallID string         // tool-call
	ToolName   string         // tool-call
	Args       map[string]any // tool-call
	ArgsText   string         // tool-call: serialized args, presentation only
	Result     any            // tool-call
	HasResult  bool           // tool-call
	IsError    bool           // tool-call
}

// RenderMessage is the renderer-facing projection of a transcript message.
type RenderMessage struct {
	ID     string
	Role   role.Role
	Status message.Status
	Parts  []RenderPart
}

// ToRenderMessage projects a transcript message into its render shape. It
// works on running messages so partial content renders as it streams.
// Tool-role messages must be normalized into their owning assistant message
// before reaching this converter.
func ToRenderMessage(m message.Message) (RenderMessage, error) {
	if m.Role == role.Tool {
		return RenderMessage{}, fmt.Errorf("convert: tool message %s reached the renderer; history was not normalized", m.ID)
	}

	out := RenderMessage{
		ID:     m.ID,
		Role:   m.Role,
		Status: m.Status,
	}

	if m.IsStringForm() {
		out.Parts = []RenderPart{{Kind: RenderText, Text: m.Text}}
		return out, nil
	}

	out.Parts = make([]RenderPart, 0, len(m.Parts))
	for _, p := range m.Parts {
		switch part := p.(type) {
		case content.Text:
			out.Parts = append(out.Parts, RenderPart{Kind: RenderText, Text: part.Text})
		case content.Reasoning:
			out.Parts = append(out.Parts, RenderPart{Kind: RenderReasoning, Text: part.Text})
		case content.RedactedReasoning:
			// Redacted reasoning renders as reasoning with the opaque data
			// as its text.
			out.Parts = append(out.Parts, RenderPart{Kind: RenderReasoning, Text: part.Data})
		case content.Image:
			out.Parts = append(out.Parts, RenderPart{Kind: RenderImage, Image: part.URL})
		case content.File:
			out.Parts = append(out.Parts, RenderPart{Kind: RenderFile, MimeType: part.MimeType, Data: part.Data})
		case content.ToolCall:
			out.Parts = append(out.Parts, RenderPart{
				Kind:       RenderToolCall,
				ToolCallID: part.ID,
				ToolName:   part.Name,
				Args:       part.Args,
				ArgsText:   argsText(part),
				Result:     part.Result,
				HasResult:  part.HasResult,
				IsError:    part.IsError,
			})
		default:
			// Custom part kinds render as nothing rather than failing the
			// whole message.
		}
	}
	return out, nil
}

// argsText synthesizes the display form of a tool call's arguments. While
// arguments are still streaming, the accumulated raw JSON is shown as-is.
func argsText(tc content.ToolCall) string {
	if tc.Args != nil {
		b, err := json.Marshal(tc.Args)
		if err == nil {
			return string(b)
		}
	}
	if tc.ArgsText != "" {
		return tc.ArgsText
	}
	return "{}"
}
