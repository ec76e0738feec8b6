// Package convert maps between the UI's message shapes and the wire and
// transcript representations. All conversions are stateless and
// deterministic; errors are reported before any state changes.
package convert

import (
	"github.com/germanamz/chatwire/pkg/agentclient"
	"github.com/germanamz/chatwire/pkg/chats/content"
	"github.com/germanamz/chatwire/pkg/chats/message"
	"github.com/germanamz/chatwire/pkg/chats/role"
)

// AppendMessage is the UI's submitted-message shape: a role plus the content
// parts the user composed.
type AppendMessage struct {
	Role  role.Role
	Parts []content.Part
}

// NewUserText is a convenience constructor for the common plain-text send.
func NewUserText(text string) AppendMessage {
	return AppendMessage{
		Role:  role.User,
		Parts: []content.Part{content.Text{Text: text}},
	}
}

// ToCoreMessage converts an AppendMessage into the service's request shape.
// System messages must contain exactly one text part and become string-form
// content. Part types the service does not accept fail with
// UnsupportedPartError naming the offending kind.
func ToCoreMessage(m AppendMessage) (agentclient.CoreMessage, error) {
	switch m.Role {
	case role.System:
		text, err := systemText(m)
		if err != nil {
			return agentclient.CoreMessage{}, err
		}
		return agentclient.CoreMessage{
			Role:    role.System.String(),
			Content: agentclient.NewTextContent(text),
		}, nil

	case role.User, role.Assistant:
		parts, err := toCoreParts(m.Parts)
		if err != nil {
			return agentclient.CoreMessage{}, err
		}
		return agentclient.CoreMessage{
			Role:    m.Role.String(),
			Content: agentclient.NewPartContent(parts),
		}, nil

	default:
		return agentclient.CoreMessage{}, &FormatError{Reason: "unexpected message role " + m.Role.String()}
	}
}

// ToMessage converts an AppendMessage into the transcript representation,
// applying the same shape constraints as ToCoreMessage.
func ToMessage(m AppendMessage) (message.Message, error) {
	switch m.Role {
	case role.System:
		text, err := systemText(m)
		if err != nil {
			return message.Message{}, err
		}
		return message.NewText(role.System, text), nil

	case role.User, role.Assistant:
		// Run the wire mapping for validation only, so an unsupported part
		// fails before the transcript is touched.
		if _, err := toCoreParts(m.Parts); err != nil {
			return message.Message{}, err
		}
		return message.New(m.Role, m.Parts...), nil

	default:
		return message.Message{}, &FormatError{Reason: "unexpected message role " + m.Role.String()}
	}
}

func systemText(m AppendMessage) (string, error) {
	if len(m.Parts) != 1 {
		return "", &FormatError{Reason: "unexpected system message shape: want exactly one text part"}
	}
	t, ok := m.Parts[0].(content.Text)
	if !ok {
		return "", &FormatError{Reason: "unexpected system message shape: want exactly one text part"}
	}
	return t.Text, nil
}

func toCoreParts(parts []content.Part) ([]agentclient.CorePart, error) {
	out := make([]agentclient.CorePart, 0, len(parts))
	for _, p := range parts {
		switch part := p.(type) {
		case content.Text:
			out = append(out, agentclient.CorePart{Type: agentclient.PartText, Text: part.Text})
		case content.Image:
			out = append(out, agentclient.CorePart{Type: agentclient.PartImage, Image: part.URL})
		case content.File:
			out = append(out, agentclient.CorePart{Type: agentclient.PartFile, MimeType: part.MimeType, Data: part.Data})
		case content.Reasoning:
			out = append(out, agentclient.CorePart{Type: agentclient.PartReasoning, Text: part.Text})
		case content.ToolCall:
			out = append(out, agentclient.CorePart{
				Type:       agentclient.PartToolCall,
				ToolCallID: part.ID,
				ToolName:   part.Name,
				Args:       part.Args,
			})
		default:
			return nil, &UnsupportedPartError{Kind: p.PartKind()}
		}
	}
	return out, nil
}
