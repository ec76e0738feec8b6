package convert

import (
	"strings"

	"github.com/germanamz/chatwire/pkg/agentclient"
	"github.com/germanamz/chatwire/pkg/chats/content"
	"github.com/germanamz/chatwire/pkg/chats/message"
	"github.com/germanamz/chatwire/pkg/chats/role"
)

// historyStatus marks persisted assistant messages: they finished before we
// loaded them, but the service does not record why.
var historyStatus = message.Status{Type: message.StatusComplete, Reason: message.ReasonOther}

// FromCoreMessages converts persisted service messages into transcript
// messages. Tool-role messages are a transport artifact: their tool-result
// parts are folded into the matching ToolCall of the nearest preceding
// assistant message and the tool message itself is dropped, so the result
// never reaches the renderer as a standalone message. Results with no
// matching call are discarded.
func FromCoreMessages(msgs []agentclient.CoreMessage) []message.Message {
	out := make([]message.Message, 0, len(msgs))

	for _, cm := range msgs {
		switch role.Role(cm.Role) {
		case role.System:
			out = append(out, message.NewText(role.System, flattenText(cm.Content)))

		case role.User:
			if cm.Content.IsString() {
				out = append(out, message.NewText(role.User, cm.Content.Text))
				continue
			}
			out = append(out, message.New(role.User, fromCoreParts(cm.Content.Parts)...))

		case role.Assistant:
			if cm.Content.IsString() {
				// String-form assistant content is preserved; promotion to
				// sequence form only ever happens during folding.
				m := message.NewText(role.Assistant, cm.Content.Text)
				m.Status = historyStatus
				out = append(out, m)
				continue
			}
			m := message.New(role.Assistant, fromCoreParts(cm.Content.Parts)...)
			m.Status = historyStatus
			for _, p := range cm.Content.Parts {
				if p.Type == agentclient.PartToolResult {
					attachResult(out, &m, p)
				}
			}
			out = append(out, m)

		case role.Tool:
			if cm.Content.IsString() {
				continue
			}
			for _, p := range cm.Content.Parts {
				if p.Type == agentclient.PartToolResult {
					attachResult(out, nil, p)
				}
			}

		default:
			// Unknown roles in history are skipped.
		}
	}

	return out
}

// fromCoreParts maps wire parts to content parts, skipping tool-result parts
// (handled by attachResult) and unknown types.
func fromCoreParts(parts []agentclient.CorePart) []content.Part {
	out := make([]content.Part, 0, len(parts))
	for _, p := range parts {
		switch p.Type {
		case agentclient.PartText:
			out = append(out, content.Text{Text: p.Text})
		case agentclient.PartImage:
			out = append(out, content.Image{URL: p.Image})
		case agentclient.PartFile:
			out = append(out, content.File{MimeType: p.MimeType, Data: p.Data})
		case agentclient.PartReasoning:
			out = append(out, content.Reasoning{Text: p.Text})
		case agentclient.PartRedactedReasoning:
			out = append(out, content.RedactedReasoning{Data: p.Data})
		case agentclient.PartToolCall:
			out = append(out, content.ToolCall{ID: p.ToolCallID, Name: p.ToolName, Args: p.Args})
		}
	}
	return out
}

// attachResult sets the result fields on the ToolCall matching p, looking in
// current first (the message being built, may be nil), then backward through
// prior assistant messages.
func attachResult(prior []message.Message, current *message.Message, p agentclient.CorePart) {
	set := func(m *message.Message, i int) {
		tc := m.Parts[i].(content.ToolCall)
		tc.Result = p.Result
		tc.HasResult = true
		tc.IsError = p.IsError
		m.Parts[i] = tc
	}

	if current != nil {
		if i := current.FindToolCall(p.ToolCallID); i >= 0 {
			set(current, i)
			return
		}
	}

	for j := len(prior) - 1; j >= 0; j-- {
		if prior[j].Role != role.Assistant {
			continue
		}
		if i := prior[j].FindToolCall(p.ToolCallID); i >= 0 {
			set(&prior[j], i)
			return
		}
	}
}

// flattenText joins the text parts of wire content into one string, the
// stored form of system messages.
func flattenText(c agentclient.CoreContent) string {
	if c.IsString() {
		return c.Text
	}

	var texts []string
	for _, p := range c.Parts {
		if p.Type == agentclient.PartText {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}
