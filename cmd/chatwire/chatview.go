package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/germanamz/chatwire/pkg/chats/message"
	"github.com/germanamz/chatwire/pkg/chats/role"
	"github.com/germanamz/chatwire/pkg/convert"
	"github.com/germanamz/chatwire/pkg/transcript"
)

// chatViewModel renders the transcript in a scrollable viewport. Each
// snapshot from the session replaces the rendered content wholesale; the
// view sticks to the bottom while a response is streaming.
type chatViewModel struct {
	viewport   viewport.Model
	transcript transcript.Transcript
	notices    []string // warnings and errors, appended below the transcript
	processing bool
	spinnerIdx int
	spinnerMsg string
	width      int
	ready      bool
}

func newChatView() chatViewModel {
	return chatViewModel{}
}

func (m chatViewModel) Update(msg tea.Msg) (chatViewModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m chatViewModel) View() string {
	if !m.ready {
		return ""
	}
	return m.viewport.View()
}

func (m *chatViewModel) setSize(width, height int) {
	m.width = width
	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
	m.refresh()
}

// setTranscript replaces the rendered transcript with a new snapshot.
func (m *chatViewModel) setTranscript(t transcript.Transcript) {
	m.transcript = t
	m.refresh()
}

// addNotice appends a warning or error line below the transcript.
func (m *chatViewModel) addNotice(line string) {
	m.notices = append(m.notices, line)
	m.refresh()
}

// setProcessing toggles the streaming spinner.
func (m *chatViewModel) setProcessing(on bool) {
	m.processing = on
	if on {
		m.spinnerMsg = randomThinkingMessage()
	}
	m.refresh()
}

// advanceSpinner moves the spinner one frame.
func (m *chatViewModel) advanceSpinner() {
	m.spinnerIdx++
	m.refresh()
}

// refresh re-renders the viewport content and keeps the view pinned to the
// bottom while content is still arriving.
func (m *chatViewModel) refresh() {
	if !m.ready {
		return
	}

	wasAtBottom := m.viewport.AtBottom()

	var sb strings.Builder
	for _, msg := range m.transcript {
		block := m.renderMessage(msg)
		if block == "" {
			continue
		}
		sb.WriteString(block)
		sb.WriteString("\n\n")
	}

	for _, n := range m.notices {
		sb.WriteString(n)
		sb.WriteString("\n")
	}

	if m.processing {
		frame := spinnerFrames[m.spinnerIdx%len(spinnerFrames)]
		fmt.Fprintf(&sb, "  %s %s\n",
			spinnerStyle.Render(frame),
			spinnerStyle.Render(m.spinnerMsg),
		)
	}

	m.viewport.SetContent(sb.String())
	if wasAtBottom || m.processing {
		m.viewport.GotoBottom()
	}
}

// renderMessage formats one transcript message for display.
func (m *chatViewModel) renderMessage(msg message.Message) string {
	rm, err := convert.ToRenderMessage(msg)
	if err != nil {
		return errorStyle.Render("render: " + err.Error())
	}

	switch rm.Role {
	case role.System:
		return "" // system prompts are not part of the conversation view
	case role.User:
		return m.renderUser(rm)
	default:
		return m.renderAssistant(rm)
	}
}

func (m *chatViewModel) renderUser(rm convert.RenderMessage) string {
	var sb strings.Builder
	sb.WriteString(userPrefixStyle.Render("🧑 You > "))
	for i, p := range rm.Parts {
		if i > 0 {
			sb.WriteString("\n  ")
		}
		switch p.Kind {
		case convert.RenderText:
			sb.WriteString(p.Text)
		case convert.RenderImage:
			sb.WriteString(dimStyle.Render("[image] " + truncate(p.Image, 60)))
		case convert.RenderFile:
			sb.WriteString(dimStyle.Render("[file] " + p.MimeType))
		}
	}
	return userBlockStyle.Render(sb.String())
}

func (m *chatViewModel) renderAssistant(rm convert.RenderMessage) string {
	var blocks []string

	for _, p := range rm.Parts {
		switch p.Kind {
		case convert.RenderText:
			if p.Text == "" {
				continue
			}
			blocks = append(blocks,
				answerPrefixStyle.Render("🤖 > ")+renderMarkdown(p.Text))
		case convert.RenderReasoning:
			if p.Text == "" {
				continue
			}
			blocks = append(blocks, reasoningStyle.Render("∴ "+p.Text))
		case convert.RenderToolCall:
			blocks = append(blocks, m.renderToolCall(p))
		case convert.RenderImage:
			blocks = append(blocks, dimStyle.Render("[image] "+truncate(p.Image, 60)))
		case convert.RenderFile:
			blocks = append(blocks, dimStyle.Render("[file] "+p.MimeType))
		}
	}

	if rm.Status.Type == message.StatusIncomplete {
		blocks = append(blocks,
			dimStyle.Render(fmt.Sprintf("⏹ incomplete (%s)", rm.Status.Reason)))
	}

	if len(blocks) == 0 {
		return ""
	}
	return answerBlockStyle.Render(strings.Join(blocks, "\n"))
}

// renderToolCall shows a tool invocation and, once present, its result.
func (m *chatViewModel) renderToolCall(p convert.RenderPart) string {
	argsWidth := max(m.width-20, 20)
	line := "⚙ " + toolNameStyle.Render(p.ToolName) + dimStyle.Render(" "+truncate(p.ArgsText, argsWidth))

	if !p.HasResult {
		return line + dimStyle.Render(" …")
	}

	result := formatToolResult(p.Result)
	if p.IsError {
		return line + "\n" + toolErrorStyle.Render("  ✗ "+truncate(result, argsWidth))
	}
	return line + "\n" + toolResultStyle.Render("  └ "+truncate(result, argsWidth))
}

// formatToolResult renders an arbitrary tool result compactly.
func formatToolResult(v any) string {
	switch r := v.(type) {
	case nil:
		return "done"
	case string:
		return r
	default:
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Sprintf("%v", r)
		}
		return string(b)
	}
}

// warningLine formats a fold warning for the notice area.
func warningLine(w transcript.Warning) string {
	switch w.Kind {
	case transcript.WarnOrphanResult:
		return warnStyle.Render("⚠ dropped tool result with no matching call: " + w.ToolCallID)
	case transcript.WarnStreamError:
		return warnStyle.Render("⚠ stream error: " + w.Err.Error())
	default:
		return warnStyle.Render("⚠ " + string(w.Kind))
	}
}
