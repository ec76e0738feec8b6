package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/chatwire/pkg/chats/content"
	"github.com/germanamz/chatwire/pkg/chats/message"
	"github.com/germanamz/chatwire/pkg/chats/role"
)

func TestToRenderMessage_RoundTripText(t *testing.T) {
	m, err := ToMessage(NewUserText("hello world"))
	require.NoError(t, err)

	rm, err := ToRenderMessage(m)
	require.NoError(t, err)
	require.Len(t, rm.Parts, 1)
	assert.Equal(t, RenderText, rm.Parts[0].Kind)
	assert.Equal(t, "hello world", rm.Parts[0].Text)
}

func TestToRenderMessage_StringForm(t *testing.T) {
	m := message.NewText(role.Assistant, "plain answer")

	rm, err := ToRenderMessage(m)
	require.NoError(t, err)
	require.Len(t, rm.Parts, 1)
	assert.Equal(t, "plain answer", rm.Parts[0].Text)
}

func TestToRenderMessage_ToolCallArgsText(t *testing.T) {
	m := message.New(role.Assistant, content.ToolCall{
		ID:        "t1",
		Name:      "getWeather",
		Args:      map[string]any{"location": "SF", "unit": "c"},
		Result:    "sunny",
		HasResult: true,
	})

	rm, err := ToRenderMessage(m)
	require.NoError(t, err)
	require.Len(t, rm.Parts, 1)

	p := rm.Parts[0]
	assert.Equal(t, RenderToolCall, p.Kind)
	assert.JSONEq(t, `{"location":"SF","unit":"c"}`, p.ArgsText)
	assert.Equal(t, "sunny", p.Result)
	assert.True(t, p.HasResult)
}

func TestToRenderMessage_StreamingArgsText(t *testing.T) {
	// Arguments still streaming in: show the raw buffer as-is.
	m := message.New(role.Assistant, content.ToolCall{ID: "t1", Name: "getWeather", ArgsText: `{"loc`})

	rm, err := ToRenderMessage(m)
	require.NoError(t, err)
	assert.Equal(t, `{"loc`, rm.Parts[0].ArgsText)

	// No args at all: an empty object, never an empty string.
	m = message.New(role.Assistant, content.ToolCall{ID: "t2", Name: "noArgs"})
	rm, err = ToRenderMessage(m)
	require.NoError(t, err)
	assert.Equal(t, "{}", rm.Parts[0].ArgsText)
}

func TestToRenderMessage_RedactedReasoningRendersAsReasoning(t *testing.T) {
	m := message.New(role.Assistant, content.RedactedReasoning{Data: "opaque"})

	rm, err := ToRenderMessage(m)
	require.NoError(t, err)
	assert.Equal(t, RenderReasoning, rm.Parts[0].Kind)
	assert.Equal(t, "opaque", rm.Parts[0].Text)
}

func TestToRenderMessage_RunningMessageRendersPartialContent(t *testing.T) {
	m := message.New(role.Assistant, content.Text{Text: "partial ans"})
	m.Status = message.Status{Type: message.StatusRunning}

	rm, err := ToRenderMessage(m)
	require.NoError(t, err)
	assert.Equal(t, message.StatusRunning, rm.Status.Type)
	assert.Equal(t, "partial ans", rm.Parts[0].Text)
}

func TestToRenderMessage_ToolRoleRejected(t *testing.T) {
	m := message.New(role.Tool)

	_, err := ToRenderMessage(m)
	assert.Error(t, err)
}

func TestToRenderMessage_SkipsUnknownParts(t *testing.T) {
	m := message.New(role.Assistant, customPart{}, content.Text{Text: "kept"})

	rm, err := ToRenderMessage(m)
	require.NoError(t, err)
	require.Len(t, rm.Parts, 1)
	assert.Equal(t, "kept", rm.Parts[0].Text)
}

type customPart struct{}

func (customPart) PartKind() string { return "custom" }
