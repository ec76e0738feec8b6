package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/chatwire/pkg/agentclient"
	"github.com/germanamz/chatwire/pkg/chats/content"
	"github.com/germanamz/chatwire/pkg/chats/role"
)

func TestFromCoreMessages_ToolMessageFoldedIntoAssistant(t *testing.T) {
	msgs := []agentclient.CoreMessage{
		{Role: "user", Content: agentclient.NewTextContent("weather in SF?")},
		{Role: "assistant", Content: agentclient.NewPartContent([]agentclient.CorePart{
			{Type: "text", Text: "Let me check."},
			{Type: "tool-call", ToolCallID: "t1", ToolName: "getWeather", Args: map[string]any{"location": "SF"}},
		})},
		{Role: "tool", Content: agentclient.NewPartContent([]agentclient.CorePart{
			{Type: "tool-result", ToolCallID: "t1", Result: "sunny"},
		})},
	}

	out := FromCoreMessages(msgs)
	require.Len(t, out, 2) // tool message dropped

	assert.Equal(t, role.User, out[0].Role)

	assistant := out[1]
	require.Len(t, assistant.Parts, 2)
	tc := assistant.Parts[1].(content.ToolCall)
	assert.Equal(t, "sunny", tc.Result)
	assert.True(t, tc.HasResult)

	// The normalized transcript renders without errors.
	for _, m := range out {
		_, err := ToRenderMessage(m)
		require.NoError(t, err)
	}
}

func TestFromCoreMessages_ResultInsideAssistantContent(t *testing.T) {
	msgs := []agentclient.CoreMessage{
		{Role: "assistant", Content: agentclient.NewPartContent([]agentclient.CorePart{
			{Type: "tool-call", ToolCallID: "t1", ToolName: "getWeather"},
			{Type: "tool-result", ToolCallID: "t1", Result: "rain", IsError: false},
		})},
	}

	out := FromCoreMessages(msgs)
	require.Len(t, out, 1)
	require.Len(t, out[0].Parts, 1) // result folded, not a separate part

	tc := out[0].Parts[0].(content.ToolCall)
	assert.Equal(t, "rain", tc.Result)
	assert.True(t, tc.HasResult)
}

func TestFromCoreMessages_OrphanResultDropped(t *testing.T) {
	msgs := []agentclient.CoreMessage{
		{Role: "user", Content: agentclient.NewTextContent("hi")},
		{Role: "tool", Content: agentclient.NewPartContent([]agentclient.CorePart{
			{Type: "tool-result", ToolCallID: "t9", Result: "lost"},
		})},
	}

	out := FromCoreMessages(msgs)
	require.Len(t, out, 1)
	assert.Equal(t, role.User, out[0].Role)
}

func TestFromCoreMessages_SystemFlattened(t *testing.T) {
	msgs := []agentclient.CoreMessage{
		{Role: "system", Content: agentclient.NewPartContent([]agentclient.CorePart{
			{Type: "text", Text: "rule one"},
			{Type: "text", Text: "rule two"},
		})},
	}

	out := FromCoreMessages(msgs)
	require.Len(t, out, 1)
	assert.True(t, out[0].IsStringForm())
	assert.Equal(t, "rule one\nrule two", out[0].Text)
}

func TestFromCoreMessages_AssistantStringFormPreserved(t *testing.T) {
	msgs := []agentclient.CoreMessage{
		{Role: "assistant", Content: agentclient.NewTextContent("plain reply")},
	}

	out := FromCoreMessages(msgs)
	require.Len(t, out, 1)
	assert.True(t, out[0].IsStringForm())
	assert.Equal(t, "plain reply", out[0].Text)
}

func TestFromCoreMessages_ResultMatchesEarlierAssistant(t *testing.T) {
	msgs := []agentclient.CoreMessage{
		{Role: "assistant", Content: agentclient.NewPartContent([]agentclient.CorePart{
			{Type: "tool-call", ToolCallID: "t1", ToolName: "getWeather"},
		})},
		{Role: "assistant", Content: agentclient.NewPartContent([]agentclient.CorePart{
			{Type: "text", Text: "still waiting"},
		})},
		{Role: "tool", Content: agentclient.NewPartContent([]agentclient.CorePart{
			{Type: "tool-result", ToolCallID: "t1", Result: "42", IsError: true},
		})},
	}

	out := FromCoreMessages(msgs)
	require.Len(t, out, 2)

	tc := out[0].Parts[0].(content.ToolCall)
	assert.Equal(t, "42", tc.Result)
	assert.True(t, tc.IsError)
}
