package agentclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreContent_StringForm(t *testing.T) {
	msg := CoreMessage{Role: "system", Content: NewTextContent("be nice")}

	b, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"system","content":"be nice"}`, string(b))

	var back CoreMessage
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Content.IsString())
	assert.Equal(t, "be nice", back.Content.Text)
}

func TestCoreContent_PartForm(t *testing.T) {
	msg := CoreMessage{Role: "assistant", Content: NewPartContent([]CorePart{
		{Type: PartText, Text: "checking"},
		{Type: PartToolCall, ToolCallID: "t1", ToolName: "getWeather", Args: map[string]any{"location": "SF"}},
	})}

	b, err := json.Marshal(msg)
	require.NoError(t, err)

	var back CoreMessage
	require.NoError(t, json.Unmarshal(b, &back))
	assert.False(t, back.Content.IsString())
	require.Len(t, back.Content.Parts, 2)
	assert.Equal(t, PartToolCall, back.Content.Parts[1].Type)
	assert.Equal(t, map[string]any{"location": "SF"}, back.Content.Parts[1].Args)
}

func TestCoreContent_EmptyPartsMarshalAsArray(t *testing.T) {
	b, err := json.Marshal(NewPartContent(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestCoreContent_UnmarshalRejectsObjects(t *testing.T) {
	var c CoreContent
	assert.Error(t, json.Unmarshal([]byte(`{"oops":1}`), &c))
}
