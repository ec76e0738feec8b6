package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/chatwire/pkg/chats/content"
	"github.com/germanamz/chatwire/pkg/chats/message"
	"github.com/germanamz/chatwire/pkg/chats/role"
)

func TestAppendDoesNotMutateInput(t *testing.T) {
	base := Transcript{message.NewText(role.User, "one")}
	next := Append(base, message.NewText(role.User, "two"))

	assert.Len(t, base, 1)
	assert.Len(t, next, 2)
}

func TestLast(t *testing.T) {
	_, ok := Transcript{}.Last()
	assert.False(t, ok)

	tr := Transcript{message.NewText(role.User, "hi")}
	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, "hi", last.Text)
}

func TestSealNoOpenMessage(t *testing.T) {
	tr := Transcript{message.NewText(role.User, "hi")}
	sealed := Seal(tr, message.Status{Type: message.StatusComplete, Reason: message.ReasonStop})
	assert.Equal(t, tr, sealed)
}

func TestAttachToolResult(t *testing.T) {
	asst := message.New(role.Assistant,
		content.ToolCall{ID: "tc-1", Name: "confirm", Args: map[string]any{"q": "proceed?"}},
	)
	asst.Status = message.Status{Type: message.StatusComplete, Reason: message.ReasonStop}
	tr := Transcript{message.NewText(role.User, "do it"), asst}

	next, ok := AttachToolResult(tr, "tc-1", "yes", false)
	require.True(t, ok)

	tc := next[1].Parts[0].(content.ToolCall)
	assert.True(t, tc.HasResult)
	assert.Equal(t, "yes", tc.Result)
	assert.False(t, tc.IsError)

	// The input transcript is untouched.
	orig := tr[1].Parts[0].(content.ToolCall)
	assert.False(t, orig.HasResult)
}

func TestAttachToolResult_SearchesBackward(t *testing.T) {
	first := message.New(role.Assistant, content.ToolCall{ID: "tc-1", Name: "a"})
	second := message.New(role.Assistant, content.ToolCall{ID: "tc-2", Name: "b"})
	tr := Transcript{first, message.NewText(role.User, "next"), second}

	next, ok := AttachToolResult(tr, "tc-1", 42, true)
	require.True(t, ok)

	tc := next[0].Parts[0].(content.ToolCall)
	assert.True(t, tc.HasResult)
	assert.True(t, tc.IsError)
}

func TestAttachToolResult_NoMatch(t *testing.T) {
	tr := Transcript{message.New(role.Assistant, content.Text{Text: "hi"})}
	next, ok := AttachToolResult(tr, "ghost", nil, false)
	assert.False(t, ok)
	assert.Equal(t, tr, next)
}
