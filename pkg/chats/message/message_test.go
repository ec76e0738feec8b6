package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/chatwire/pkg/chats/content"
	"github.com/germanamz/chatwire/pkg/chats/role"
)

func TestNew_SequenceForm(t *testing.T) {
	m := New(role.User, content.Text{Text: "hi"}, content.Image{URL: "u"})

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, role.User, m.Role)
	assert.False(t, m.IsStringForm())
	assert.Len(t, m.Parts, 2)
}

func TestNewText_StringForm(t *testing.T) {
	m := NewText(role.System, "be helpful")

	assert.True(t, m.IsStringForm())
	assert.Equal(t, "be helpful", m.TextContent())
}

func TestPromote(t *testing.T) {
	m := NewText(role.Assistant, "partial answer")
	m.Promote()

	require.False(t, m.IsStringForm())
	require.Len(t, m.Parts, 1)
	assert.Equal(t, content.Text{Text: "partial answer"}, m.Parts[0])
	assert.Empty(t, m.Text)

	// Promoting twice is a no-op.
	m.Promote()
	assert.Len(t, m.Parts, 1)
}

func TestPromote_EmptyText(t *testing.T) {
	m := NewText(role.Assistant, "")
	m.Promote()

	require.NotNil(t, m.Parts)
	assert.Empty(t, m.Parts)
}

func TestTextContent_SequenceForm(t *testing.T) {
	m := New(role.Assistant,
		content.Text{Text: "Hello "},
		content.ToolCall{ID: "t1", Name: "getWeather"},
		content.Text{Text: "world"},
	)

	assert.Equal(t, "Hello world", m.TextContent())
}

func TestFindToolCall(t *testing.T) {
	m := New(role.Assistant,
		content.Text{Text: "calling"},
		content.ToolCall{ID: "t1", Name: "getWeather"},
		content.Text{Text: "and"},
		content.ToolCall{ID: "t2", Name: "search"},
	)

	assert.Equal(t, 1, m.FindToolCall("t1"))
	assert.Equal(t, 3, m.FindToolCall("t2"))
	assert.Equal(t, -1, m.FindToolCall("t9"))
}

func TestToolCalls(t *testing.T) {
	m := New(role.Assistant,
		content.ToolCall{ID: "t1"},
		content.Text{Text: "x"},
		content.ToolCall{ID: "t2"},
	)

	calls := m.ToolCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "t1", calls[0].ID)
	assert.Equal(t, "t2", calls[1].ID)
}

func TestCloneParts_NoAliasing(t *testing.T) {
	m := New(role.Assistant, content.Text{Text: "a"})
	cp := m.CloneParts()
	cp.Parts[0] = content.Text{Text: "b"}

	assert.Equal(t, content.Text{Text: "a"}, m.Parts[0])
}

func TestRunning(t *testing.T) {
	m := New(role.Assistant)
	assert.False(t, m.Running())

	m.Status = Status{Type: StatusRunning}
	assert.True(t, m.Running())
}
