package stream

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, d *Decoder) []Event {
	t.Helper()

	var events []Event
	for {
		ev, err := d.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestDecoder_TextDeltas(t *testing.T) {
	d := NewDecoder(strings.NewReader("0:\"Hel\"\n0:\"lo\"\n"))

	events := readAll(t, d)
	require.Len(t, events, 2)
	assert.Equal(t, TextDelta{Text: "Hel"}, events[0])
	assert.Equal(t, TextDelta{Text: "lo"}, events[1])
}

func TestDecoder_ToolCallLifecycle(t *testing.T) {
	wire := strings.Join([]string{
		`b:{"toolCallId":"t1","toolName":"getWeather"}`,
		`c:{"toolCallId":"t1","argsTextDelta":"{\"location\":"}`,
		`c:{"toolCallId":"t1","argsTextDelta":"\"SF\"}"}`,
		`9:{"toolCallId":"t1","toolName":"getWeather","args":{"location":"SF"}}`,
		`a:{"toolCallId":"t1","result":"sunny"}`,
	}, "\n") + "\n"

	d := NewDecoder(strings.NewReader(wire))
	events := readAll(t, d)
	require.Len(t, events, 5)

	assert.Equal(t, ToolCallStart{ToolCallID: "t1", ToolName: "getWeather"}, events[0])
	assert.Equal(t, ToolCallDelta{ToolCallID: "t1", ArgsTextDelta: `{"location":`}, events[1])

	call, ok := events[3].(ToolCall)
	require.True(t, ok)
	assert.Equal(t, "getWeather", call.ToolName)
	assert.Equal(t, map[string]any{"location": "SF"}, call.Args)

	result, ok := events[4].(ToolResult)
	require.True(t, ok)
	assert.Equal(t, "sunny", result.Result)
	assert.False(t, result.IsError)
}

func TestDecoder_ReasoningAndFile(t *testing.T) {
	wire := strings.Join([]string{
		`g:"thinking "`,
		`i:{"data":"opaque"}`,
		`k:{"mimeType":"application/pdf","data":"aGVsbG8="}`,
		`k:{"url":"https://example.com/x.png"}`,
	}, "\n") + "\n"

	d := NewDecoder(strings.NewReader(wire))
	events := readAll(t, d)
	require.Len(t, events, 4)

	assert.Equal(t, ReasoningDelta{Text: "thinking "}, events[0])
	assert.Equal(t, RedactedReasoningDelta{Data: "opaque"}, events[1])
	assert.Equal(t, File{MimeType: "application/pdf", Data: "aGVsbG8="}, events[2])
	assert.Equal(t, Image{URL: "https://example.com/x.png"}, events[3])
}

func TestDecoder_StepAndFinishFrames(t *testing.T) {
	wire := strings.Join([]string{
		`f:{"messageId":"m1"}`,
		`e:{"finishReason":"tool-calls","usage":{"promptTokens":10}}`,
		`d:{"finishReason":"stop","usage":{"promptTokens":12}}`,
	}, "\n") + "\n"

	d := NewDecoder(strings.NewReader(wire))
	events := readAll(t, d)
	require.Len(t, events, 3)

	assert.Equal(t, StartStep{MessageID: "m1"}, events[0])
	assert.Equal(t, FinishStep{Reason: "tool-calls"}, events[1])
	assert.Equal(t, FinishMessage{Reason: "stop"}, events[2])
}

func TestDecoder_ErrorFrame(t *testing.T) {
	d := NewDecoder(strings.NewReader("3:\"model overloaded\"\n"))

	ev, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, Error{Message: "model overloaded"}, ev)
}

func TestDecoder_UnknownAndIgnorableFrames(t *testing.T) {
	wire := strings.Join([]string{
		`2:[{"custom":true}]`,
		`8:[{"note":"x"}]`,
		`h:{"sourceType":"url"}`,
		`j:{"signature":"sig"}`,
		`z:{"future":"frame"}`,
		`not-a-frame`,
	}, "\n") + "\n"

	d := NewDecoder(strings.NewReader(wire))
	events := readAll(t, d)
	require.Len(t, events, 6)

	for _, ev := range events {
		assert.Equal(t, "unknown", ev.EventKind())
	}
}

func TestDecoder_SkipsBlankLines(t *testing.T) {
	d := NewDecoder(strings.NewReader("\n0:\"hi\"\n\n"))

	events := readAll(t, d)
	require.Len(t, events, 1)
	assert.Equal(t, TextDelta{Text: "hi"}, events[0])
}

func TestDecoder_CorruptKnownFrame(t *testing.T) {
	d := NewDecoder(strings.NewReader("9:{broken\n"))

	_, err := d.Next()
	assert.Error(t, err)
}

func TestDecoder_EOF(t *testing.T) {
	d := NewDecoder(strings.NewReader(""))

	_, err := d.Next()
	assert.Equal(t, io.EOF, err)
}
