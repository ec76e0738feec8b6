package stream

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Wire prefixes of the service's data-stream protocol. Each frame is one
// line of the form "<prefix>:<json>\n".
const (
	prefixText               = "0"
	prefixData               = "2"
	prefixError              = "3"
	prefixAnnotations        = "8"
	prefixToolCall           = "9"
	prefixToolResult         = "a"
	prefixToolCallStart      = "b"
	prefixToolCallDelta      = "c"
	prefixFinishMessage      = "d"
	prefixFinishStep         = "e"
	prefixStartStep          = "f"
	prefixReasoning          = "g"
	prefixSource             = "h"
	prefixRedactedReasoning  = "i"
	prefixReasoningSignature = "j"
	prefixFile               = "k"
)

// Decoder reads data-stream frames from r and yields typed Events.
// It is not safe for concurrent use.
type Decoder struct {
	scanner *bufio.Scanner
	closer  io.Closer
}

// NewDecoder creates a Decoder over r. If r is also an io.Closer, Close
// closes it.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	d := &Decoder{scanner: sc}
	if c, ok := r.(io.Closer); ok {
		d.closer = c
	}
	return d
}

// Next returns the next event from the stream. It returns io.EOF when the
// stream ends cleanly. Frames with an unrecognized prefix decode to Unknown
// rather than failing; a corrupt payload on a known prefix is an error.
func (d *Decoder) Next() (Event, error) {
	for {
		if !d.scanner.Scan() {
			if err := d.scanner.Err(); err != nil {
				return nil, fmt.Errorf("stream: read frame: %w", err)
			}
			return nil, io.EOF
		}

		line := d.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		prefix, payload, ok := strings.Cut(line, ":")
		if !ok {
			return Unknown{Raw: line}, nil
		}

		ev, err := decodeFrame(prefix, payload)
		if err != nil {
			return nil, err
		}
		return ev, nil
	}
}

// Close releases the underlying reader, if it is closable.
func (d *Decoder) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

func decodeFrame(prefix, payload string) (Event, error) {
	switch prefix {
	case prefixText:
		var text string
		if err := unmarshal(prefix, payload, &text); err != nil {
			return nil, err
		}
		return TextDelta{Text: text}, nil

	case prefixReasoning:
		var text string
		if err := unmarshal(prefix, payload, &text); err != nil {
			return nil, err
		}
		return ReasoningDelta{Text: text}, nil

	case prefixRedactedReasoning:
		var body struct {
			Data string `json:"data"`
		}
		if err := unmarshal(prefix, payload, &body); err != nil {
			return nil, err
		}
		return RedactedReasoningDelta{Data: body.Data}, nil

	case prefixToolCallStart:
		var body struct {
			ToolCallID string `json:"toolCallId"`
			ToolName   string `json:"toolName"`
		}
		if err := unmarshal(prefix, payload, &body); err != nil {
			return nil, err
		}
		return ToolCallStart{ToolCallID: body.ToolCallID, ToolName: body.ToolName}, nil

	case prefixToolCallDelta:
		var body struct {
			ToolCallID    string `json:"toolCallId"`
			ArgsTextDelta string `json:"argsTextDelta"`
		}
		if err := unmarshal(prefix, payload, &body); err != nil {
			return nil, err
		}
		return ToolCallDelta{ToolCallID: body.ToolCallID, ArgsTextDelta: body.ArgsTextDelta}, nil

	case prefixToolCall:
		var body struct {
			ToolCallID string         `json:"toolCallId"`
			ToolName   string         `json:"toolName"`
			Args       map[string]any `json:"args"`
		}
		if err := unmarshal(prefix, payload, &body); err != nil {
			return nil, err
		}
		return ToolCall{ToolCallID: body.ToolCallID, ToolName: body.ToolName, Args: body.Args}, nil

	case prefixToolResult:
		var body struct {
			ToolCallID string `json:"toolCallId"`
			Result     any    `json:"result"`
			IsError    bool   `json:"isError"`
		}
		if err := unmarshal(prefix, payload, &body); err != nil {
			return nil, err
		}
		return ToolResult{ToolCallID: body.ToolCallID, Result: body.Result, IsError: body.IsError}, nil

	case prefixFile:
		var body struct {
			MimeType string `json:"mimeType"`
			Data     string `json:"data"`
			URL      string `json:"url"`
		}
		if err := unmarshal(prefix, payload, &body); err != nil {
			return nil, err
		}
		// Some services announce URL-addressed images on the file channel.
		if body.URL != "" && body.Data == "" {
			return Image{URL: body.URL}, nil
		}
		return File{MimeType: body.MimeType, Data: body.Data}, nil

	case prefixStartStep:
		var body struct {
			MessageID string `json:"messageId"`
		}
		if err := unmarshal(prefix, payload, &body); err != nil {
			return nil, err
		}
		return StartStep{MessageID: body.MessageID}, nil

	case prefixFinishStep:
		var body struct {
			FinishReason string `json:"finishReason"`
		}
		if err := unmarshal(prefix, payload, &body); err != nil {
			return nil, err
		}
		return FinishStep{Reason: body.FinishReason}, nil

	case prefixFinishMessage:
		var body struct {
			FinishReason string `json:"finishReason"`
		}
		if err := unmarshal(prefix, payload, &body); err != nil {
			return nil, err
		}
		return FinishMessage{Reason: body.FinishReason}, nil

	case prefixError:
		var msg string
		if err := unmarshal(prefix, payload, &msg); err != nil {
			return nil, err
		}
		return Error{Message: msg}, nil

	case prefixData, prefixAnnotations, prefixSource, prefixReasoningSignature:
		return Unknown{Prefix: prefix, Raw: payload}, nil

	default:
		return Unknown{Prefix: prefix, Raw: payload}, nil
	}
}

func unmarshal(prefix, payload string, v any) error {
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("stream: frame %q: %w", prefix, err)
	}
	return nil
}
