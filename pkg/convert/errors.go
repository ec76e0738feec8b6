package convert

import "fmt"

// FormatError reports a malformed input message shape. It is returned
// synchronously, before any transcript mutation or stream activity.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "convert: " + e.Reason
}

// UnsupportedPartError reports a content-part type the outbound path cannot
// represent on the wire.
type UnsupportedPartError struct {
	Kind string
}

func (e *UnsupportedPartError) Error() string {
	return fmt.Sprintf("convert: unsupported part type %q", e.Kind)
}
