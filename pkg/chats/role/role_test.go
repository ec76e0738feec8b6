package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{System, User, Assistant, Tool} {
		assert.True(t, r.Valid(), "role %q should be valid", r)
	}

	assert.False(t, Role("moderator").Valid())
	assert.False(t, Role("").Valid())
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "assistant", Assistant.String())
	assert.Equal(t, "tool", Tool.String())
}
