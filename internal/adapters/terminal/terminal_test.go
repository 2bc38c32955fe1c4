package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInteractive_NonFileStreams(t *testing.T) {
	adapter := NewAdapter(strings.NewReader(""), &bytes.Buffer{})

	assert.False(t, adapter.IsInteractive())
	assert.ErrorIs(t, adapter.EnsureInteractive(), ErrNotInteractive)
}

func TestIsInteractive_NilStreams(t *testing.T) {
	adapter := NewAdapter(nil, nil)

	assert.False(t, adapter.IsInteractive())
}
