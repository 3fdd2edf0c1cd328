package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskInput_WithContextValue(t *testing.T) {
	original := TaskInput{
		Text:    "build a signup form",
		Context: map[string]any{"locale": "en"},
	}

	derived := original.WithContextValue(ContextKeyResourceID, "sbx-1")

	assert.Equal(t, "sbx-1", derived.Context[ContextKeyResourceID])
	assert.Equal(t, "en", derived.Context["locale"])
	assert.Equal(t, original.Text, derived.Text)

	// The original must not observe the injected key, and later mutation of
	// the derived context must not leak back.
	_, ok := original.Context[ContextKeyResourceID]
	assert.False(t, ok)
	derived.Context["locale"] = "de"
	assert.Equal(t, "en", original.Context["locale"])
}

func TestTaskInput_WithContextValueNilContext(t *testing.T) {
	derived := TaskInput{Text: "x"}.WithContextValue("k", 1)
	assert.Equal(t, 1, derived.Context["k"])
}
