package backend

import (
	"context"
	"sync"

	"github.com/formforge/formforge/core"
)

// Mock is a lightweight in-memory ExecutionBackend useful for tests,
// examples and the "mock" provider of the daemon. Safe for concurrent use.
type Mock struct {
	mu        sync.RWMutex
	responses map[string]string
	fallback  string
	err       error
}

// NewMock constructs a Mock with an empty canned-response table.
func NewMock() *Mock {
	return &Mock{responses: make(map[string]string)}
}

// AddResponse registers a deterministic completion for an input text.
func (m *Mock) AddResponse(input, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[input] = response
}

// SetFallback sets the completion returned for unregistered inputs.
func (m *Mock) SetFallback(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = response
}

// Fail makes every subsequent Run return err; pass nil to recover.
func (m *Mock) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Run implements core.ExecutionBackend.
func (m *Mock) Run(ctx context.Context, instructions string, input core.TaskInput) (*core.TaskOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	text, ok := m.responses[input.Text]
	if !ok {
		text = m.fallback
	}
	return &core.TaskOutput{
		Text:     text,
		Metadata: map[string]any{"instructions": instructions},
	}, nil
}

// Info implements core.ExecutionBackend.
func (m *Mock) Info() core.BackendInfo {
	return core.BackendInfo{Name: "mock", Provider: "mock"}
}
