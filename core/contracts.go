package core

import (
	"context"
	"time"
)

// BackendInfo contains metadata about an ExecutionBackend implementation.
type BackendInfo struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// ExecutionBackend performs the actual unit of work given a task description.
// Implementations must be safe for concurrent use.
type ExecutionBackend interface {
	// Run executes the instructions against the given input and returns the
	// produced output. The context carries the caller's deadline and
	// cancellation; implementations must honor it.
	Run(ctx context.Context, instructions string, input TaskInput) (*TaskOutput, error)

	// Info returns metadata describing the backend implementation.
	Info() BackendInfo
}

// ResourceProvisioner acquires and releases ephemeral execution resources.
// Release failures are treated as best-effort by callers, not by this
// contract: implementations report them, the runner swallows them.
type ResourceProvisioner interface {
	Acquire(ctx context.Context, config map[string]any) (*ResourceHandle, error)
	Release(ctx context.Context, id string) error
}

// RunRecord is the outcome event handed to an ObservabilitySink after every
// run: exactly one of Output / Err is set.
type RunRecord struct {
	Definition TaskDefinition
	Input      TaskInput
	Output     *TaskOutput
	Err        error
	Duration   time.Duration
	ResourceID string
}

// ObservabilitySink records run outcomes. Sinks must never be assumed to
// succeed; callers treat any returned error as non-fatal.
type ObservabilitySink interface {
	Record(ctx context.Context, rec RunRecord) error
}
