package core

// Metadata keys the runner merges into a TaskOutput before handing it to the
// caller. Backends may set additional keys (token counts etc.); the runner
// never discards them.
const (
	// MetaDurationMS is the wall-clock duration of the run in milliseconds.
	MetaDurationMS = "durationMs"
	// MetaResourceID is the id of the ephemeral resource the run executed
	// with, present only when one was acquired.
	MetaResourceID = "resourceId"
	// MetaPromptTokens / MetaCompletionTokens are set by backends that
	// report token usage.
	MetaPromptTokens     = "promptTokens"
	MetaCompletionTokens = "completionTokens"
)

// ContextKeyResourceID is the TaskInput context key under which the runner
// exposes the acquired resource id to the backend.
const ContextKeyResourceID = "resourceId"

// TaskDefinition describes one unit of backend work. Definitions are
// immutable once constructed and safe to share across concurrent runs.
type TaskDefinition struct {
	// Instructions is the system-level task description handed verbatim to
	// the execution backend.
	Instructions string `json:"instructions"`
	// RequiresResource requests an ephemeral execution resource for the
	// duration of the run.
	RequiresResource bool `json:"requires_resource,omitempty"`
	// ResourceConfig is passed opaquely to the provisioner.
	ResourceConfig map[string]any `json:"resource_config,omitempty"`
}

// TaskInput carries the caller-supplied input for one run. The runner never
// mutates an input in place; resource metadata is injected on a derived copy.
type TaskInput struct {
	Text    string         `json:"text"`
	Context map[string]any `json:"context,omitempty"`
}

// WithContextValue returns a derived input whose context contains the given
// key. The receiver's context map is copied, not aliased.
func (i TaskInput) WithContextValue(key string, value any) TaskInput {
	derived := TaskInput{Text: i.Text, Context: make(map[string]any, len(i.Context)+1)}
	for k, v := range i.Context {
		derived.Context[k] = v
	}
	derived.Context[key] = value
	return derived
}

// TaskOutput is produced once per run. The runner appends duration and
// resource metadata before returning it; it is not mutated afterwards.
type TaskOutput struct {
	Text string `json:"text"`
	// Raw is the unprocessed backend response, when the backend chooses to
	// expose it.
	Raw      any            `json:"raw,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ResourceHandle identifies an acquired ephemeral resource. A handle is
// exclusively owned by the run that acquired it and released by that run;
// handles are never cached or shared.
type ResourceHandle struct {
	ID string `json:"id"`
}

// RunStatus tracks the lifecycle of a single run. A run is not reusable:
// StatusDone is terminal.
type RunStatus string

const (
	StatusNotStarted      RunStatus = "not_started"
	StatusResourcePending RunStatus = "resource_pending"
	StatusExecuting       RunStatus = "executing"
	StatusSucceeded       RunStatus = "succeeded"
	StatusFailed          RunStatus = "failed"
	StatusReleasing       RunStatus = "releasing"
	StatusDone            RunStatus = "done"
)
