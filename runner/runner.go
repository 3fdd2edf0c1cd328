package runner

import (
	"context"
	"time"

	"github.com/formforge/formforge/core"
	"github.com/formforge/formforge/logging"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Provisioner supplies ephemeral execution resources. Optional: when
	// nil, definitions requiring a resource fail with an *AcquisitionError
	// wrapping ErrResourceUnavailable.
	Provisioner core.ResourceProvisioner
	// Sink records run outcomes. Optional; sink failures never affect the
	// run outcome.
	Sink core.ObservabilitySink
	// Logger receives isolated secondary-path failures.
	Logger logging.Logger
}

// Runner orchestrates single units of backend work. Runs are independent:
// each owns its own resource handle and derived input/output values, so
// concurrent Run calls need no coordination.
type Runner struct {
	backend     core.ExecutionBackend
	provisioner core.ResourceProvisioner
	sink        core.ObservabilitySink
	logger      logging.Logger
}

// New constructs a Runner for the given backend with optional overrides.
func New(backend core.ExecutionBackend, optFns ...func(o *Options)) *Runner {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{
		backend:     backend,
		provisioner: opts.Provisioner,
		sink:        opts.Sink,
		logger:      opts.Logger,
	}
}

// Run executes one unit of work. When the definition requires a resource it
// is acquired first and released on every exit path after acquisition has
// succeeded. The outcome is recorded with the sink before teardown; a backend
// failure is re-surfaced unchanged in cause after recording and cleanup.
func (r *Runner) Run(ctx context.Context, def core.TaskDefinition, input core.TaskInput) (*core.TaskOutput, error) {
	start := time.Now()
	status := core.StatusNotStarted
	transition := func(next core.RunStatus) {
		status = next
		r.logger.Debug("run state", "state", string(status))
	}

	runInput := input
	var handle *core.ResourceHandle

	if def.RequiresResource {
		transition(core.StatusResourcePending)
		if r.provisioner == nil {
			return nil, &AcquisitionError{Cause: ErrResourceUnavailable}
		}
		h, err := r.provisioner.Acquire(ctx, def.ResourceConfig)
		if err != nil {
			// Nothing was acquired: no backend call, no record, no teardown.
			return nil, &AcquisitionError{Cause: err}
		}
		handle = h
		// Scoped teardown: fires on normal return, backend error, or a
		// panic inside the backend call, exactly once per acquired handle.
		defer func() {
			transition(core.StatusReleasing)
			r.release(ctx, handle)
			transition(core.StatusDone)
		}()
		runInput = input.WithContextValue(core.ContextKeyResourceID, h.ID)
	}

	transition(core.StatusExecuting)
	out, err := r.backend.Run(ctx, def.Instructions, runInput)
	elapsed := time.Since(start)

	rec := core.RunRecord{
		Definition: def,
		Input:      runInput,
		Duration:   elapsed,
	}
	if handle != nil {
		rec.ResourceID = handle.ID
	}

	if err != nil {
		transition(core.StatusFailed)
		rec.Err = err
		r.record(ctx, rec)
		return nil, &BackendError{Cause: err}
	}

	transition(core.StatusSucceeded)
	if out == nil {
		out = &core.TaskOutput{}
	}
	if out.Metadata == nil {
		out.Metadata = make(map[string]any, 2)
	}
	out.Metadata[core.MetaDurationMS] = elapsed.Milliseconds()
	if handle != nil {
		out.Metadata[core.MetaResourceID] = handle.ID
	}

	rec.Output = out
	r.record(ctx, rec)

	r.logger.Debug("run completed",
		"status", string(status),
		"duration_ms", elapsed.Milliseconds(),
		"resource_id", rec.ResourceID,
	)

	return out, nil
}

// record isolates sink failures: recording is mandatory but best-effort, and
// must never mask or replace the primary run outcome.
func (r *Runner) record(ctx context.Context, rec core.RunRecord) {
	if r.sink == nil {
		return
	}
	if err := r.sink.Record(ctx, rec); err != nil {
		r.logger.Warn("observability sink failed", "error", err)
	}
}

// release is the isolated teardown path; release failures are logged and
// discarded so they cannot override the primary outcome.
func (r *Runner) release(ctx context.Context, handle *core.ResourceHandle) {
	if err := r.provisioner.Release(ctx, handle.ID); err != nil {
		r.logger.Warn("resource release failed", "resource_id", handle.ID, "error", err)
	}
}
