package telemetry

import (
	"context"
	"sync"

	"github.com/formforge/formforge/core"
)

// Recorder is an in-memory sink capturing every RunRecord it receives.
// Useful in tests and examples to assert on observability behavior.
type Recorder struct {
	mu      sync.Mutex
	records []core.RunRecord
	err     error
}

// NewRecorder constructs an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Fail makes every subsequent Record return err while still capturing the
// record; pass nil to recover. Lets tests exercise the runner's
// swallow-and-log policy.
func (r *Recorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Record implements core.ObservabilitySink.
func (r *Recorder) Record(_ context.Context, rec core.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return r.err
}

// Records returns a copy of the captured records.
func (r *Recorder) Records() []core.RunRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.RunRecord, len(r.records))
	copy(out, r.records)
	return out
}
