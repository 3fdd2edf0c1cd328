package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formforge/formforge/core"
	"github.com/formforge/formforge/logging"
)

// Interface compliance (compile-time assertions)
var (
	_ core.ObservabilitySink = (*LoggingSink)(nil)
	_ core.ObservabilitySink = (*Recorder)(nil)
)

func TestRecorder_CapturesAndFails(t *testing.T) {
	rec := NewRecorder()

	require.NoError(t, rec.Record(context.Background(), core.RunRecord{ResourceID: "sbx-1"}))

	boom := errors.New("sink down")
	rec.Fail(boom)
	err := rec.Record(context.Background(), core.RunRecord{Err: errors.New("run failed")})
	assert.ErrorIs(t, err, boom)

	// Records are captured even while failing.
	records := rec.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "sbx-1", records[0].ResourceID)
}

func TestLoggingSink_NeverErrors(t *testing.T) {
	sink := NewLoggingSink(logging.NoOpLogger{})

	assert.NoError(t, sink.Record(context.Background(), core.RunRecord{
		Output:   &core.TaskOutput{Text: "ok"},
		Duration: 10 * time.Millisecond,
	}))
	assert.NoError(t, sink.Record(context.Background(), core.RunRecord{
		Err: errors.New("backend failed"),
	}))
}
