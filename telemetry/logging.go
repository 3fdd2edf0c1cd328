package telemetry

import (
	"context"

	"github.com/formforge/formforge/core"
	"github.com/formforge/formforge/logging"
)

// LoggingSink records run outcomes as structured log entries.
type LoggingSink struct {
	logger logging.Logger
}

// NewLoggingSink constructs a sink writing to the given logger.
func NewLoggingSink(logger logging.Logger) *LoggingSink {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &LoggingSink{logger: logger}
}

// Record implements core.ObservabilitySink.
func (s *LoggingSink) Record(_ context.Context, rec core.RunRecord) error {
	args := []any{
		"duration_ms", rec.Duration.Milliseconds(),
		"requires_resource", rec.Definition.RequiresResource,
	}
	if rec.ResourceID != "" {
		args = append(args, "resource_id", rec.ResourceID)
	}
	if rec.Err != nil {
		args = append(args, "error", rec.Err.Error())
		s.logger.Error("run failed", args...)
		return nil
	}
	if rec.Output != nil {
		args = append(args, "output_chars", len(rec.Output.Text))
	}
	s.logger.Info("run succeeded", args...)
	return nil
}
