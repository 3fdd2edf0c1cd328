package runner

import (
	"errors"
	"fmt"
)

// ErrResourceUnavailable is reported when a definition requires a resource
// but the runner was constructed without a provisioner. It surfaces wrapped
// in an *AcquisitionError so callers can treat both conditions uniformly.
var ErrResourceUnavailable = errors.New("resource required but no provisioner configured")

// AcquisitionError indicates that provisioning itself failed. It is fatal to
// the run: no backend call is made, nothing is recorded, nothing is released.
type AcquisitionError struct {
	Cause error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("resource acquisition failed: %v", e.Cause)
}

// Unwrap exposes the provisioner's error for errors.Is / errors.As.
func (e *AcquisitionError) Unwrap() error { return e.Cause }

// BackendError indicates that the unit of work itself failed. It is reported
// to the caller only after observability and cleanup have completed, and it
// always carries the backend's original error as its cause.
type BackendError struct {
	Cause error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend execution failed: %v", e.Cause)
}

// Unwrap exposes the backend's error for errors.Is / errors.As.
func (e *BackendError) Unwrap() error { return e.Cause }
