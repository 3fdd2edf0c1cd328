// Package runner implements the execution orchestrator. A Runner wraps a
// single unit of backend work with an optional externally-provisioned
// ephemeral resource, mandatory best-effort outcome recording, and guaranteed
// resource teardown on every exit path.
//
// The lifecycle of one run:
//
//	NOT_STARTED -> RESOURCE_PENDING? -> EXECUTING -> (SUCCEEDED | FAILED) -> RELEASING? -> DONE
//
// RESOURCE_PENDING is skipped when the definition does not require a
// resource; RELEASING is skipped when none was acquired. Primary-path errors
// (acquisition, backend) propagate to the caller with their cause intact;
// secondary-path errors (observability, release) are isolated and logged,
// never surfaced. The runner does not retry, rate-limit or chain steps.
package runner
