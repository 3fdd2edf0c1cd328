// Package core defines the shared data model for a single unit of generation
// work (TaskDefinition, TaskInput, TaskOutput, ResourceHandle) together with
// the capability contracts the orchestrator consumes: ExecutionBackend,
// ResourceProvisioner and ObservabilitySink. Implementations live in the
// backend, sandbox and telemetry packages; the runner package depends on the
// contracts only.
package core
