// Package telemetry contains ObservabilitySink implementations. Sinks record
// run outcomes best-effort: the runner treats every sink error as non-fatal,
// so implementations here are free to fail loudly without affecting runs.
package telemetry
