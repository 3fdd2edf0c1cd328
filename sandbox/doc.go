// Package sandbox contains ResourceProvisioner implementations. The
// provisioned resource is an opaque ephemeral execution context identified
// by its id; the runner acquires one per run and releases it on every exit
// path. HTTPProvisioner talks to an external sandbox service over REST;
// InMemoryProvisioner hands out process-local handles for tests and
// development.
package sandbox
