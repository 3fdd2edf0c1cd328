// Package logging provides a minimal logging interface and adapters.
//
// The Logger interface defines the standard structured logging methods
// (Debug, Info, Warn, Error) that the runner, service and server use for
// observability. The package ships a slog-backed adapter and a NoOpLogger
// for silent operation (tests, minimal setups). The interface is kept
// deliberately small so callers can plug any structured logger.
package logging
