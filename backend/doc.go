// Package backend contains ExecutionBackend implementations. The openai and
// anthropic subpackages adapt the vendor SDKs; Mock in this package is a
// deterministic in-memory backend for tests, examples and offline
// development.
package backend
