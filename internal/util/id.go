// Package util contains small internal helpers that have not earned a place
// in the public API.
package util

import "github.com/google/uuid"

// NewID returns a fresh globally unique identifier.
func NewID() string { return uuid.NewString() }
