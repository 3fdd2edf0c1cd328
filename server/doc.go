// Package server exposes the form service over HTTP. The JSON API covers
// form generation, retrieval and submission; validation failures surface as
// 422 responses carrying the full violation list.
package server
