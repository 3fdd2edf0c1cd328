// Package form is the service layer tying the pieces together: it drives
// form generation through the runner, persists generated form documents, and
// validates submitted responses against them. Persistence is behind the
// Store interface with in-memory and MySQL implementations.
package form
