// Package schema models the self-describing field tree produced by the
// generation backend and consumed by the rendering layer, and implements the
// recursive validator/normalizer for submitted value trees.
//
// A field tree is flat fields plus at most one level of repeatable nested
// field groups. The one-level-deep invariant is enforced by construction:
// group children are typed as ScalarField, which cannot carry children of
// its own. Validation accumulates every violation across the whole tree
// rather than failing fast; see Validate.
package schema
