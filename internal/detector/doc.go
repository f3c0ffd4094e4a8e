// Package detector implements the four single-pass missing-comma detectors.
//
// Every detector walks a token slice once, tracks the (row, column) position
// of the current token and emits diagnostics positioned before it steps over
// that token. Columns count code points: each token advances the column by
// its width plus one for the implied separator, a line break resets the
// column to 1 and moves to the next row.
//
// Detectors never fail and never mutate the token slice, so the same slice
// can be scanned by several detectors at once. A single detector value is
// not safe for concurrent use; Set.Fresh hands out independent copies.
package detector
