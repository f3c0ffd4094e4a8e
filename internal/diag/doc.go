// Package diag defines the diagnostic model shared by detectors, the driver
// and the renderers.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Row and Col are the position tracked by the detector that raised it
//     (1-based line, 1-based code point column). Renderers print them as is.
//   - Primary is the byte span of the token the detector was looking at. It is
//     used where byte precision matters (carets, SARIF regions, LSP ranges).
//   - Mistake carries the rendered explanation and the rule confidence.
//   - Severity is derived from the confidence with SeverityFor; IO and
//     configuration problems are errors.
//
// Package diag does no formatting beyond the short one-line form; rendering
// lives in internal/diagfmt.
package diag
