// Package token defines the lexical classes of the comma checker.
// Invariants:
//   - Token.Text is a slice of the normalised document (no copies).
//   - Token.Span matches Text exactly.
//   - Skip tokens exist only when the lexer runs with KeepSkipped; detectors never see them.
package token
