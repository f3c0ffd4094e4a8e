package lexer

// Options tune the lexer.
type Options struct {
	// KeepSkipped emits discarded runs (spaces, symbols) as token.Skip.
	// Only the tokenize dump uses it.
	KeepSkipped bool
}
