// Package rules loads trigger-word tables.
//
// A table is immutable once loaded and may be shared by concurrently running
// detectors. Four kinds exist:
//   - naive: the word must be preceded by a comma;
//   - forward: the word must be followed by a comma;
//   - pair: a first word and one of its followers need a comma between them;
//   - typical: a sentence containing the word usually contains a comma.
//
// Tables come from delimited text files ("word;confidence"), YAML documents
// or the embedded Hungarian defaults.
package rules
