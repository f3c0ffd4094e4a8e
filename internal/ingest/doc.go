// Package ingest extracts checkable text from documents on disk.
//
// Plain text and Markdown are read as is. Word documents (.docx) yield one
// line per paragraph, PDF files one block per page. Extracted text is not
// reformatted further, so row and column positions refer to the extracted text.
package ingest
