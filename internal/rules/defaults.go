package rules

import (
	"embed"
	"fmt"
)

//go:embed defaults/*.csv
var defaultFS embed.FS

var defaultFiles = map[Kind]string{
	Backward: "naive.csv",
	Forward:  "naive_forward.csv",
	Pair:     "pair.csv",
	Sentence: "typical.csv",
}

// DefaultFile returns the file name and content of the embedded table for kind.
func DefaultFile(kind Kind) (string, []byte, error) {
	name, ok := defaultFiles[kind]
	if !ok {
		return "", nil, fmt.Errorf("no embedded table for %s", kind)
	}
	data, err := defaultFS.ReadFile("defaults/" + name)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	return name, data, nil
}

// Default parses the embedded Hungarian table for kind. The delimiter of
// opts is ignored: embedded files always use ';'.
func Default(kind Kind, opts Options) (*Table, error) {
	name, data, err := DefaultFile(kind)
	if err != nil {
		return nil, err
	}
	opts.Delimiter = DefaultDelimiter
	return Parse("embedded:"+name, data, kind, opts)
}
