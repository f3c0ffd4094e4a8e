package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Disabled is the path value that switches a table off.
const Disabled = "-"

// Source names where one table comes from.
type Source struct {
	Kind    Kind
	Path    string // "" embedded default, Disabled to skip
	Options Options
}

// Load reads and validates the rule file at path, consulting cache first.
// A nil cache disables caching.
func Load(path string, kind Kind, opts Options, cache *Cache) (*Table, error) {
	// #nosec G304 -- path comes from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	key := KeyFor(path, data, kind, opts)
	if t, ok, err := cache.Get(key); err == nil && ok {
		return t, nil
	}

	t, err := Parse(path, data, kind, opts)
	if err != nil {
		return nil, err
	}
	// ошибки кэша не фатальны
	_ = cache.Put(key, t)
	return t, nil
}

// LoadAll resolves every source in order and skips disabled ones. All load
// errors are joined so a broken configuration is reported in one go.
func LoadAll(sources []Source, cache *Cache) ([]*Table, error) {
	tables := make([]*Table, 0, len(sources))
	var errs []error
	for _, src := range sources {
		var (
			t   *Table
			err error
		)
		switch src.Path {
		case Disabled:
			continue
		case "":
			t, err = Default(src.Kind, src.Options)
		default:
			t, err = Load(src.Path, src.Kind, src.Options, cache)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s table: %w", src.Kind, err))
			continue
		}
		tables = append(tables, t)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return tables, nil
}

// GuessKind infers the kind of a rule file from a YAML "kind" field or from
// the file name (naive.csv, naive_forward.csv, pair.csv, typical.csv).
func GuessKind(path string, data []byte) (Kind, error) {
	if IsYAML(path) {
		if k, ok := DeclaredKind(data); ok {
			return k, nil
		}
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if k, err := ParseKind(base); err == nil {
		return k, nil
	}
	return 0, fmt.Errorf("%s: cannot infer rule kind from the file name, pass --kind", path)
}
