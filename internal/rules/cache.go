package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// bump when Table or Rule change shape
const cacheSchemaVersion uint16 = 1

// Cache keeps parsed tables on disk, keyed by the SHA-256 of the rule source
// and the options it was parsed with. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema uint16 `msgpack:"schema"`
	Table  *Table `msgpack:"table"`
}

// CacheKey identifies one parse of one rule source.
type CacheKey [32]byte

// OpenCache opens the cache under $XDG_CACHE_HOME/<app>/rules (~/.cache when unset).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewCache(filepath.Join(base, app, "rules"))
}

// NewCache opens a cache rooted at dir, creating it if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// KeyFor hashes the rule source together with everything that changes its parse.
func KeyFor(name string, data []byte, kind Kind, opts Options) CacheKey {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	write(strconv.Itoa(int(cacheSchemaVersion)))
	write(name)
	write(kind.String())
	write(opts.delimiter())
	write(opts.Template)
	switch {
	case opts.CaseSensitive == nil:
		write("case:default")
	case *opts.CaseSensitive:
		write("case:sensitive")
	default:
		write("case:insensitive")
	}
	h.Write(data)
	var key CacheKey
	copy(key[:], h.Sum(nil))
	return key
}

func (c *Cache) pathFor(key CacheKey) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Get returns the cached table for key. A missing entry or an entry written
// by another schema version is a miss.
func (c *Cache) Get(key CacheKey) (*Table, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, fmt.Errorf("corrupt rule cache entry: %w", err)
	}
	if payload.Schema != cacheSchemaVersion || payload.Table == nil {
		return nil, false, nil
	}
	payload.Table.reindex()
	return payload.Table, true, nil
}

// Put stores t under key. The entry is written to a temp file and renamed into place.
func (c *Cache) Put(key CacheKey, t *Table) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	err = msgpack.NewEncoder(f).Encode(&cachePayload{Schema: cacheSchemaVersion, Table: t})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		// Атомарная замена
		err = os.Rename(tmp, c.pathFor(key))
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// DropAll removes every cached table.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".mp" {
			errs = append(errs, os.Remove(filepath.Join(c.dir, e.Name())))
		}
	}
	return errors.Join(errs...)
}
