// Package config loads vesszo.toml.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"vesszo/internal/rules"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "vesszo.toml"

// DefaultThreshold mirrors the checker default: findings must be more confident than this.
const DefaultThreshold = 0.30

type Config struct {
	Path  string `toml:"-"` // "" when built from defaults
	Root  string `toml:"-"` // directory rule paths are relative to
	Check Check  `toml:"check"`
	Rules Rules  `toml:"rules"`
}

type Check struct {
	Threshold      float64  `toml:"threshold"`
	Format         string   `toml:"format"`
	Sort           bool     `toml:"sort"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Jobs           int      `toml:"jobs"`
	Detectors      []string `toml:"detectors"`
	FailOn         string   `toml:"fail_on"`
}

type Rules struct {
	Delimiter     string            `toml:"delimiter"`
	Cache         bool              `toml:"cache"`
	Naive         string            `toml:"naive"`
	Forward       string            `toml:"forward"`
	Pair          string            `toml:"pair"`
	Typical       string            `toml:"typical"`
	CaseSensitive map[string]bool   `toml:"case_sensitive"`
	Templates     map[string]string `toml:"templates"`
}

var formats = []string{"plain", "pretty", "json", "sarif", "short"}

// Default returns the configuration used when no vesszo.toml exists.
func Default() Config {
	return Config{
		Check: Check{
			Threshold:      DefaultThreshold,
			Format:         "plain",
			MaxDiagnostics: 1000,
		},
		Rules: Rules{
			Delimiter: rules.DefaultDelimiter,
			Cache:     true,
		},
	}
}

// Find walks up from startDir looking for vesszo.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest vesszo.toml. Without one it returns
// Default rooted at startDir and ok == false.
func Discover(startDir string) (Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, false, err
	}
	if !ok {
		cfg := Default()
		cfg.Root, _ = filepath.Abs(startDir)
		return cfg, false, nil
	}
	cfg, err := Load(path)
	return cfg, true, err
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("rules", "delimiter") && cfg.Rules.Delimiter == "" {
		return Config{}, fmt.Errorf("%s: [rules].delimiter must not be empty", path)
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and kind names. All problems are joined.
func (c Config) Validate() error {
	var errs []error
	t := c.Check.Threshold
	if math.IsNaN(t) || t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("[check].threshold %v is outside [0, 1]", t))
	}
	if !slices.Contains(formats, c.Check.Format) {
		errs = append(errs, fmt.Errorf("[check].format %q is not one of %s", c.Check.Format, strings.Join(formats, ", ")))
	}
	if c.Check.MaxDiagnostics < 0 {
		errs = append(errs, errors.New("[check].max_diagnostics must not be negative"))
	}
	if c.Check.Jobs < 0 {
		errs = append(errs, errors.New("[check].jobs must not be negative"))
	}
	switch strings.ToLower(c.Check.FailOn) {
	case "", "never", "info", "warning", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("[check].fail_on %q is not one of never, info, warning, error", c.Check.FailOn))
	}
	for _, name := range c.Check.Detectors {
		if _, err := rules.ParseKind(name); err != nil {
			errs = append(errs, fmt.Errorf("[check].detectors: %w", err))
		}
	}
	for name := range c.Rules.CaseSensitive {
		if _, err := rules.ParseKind(name); err != nil {
			errs = append(errs, fmt.Errorf("[rules.case_sensitive]: %w", err))
		}
	}
	for name := range c.Rules.Templates {
		if _, err := rules.ParseKind(name); err != nil {
			errs = append(errs, fmt.Errorf("[rules.templates]: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Kinds returns the detector kinds selected by [check].detectors, nil meaning all.
func (c Config) Kinds() []rules.Kind {
	if len(c.Check.Detectors) == 0 {
		return nil
	}
	out := make([]rules.Kind, 0, len(c.Check.Detectors))
	for _, name := range c.Check.Detectors {
		if k, err := rules.ParseKind(name); err == nil && !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}

// Path returns the configured rule file for kind as written in the file.
func (r Rules) Path(kind rules.Kind) string {
	switch kind {
	case rules.Backward:
		return r.Naive
	case rules.Forward:
		return r.Forward
	case rules.Pair:
		return r.Pair
	case rules.Sentence:
		return r.Typical
	}
	return ""
}

// Sources lists one rule source per kind in detector order. Relative rule
// paths are resolved against Root; "" selects the embedded table, "-" disables it.
func (c Config) Sources() []rules.Source {
	out := make([]rules.Source, 0, len(rules.Kinds()))
	for _, kind := range rules.Kinds() {
		path := c.Rules.Path(kind)
		if path != "" && path != rules.Disabled && !filepath.IsAbs(path) && c.Root != "" {
			path = filepath.Join(c.Root, filepath.FromSlash(path))
		}
		opts := rules.Options{Delimiter: c.Rules.Delimiter}
		if v, ok := lookupKind(c.Rules.CaseSensitive, kind); ok {
			opts.CaseSensitive = &v
		}
		if tmpl, ok := lookupKind(c.Rules.Templates, kind); ok {
			opts.Template = tmpl
		}
		out = append(out, rules.Source{Kind: kind, Path: path, Options: opts})
	}
	return out
}

// lookupKind finds the entry for kind under any of its accepted names.
func lookupKind[V any](m map[string]V, kind rules.Kind) (V, bool) {
	for name, v := range m {
		if k, err := rules.ParseKind(name); err == nil && k == kind {
			return v, true
		}
	}
	var zero V
	return zero, false
}
