package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vesszo/internal/config"
	"vesszo/internal/detector"
	"vesszo/internal/rules"
)

// loadConfig reads the file given by --config, or the nearest vesszo.toml
// above the working directory, or the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.Discover(".")
	return cfg, err
}

// openRuleCache returns the user cache for parsed rule files, or nil when
// caching is off or the cache directory is unusable.
func openRuleCache(cmd *cobra.Command, cfg config.Config) *rules.Cache {
	if !cfg.Rules.Cache {
		return nil
	}
	cache, err := rules.OpenCache("vesszo")
	if err != nil {
		if !isQuiet(cmd) {
			fmt.Fprintf(os.Stderr, "warning: rule cache disabled: %v\n", err)
		}
		return nil
	}
	return cache
}

// buildDetectors loads the rule tables of cfg and keeps the detectors in kinds
// (all when kinds is empty).
func buildDetectors(cmd *cobra.Command, cfg config.Config, kinds []rules.Kind) (detector.Set, error) {
	tables, err := rules.LoadAll(cfg.Sources(), openRuleCache(cmd, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	set, err := detector.NewSet(tables)
	if err != nil {
		return nil, err
	}
	set = set.Only(kinds)
	if len(set) == 0 {
		return nil, fmt.Errorf("no detector enabled")
	}
	return set, nil
}

// parseKinds accepts detector names, comma separated or repeated.
func parseKinds(values []string) ([]rules.Kind, error) {
	var out []rules.Kind
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			k, err := rules.ParseKind(name)
			if err != nil {
				return nil, err
			}
			out = append(out, k)
		}
	}
	return out, nil
}

func isQuiet(cmd *cobra.Command) bool {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && quiet
}
