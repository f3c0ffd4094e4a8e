package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"vesszo/internal/config"
	"vesszo/internal/rules"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default vesszo.toml and editable rule tables",
	Long: `Init creates vesszo.toml and a rules/ directory holding copies of the
built-in rule tables in [path] (default: the current directory). Existing
rule files are kept; an existing vesszo.toml is an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	created, err := initWorkspace(target)
	if err != nil {
		return err
	}
	if isQuiet(cmd) {
		return nil
	}
	printCreated(cmd.OutOrStdout(), target, created)
	return nil
}

// initWorkspace writes the configuration and the missing rule copies below
// target and returns the created files relative to it.
func initWorkspace(target string) ([]string, error) {
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", target)
	}

	configPath := filepath.Join(target, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return nil, fmt.Errorf("already initialized: %s exists", configPath)
	}

	rulesDir := filepath.Join(target, "rules")
	if err := os.MkdirAll(rulesDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create rules directory: %w", err)
	}
	var created []string
	for _, kind := range rules.Kinds() {
		name, data, err := rules.DefaultFile(kind)
		if err != nil {
			return nil, err
		}
		dst := filepath.Join(rulesDir, name)
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := os.WriteFile(dst, data, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", dst, err)
		}
		created = append(created, filepath.Join("rules", name))
	}

	if err := os.WriteFile(configPath, []byte(config.DefaultTOML), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}
	return append([]string{config.FileName}, created...), nil
}

func printCreated(out io.Writer, target string, created []string) {
	fmt.Fprintf(out, "Initialized vesszo in %s\n", target)
	for _, f := range created {
		fmt.Fprintf(out, "  - %s\n", filepath.ToSlash(f))
	}
}
