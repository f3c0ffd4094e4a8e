package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"vesszo/internal/driver"
	"vesszo/internal/lsp"
	"vesszo/internal/version"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the vesszo language server over stdio",
	Long: `Lsp speaks the Language Server Protocol 3.16 on stdin/stdout and publishes
missing comma diagnostics whenever a document is opened, changed or saved.
Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runLSP,
}

func init() {
	lspCmd.Flags().Duration("debounce", 300*time.Millisecond, "delay before re-checking a changed document")
	lspCmd.Flags().Count("verbose", "log verbosity (repeat for more)")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	verbose, err := cmd.Flags().GetCount("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	// nil path: лог в stderr, stdout принадлежит протоколу
	commonlog.Configure(verbose, nil)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	set, err := buildDetectors(cmd, cfg, cfg.Kinds())
	if err != nil {
		return err
	}
	opts := driver.DefaultOptions()
	opts.Threshold = cfg.Check.Threshold
	opts.Sort = true
	opts.MaxDiagnostics = cfg.Check.MaxDiagnostics

	server := lsp.NewServer(set, lsp.ServerOptions{
		Debounce: debounce,
		Check:    opts,
		Version:  version.Version,
	})
	return server.RunStdio()
}
