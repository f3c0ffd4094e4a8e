package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vesszo/internal/config"
	"vesszo/internal/detector"
	"vesszo/internal/diag"
	"vesszo/internal/diagfmt"
	"vesszo/internal/driver"
	"vesszo/internal/ingest"
	"vesszo/internal/rules"
	"vesszo/internal/source"
	"vesszo/internal/version"
)

// stdinName names the document read from standard input.
const stdinName = "-"

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file|directory...]",
	Short: "Report places where a comma is probably missing",
	Long: `Check reads plain text, Markdown, DOCX and PDF documents (directories are
searched recursively) and reports every place where a comma is probably
missing. Without arguments it reads standard input until an empty read,
so on a terminal every Ctrl-D ends one document.`,
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.Float64("threshold", config.DefaultThreshold, "report findings with a confidence above this value")
	f.String("format", "plain", "output format (plain|pretty|json|sarif|short)")
	f.Bool("sort", false, "order findings by position instead of by detector")
	f.Bool("by-line", false, "check standard input line by line and report as soon as a line is read")
	f.Int("jobs", 0, "max parallel documents (0=auto)")
	f.StringSlice("detectors", nil, "detectors to run (naive,forward,pair,typical)")
	f.String("ui", "auto", "progress view for many documents (auto|on|off)")
	f.Bool("watch", false, "re-check documents whenever they change")
	f.String("fail-on", "never", "exit with status 2 when findings of this severity remain (never|info|warning|error)")
	f.Bool("strict", false, "reject named files with an unknown extension instead of reading them as text")
	f.String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
}

type checkSettings struct {
	format  diagfmt.Format
	failOn  string
	byLine  bool
	watch   bool
	ui      uiMode
	kinds   []rules.Kind
	timings bool
	quiet   bool
	opts    driver.Options
	render  diagfmt.Options
}

// readCheckSettings merges command flags over cfg: a flag wins only when it
// was given explicitly.
func readCheckSettings(cmd *cobra.Command, cfg config.Config) (checkSettings, error) {
	var s checkSettings
	flags := cmd.Flags()

	threshold := cfg.Check.Threshold
	if flags.Changed("threshold") {
		v, err := flags.GetFloat64("threshold")
		if err != nil {
			return s, fmt.Errorf("failed to get threshold flag: %w", err)
		}
		if v < 0 || v > 1 {
			return s, fmt.Errorf("--threshold %v is outside [0, 1]", v)
		}
		threshold = v
	}

	formatName := cfg.Check.Format
	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return s, fmt.Errorf("failed to get format flag: %w", err)
		}
		formatName = v
	}
	format, err := diagfmt.ParseFormat(formatName)
	if err != nil {
		return s, err
	}
	s.format = format

	sortFindings := cfg.Check.Sort
	if flags.Changed("sort") {
		if sortFindings, err = flags.GetBool("sort"); err != nil {
			return s, fmt.Errorf("failed to get sort flag: %w", err)
		}
	}

	jobs := cfg.Check.Jobs
	if flags.Changed("jobs") {
		if jobs, err = flags.GetInt("jobs"); err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		maxDiagnostics = cfg.Check.MaxDiagnostics
	}

	s.kinds = cfg.Kinds()
	if flags.Changed("detectors") {
		names, err := flags.GetStringSlice("detectors")
		if err != nil {
			return s, fmt.Errorf("failed to get detectors flag: %w", err)
		}
		if s.kinds, err = parseKinds(names); err != nil {
			return s, err
		}
	}

	s.failOn = cfg.Check.FailOn
	if flags.Changed("fail-on") || s.failOn == "" {
		if s.failOn, err = flags.GetString("fail-on"); err != nil {
			return s, fmt.Errorf("failed to get fail-on flag: %w", err)
		}
	}
	if _, _, err := failThreshold(s.failOn); err != nil {
		return s, err
	}

	if s.byLine, err = flags.GetBool("by-line"); err != nil {
		return s, fmt.Errorf("failed to get by-line flag: %w", err)
	}
	if s.watch, err = flags.GetBool("watch"); err != nil {
		return s, fmt.Errorf("failed to get watch flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiValue); err != nil {
		return s, err
	}
	strict, err := flags.GetBool("strict")
	if err != nil {
		return s, fmt.Errorf("failed to get strict flag: %w", err)
	}
	if s.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	s.quiet = isQuiet(cmd)

	pathModeValue, err := flags.GetString("path-mode")
	if err != nil {
		return s, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeValue)
	if !ok {
		return s, fmt.Errorf("invalid --path-mode value %q (expected auto|absolute|relative|basename)", pathModeValue)
	}
	color, err := useColor(cmd, os.Stdout)
	if err != nil {
		return s, err
	}

	s.opts = driver.Options{
		Threshold:      threshold,
		Sort:           sortFindings,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Strict:         strict,
		Timings:        s.timings,
	}
	s.render = diagfmt.Options{
		Plain:  diagfmt.PlainOpts{PathMode: pathMode},
		Pretty: diagfmt.PrettyOpts{Color: color, Context: 1, PathMode: pathMode},
		JSON:   diagfmt.JSONOpts{IncludePositions: true, PathMode: pathMode},
		Sarif: diagfmt.SarifRunMeta{
			ToolName:       "vesszo",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
			PathMode:       pathMode,
		},
	}
	return s, nil
}

// failThreshold maps --fail-on onto a severity; ok is false for "never".
func failThreshold(value string) (diag.Severity, bool, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || v == "never" {
		return 0, false, nil
	}
	sev, err := diag.ParseSeverity(v)
	if err != nil {
		return 0, false, fmt.Errorf("invalid --fail-on value: %w", err)
	}
	return sev, true, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := readCheckSettings(cmd, cfg)
	if err != nil {
		return err
	}
	set, err := buildDetectors(cmd, cfg, s.kinds)
	if err != nil {
		return err
	}

	if s.watch {
		if len(args) == 0 {
			return fmt.Errorf("--watch needs at least one file or directory")
		}
		return runWatch(cmd, args, set, s)
	}

	if len(args) == 0 {
		return checkStdin(cmd, cmd.InOrStdin(), cmd.OutOrStdout(), set, s)
	}

	fs, results, err := checkFiles(cmd.Context(), args, set, s)
	if err != nil {
		return err
	}
	return report(cmd.OutOrStdout(), fs, results, s, len(results) > 1)
}

// checkFiles checks the documents below args, with the progress view when
// it is wanted.
func checkFiles(ctx context.Context, args []string, set detector.Set, s checkSettings) (*source.FileSet, []driver.Result, error) {
	files, err := driver.ExpandPaths(args)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no supported documents found (extensions: %s)", strings.Join(ingest.Extensions(), ", "))
	}
	if !s.quiet && shouldUseTUI(s.ui, len(files)) {
		return runCheckWithUI(ctx, "vesszo check", files, set, s.opts)
	}
	return driver.CheckPaths(ctx, files, set, s.opts)
}

func checkStdin(cmd *cobra.Command, in io.Reader, out io.Writer, set detector.Set, s checkSettings) error {
	if !s.byLine {
		fs, results, err := driver.CheckReader(cmd.Context(), in, stdinName, set, s.opts)
		if err != nil {
			return err
		}
		return report(out, fs, results, s, len(results) > 1)
	}

	opts := s.opts
	streaming := s.format == diagfmt.FormatPlain
	if streaming {
		opts.Reporter = diag.ReporterFunc(func(d diag.Diagnostic) {
			fmt.Fprintln(out, diagfmt.PlainLine(d, nil, s.render.Plain))
		})
	}
	fs, res, err := driver.CheckLines(cmd.Context(), in, stdinName, set, opts)
	if err != nil {
		return err
	}
	results := []driver.Result{*res}
	if streaming {
		// уже напечатано построчно
		return finish(results, s)
	}
	return report(out, fs, results, s, false)
}

// report renders results and applies the summary, timing and exit status rules.
func report(out io.Writer, fs *source.FileSet, results []driver.Result, s checkSettings, multi bool) error {
	render := s.render
	render.Plain.WithPath = multi
	if err := diagfmt.Render(out, s.format, driver.Collect(results), fs, render); err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	return finish(results, s)
}

func finish(results []driver.Result, s checkSettings) error {
	if !s.quiet {
		for _, r := range results {
			if r.Dropped > 0 {
				fmt.Fprintf(os.Stderr, "%s: %d more findings not shown (max-diagnostics)\n", r.Path, r.Dropped)
			}
		}
	}
	if s.timings {
		printTimings(os.Stderr, results)
	}

	failed := 0
	for _, r := range results {
		if !r.Loaded {
			failed++
		}
	}
	if failed > 0 {
		return &exitError{code: 1, msg: fmt.Sprintf("%d of %d documents could not be checked", failed, len(results))}
	}
	sev, enabled, err := failThreshold(s.failOn)
	if err != nil || !enabled {
		return err
	}
	if n := driver.CountAtLeast(results, sev); n > 0 {
		return &exitError{code: 2, msg: fmt.Sprintf("%d findings at or above %s", n, strings.ToLower(sev.String()))}
	}
	return nil
}
