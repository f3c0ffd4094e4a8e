package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"vesszo/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate rule tables",
}

var rulesLintCmd = &cobra.Command{
	Use:   "lint [file...]",
	Short: "Validate rule files (default: the tables named in vesszo.toml)",
	RunE:  runRulesLint,
}

var rulesShowCmd = &cobra.Command{
	Use:   "show <naive|forward|pair|typical>",
	Short: "Print the table a detector will use",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesShow,
}

func init() {
	rulesLintCmd.Flags().String("kind", "", "table kind for every file (default: guessed from the file)")
	rulesShowCmd.Flags().String("format", "table", "output format (table|yaml)")
	rulesCmd.AddCommand(rulesLintCmd)
	rulesCmd.AddCommand(rulesShowCmd)
}

func runRulesLint(cmd *cobra.Command, args []string) error {
	kindName, err := cmd.Flags().GetString("kind")
	if err != nil {
		return fmt.Errorf("failed to get kind flag: %w", err)
	}

	var sources []rules.Source
	if len(args) == 0 {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sources = cfg.Sources()
	} else {
		for _, path := range args {
			src, err := lintSource(path, kindName)
			if err != nil {
				return err
			}
			sources = append(sources, src)
		}
	}

	out := cmd.OutOrStdout()
	var failed int
	for _, src := range sources {
		if src.Path == rules.Disabled {
			continue
		}
		// кэш не нужен: проверяем сам файл
		tables, err := rules.LoadAll([]rules.Source{src}, nil)
		if err != nil {
			failed++
			fmt.Fprintln(out, err)
			continue
		}
		if !isQuiet(cmd) {
			fmt.Fprintf(out, "%s: ok (%s, %d rules)\n", tables[0].Name, src.Kind, tables[0].Len())
		}
	}
	if failed > 0 {
		return &exitError{code: 1, msg: fmt.Sprintf("%d rule tables failed validation", failed)}
	}
	return nil
}

func lintSource(path, kindName string) (rules.Source, error) {
	if kindName != "" {
		kind, err := rules.ParseKind(kindName)
		if err != nil {
			return rules.Source{}, err
		}
		return rules.Source{Kind: kind, Path: path}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return rules.Source{}, fmt.Errorf("failed to read rule file: %w", err)
	}
	kind, err := rules.GuessKind(path, data)
	if err != nil {
		return rules.Source{}, err
	}
	return rules.Source{Kind: kind, Path: path}, nil
}

func runRulesShow(cmd *cobra.Command, args []string) error {
	kind, err := rules.ParseKind(args[0])
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var src rules.Source
	for _, s := range cfg.Sources() {
		if s.Kind == kind {
			src = s
		}
	}
	if src.Path == rules.Disabled {
		return fmt.Errorf("the %s detector is disabled in %s", kind, cfg.Path)
	}
	tables, err := rules.LoadAll([]rules.Source{src}, openRuleCache(cmd, cfg))
	if err != nil {
		return err
	}
	loaded := tables[0]

	out := cmd.OutOrStdout()
	switch format {
	case "yaml":
		data, err := rules.MarshalYAML(loaded)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "table":
		return writeRuleTable(out, loaded)
	}
	return fmt.Errorf("unknown format: %s", format)
}

func writeRuleTable(out io.Writer, t *rules.Table) error {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("WORD", "CONF", "FOLLOWERS", "MESSAGE")
	for i, r := range t.Rules {
		followers, second := "-", ""
		if len(r.Followers) > 0 {
			followers = strings.Join(r.Followers, " ")
			second = r.Followers[0]
		}
		tbl.Row(r.Word, fmt.Sprintf("%.2f", r.Confidence), followers, t.Message(i, second))
	}
	_, err := fmt.Fprintf(out, "# %s (%s, case sensitive: %v)\n%s\n", t.Name, t.Kind, t.CaseSensitive, tbl.Render())
	return err
}
