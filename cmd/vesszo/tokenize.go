package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"vesszo/internal/diagfmt"
	"vesszo/internal/driver"
	"vesszo/internal/lexer"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file|->",
	Short: "Print the tokens the detectors see",
	Long:  `Tokenize splits a document into words, commas, sentence ends and the other token classes and prints them with their positions.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("skipped", false, "also print the runs the detectors skip (spaces, symbols)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	skipped, err := cmd.Flags().GetBool("skipped")
	if err != nil {
		return fmt.Errorf("failed to get skipped flag: %w", err)
	}
	opts := lexer.Options{KeepSkipped: skipped}

	var result *driver.TokenizeResult
	if filePath == stdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		result = driver.TokenizeBytes(stdinName, data, opts)
	} else {
		result, err = driver.Tokenize(filePath, opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
