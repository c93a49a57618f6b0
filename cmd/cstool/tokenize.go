package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/biomejs/biome-sub019/internal/diagfmt"
	"github.com/biomejs/biome-sub019/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Dump the raw token stream of a CSS or JSON file",
	Long: `Tokenize lexes a file in the regular lexing context and prints every token,
trivia included. Lexical diagnostics go to stderr`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	filePath := args[0]

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatStr, formatPretty, formatJSON)
	if err != nil {
		return err
	}

	opts, err := driverOptions(cmd, filePath)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   2,
			ShowNotes: true,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.Lang.Syntax(), string(result.File.Content))
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.Lang.Syntax(), result.FileSet, result.File.ID)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
