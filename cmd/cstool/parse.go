package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/biomejs/biome-sub019/internal/diagfmt"
	"github.com/biomejs/biome-sub019/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file>",
	Short: "Print the concrete syntax tree of a CSS or JSON file",
	Long: `Parse builds the lossless syntax tree of a file and prints it. The tree
always reproduces the input byte for byte; diagnostics go to stderr`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "text", "tree format (text|json|yaml)")
	parseCmd.Flags().Bool("facts", false, "print rule, selector, declaration and depth counts instead of the tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	filePath := args[0]

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	treeFormat, err := readTreeFormat(formatStr)
	if err != nil {
		return err
	}
	showFacts, err := cmd.Flags().GetBool("facts")
	if err != nil {
		return fmt.Errorf("failed to get facts flag: %w", err)
	}

	opts, err := driverOptions(cmd, filePath)
	if err != nil {
		return err
	}

	fs, result, err := driver.ParseFile(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   2,
			ShowNotes: true,
			ShowFixes: true,
		})
	}
	if result.Root == nil {
		return errDiagnostics
	}

	out := cmd.OutOrStdout()
	if showFacts {
		err = writeFacts(out, result)
	} else {
		err = diagfmt.FormatTree(out, result.Root, treeFormat)
	}
	if err != nil {
		return err
	}
	if result.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func readTreeFormat(value string) (diagfmt.TreeFormat, error) {
	switch value {
	case "text", "":
		return diagfmt.TreeText, nil
	case "json":
		return diagfmt.TreeJSON, nil
	case "yaml":
		return diagfmt.TreeYAML, nil
	default:
		return diagfmt.TreeText, fmt.Errorf("unknown tree format %q (expected text|json|yaml)", value)
	}
}

type factsOutput struct {
	Path  string       `yaml:"path"`
	Lang  string       `yaml:"lang"`
	Facts driver.Facts `yaml:"facts"`
}

func writeFacts(w io.Writer, result *driver.FileResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(factsOutput{Path: result.Path, Lang: result.Lang.String(), Facts: result.Facts}); err != nil {
		return err
	}
	return enc.Close()
}
