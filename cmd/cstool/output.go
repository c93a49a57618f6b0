package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/diagfmt"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/version"
)

type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatJSON   outputFormat = "json"
	formatYAML   outputFormat = "yaml"
	formatSarif  outputFormat = "sarif"
)

func readOutputFormat(value string, allowed ...outputFormat) (outputFormat, error) {
	f := outputFormat(strings.ToLower(strings.TrimSpace(value)))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("unknown format %q (expected %s)", value, strings.Join(names, "|"))
}

// useColor resolves --color for f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch colorFlag {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTerminal(f) && os.Getenv("NO_COLOR") == ""
	}
}

// reportOptions are the diagnostic rendering flags shared by check and fix.
type reportOptions struct {
	format    outputFormat
	color     bool
	pathMode  diagfmt.PathMode
	withNotes bool
	suggest   bool
	preview   bool
	args      []string
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|sarif)")
	cmd.Flags().String("path-mode", "auto", "how paths are shown (auto|absolute|relative|basename)")
	cmd.Flags().Bool("no-notes", false, "hide diagnostic notes")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("preview", false, "show the text each fix would produce")
}

func readReportOptions(cmd *cobra.Command, args []string) (reportOptions, error) {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return reportOptions{}, fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatStr, formatPretty, formatJSON, formatYAML, formatSarif)
	if err != nil {
		return reportOptions{}, err
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return reportOptions{}, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return reportOptions{}, err
	}
	noNotes, err := cmd.Flags().GetBool("no-notes")
	if err != nil {
		return reportOptions{}, fmt.Errorf("failed to get no-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return reportOptions{}, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return reportOptions{}, fmt.Errorf("failed to get preview flag: %w", err)
	}
	return reportOptions{
		format:    format,
		color:     useColor(cmd, os.Stdout),
		pathMode:  pathMode,
		withNotes: !noNotes,
		suggest:   suggest || preview,
		preview:   preview,
		args:      args,
	}, nil
}

// writeDiagnostics renders bag in the chosen format. files is the number of
// files checked, used by the pretty summary line.
func writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, files int, opts reportOptions) error {
	bag.Sort()
	switch opts.format {
	case formatPretty:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:       opts.color,
			Context:     2,
			PathMode:    opts.pathMode,
			ShowNotes:   opts.withNotes,
			ShowFixes:   opts.suggest,
			ShowPreview: opts.preview,
		})
		if files > 0 {
			diagfmt.Summary(w, bag, files, opts.color)
		}
		return nil
	case formatJSON, formatYAML:
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			IncludeNotes:     opts.withNotes,
			IncludeFixes:     opts.suggest,
			IncludePreviews:  opts.preview,
		}
		if opts.format == formatYAML {
			return diagfmt.YAML(w, bag, fs, jsonOpts)
		}
		return diagfmt.JSON(w, bag, fs, jsonOpts)
	case formatSarif:
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "cstool",
			ToolVersion:    version.Version,
			InvocationArgs: opts.args,
		})
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}
}
