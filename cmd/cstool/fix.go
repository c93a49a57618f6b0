package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/driver"
	"github.com/biomejs/biome-sub019/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>",
	Short: "Apply the fixes attached to diagnostics",
	Long: `Fix parses each file, applies the selected fixes and parses again until no
fix applies or the text stops changing. Files are rewritten in place unless
--dry-run is given`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every safe fix")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("code", "", "apply every fix of diagnostics with this code (e.g. SYN2204)")
	fixCmd.Flags().Bool("unsafe", false, "with --all, also apply heuristic and manual-review fixes")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().Bool("stdout", false, "print the fixed text of a single file instead of writing it")
	fixCmd.Flags().Int("max-passes", driver.DefaultMaxPasses, "maximum parse and fix rounds per file")
}

func readApplyOptions(cmd *cobra.Command) (fix.ApplyOptions, error) {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	codeStr, err := cmd.Flags().GetString("code")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	unsafe, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return fix.ApplyOptions{}, err
	}

	if codeStr != "" && (applyAll || applyOnce) {
		return fix.ApplyOptions{}, fmt.Errorf("--code cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fix.ApplyOptions{}, fmt.Errorf("--all and --once are mutually exclusive")
	}

	opts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, Unsafe: unsafe}
	switch {
	case codeStr != "":
		code, err := parseCode(codeStr)
		if err != nil {
			return fix.ApplyOptions{}, err
		}
		opts.Mode = fix.ApplyModeCode
		opts.Code = code
	case applyAll:
		opts.Mode = fix.ApplyModeAll
	}
	return opts, nil
}

// parseCode accepts a code ID such as SYN2204 or its bare number.
func parseCode(s string) (diag.Code, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	digits := strings.TrimLeft(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid diagnostic code %q", s)
	}
	code := diag.Code(n)
	if digits != s && code.ID() != s {
		return 0, fmt.Errorf("invalid diagnostic code %q (did you mean %s?)", s, code.ID())
	}
	return code, nil
}

func runFix(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	target := args[0]

	applyOpts, err := readApplyOptions(cmd)
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	maxPasses, err := cmd.Flags().GetInt("max-passes")
	if err != nil {
		return err
	}

	driverOpts, err := driverOptions(cmd, target)
	if err != nil {
		return err
	}
	opts := driver.FixOptions{
		Options:   driverOpts,
		Apply:     applyOpts,
		MaxPasses: maxPasses,
		Write:     !dryRun && !toStdout,
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	files := []string{target}
	if info.IsDir() {
		if toStdout {
			return fmt.Errorf("fix: --stdout needs a single file")
		}
		if files, err = driver.ListFiles(target, driverOpts); err != nil {
			return fmt.Errorf("fix: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	report := out
	if toStdout {
		report = cmd.ErrOrStderr()
	}
	remainingErrors := false
	for _, path := range files {
		res, err := driver.FixFile(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		if toStdout {
			if _, err := out.Write(res.Content); err != nil {
				return err
			}
		}
		if !quiet(cmd) {
			if err := printFixResult(report, res, dryRun); err != nil {
				return err
			}
		}
		if res.Final.HasErrors() {
			remainingErrors = true
		}
	}
	if remainingErrors {
		return errDiagnostics
	}
	return nil
}

func printFixResult(w io.Writer, res *driver.FixResult, dryRun bool) error {
	if len(res.Applied) == 0 {
		return nil
	}
	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}
	if _, err := fmt.Fprintf(w, "%s: %s %d fix(es) in %d pass(es)\n", res.Path, verb, len(res.Applied), res.Passes); err != nil {
		return err
	}
	for _, item := range res.Applied {
		if _, err := fmt.Fprintf(w, "  %s [%s] (%d edits, %s)\n",
			item.Title, item.Code.ID(), item.EditCount, item.Applicability); err != nil {
			return err
		}
	}
	for _, skip := range res.Skipped {
		id := skip.ID
		if id == "" {
			id = "(unnamed)"
		}
		if _, err := fmt.Fprintf(w, "  skipped %s [%s]: %s\n", skip.Title, id, skip.Reason); err != nil {
			return err
		}
	}
	if left := res.Final.Bag.Len(); left > 0 {
		if _, err := fmt.Fprintf(w, "  %d diagnostic(s) left\n", left); err != nil {
			return err
		}
	}
	return nil
}
