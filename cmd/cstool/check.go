package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/driver"
	"github.com/biomejs/biome-sub019/internal/observ"
	"github.com/biomejs/biome-sub019/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>",
	Short: "Report syntax diagnostics for a file or every file in a directory",
	Long: `Check parses a file, or every included file under a directory, and reports
the diagnostics. The exit status is 1 when any diagnostic is an error`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	addReportFlags(checkCmd)
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the diagnostics cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop the diagnostics cache before checking")
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit with 1 on warnings too")
}

type checkFlags struct {
	report           reportOptions
	jobs             int
	ui               uiMode
	noCache          bool
	clearCache       bool
	warningsAsErrors bool
	timings          bool
	quiet            bool
}

func readCheckFlags(cmd *cobra.Command, args []string) (checkFlags, error) {
	var f checkFlags
	var err error
	if f.report, err = readReportOptions(cmd, args); err != nil {
		return f, err
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiStr); err != nil {
		return f, err
	}
	if f.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return f, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if f.clearCache, err = cmd.Flags().GetBool("clear-cache"); err != nil {
		return f, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	f.timings, _ = cmd.Root().PersistentFlags().GetBool("timings")
	f.quiet = quiet(cmd)
	return f, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	target := args[0]

	flags, err := readCheckFlags(cmd, args)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, target)
	if err != nil {
		return err
	}
	if !flags.noCache {
		opts.Cache = openCache(cmd, opts.Config)
		if flags.clearCache && opts.Cache != nil {
			if err := opts.Cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	if info.IsDir() {
		dirOpts := driver.DirOptions{Options: opts, Jobs: flags.jobs}
		if flags.report.format == formatPretty && !flags.quiet && wantsProgressView(flags.ui, os.Stderr) {
			fs, results, err = runCheckWithUI(cmd.Context(), target, dirOpts)
		} else {
			fs, results, err = driver.CheckDir(cmd.Context(), target, dirOpts)
		}
	} else {
		fs, results, err = checkFile(cmd.Context(), target, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	bag := mergeResults(results)
	if err := writeDiagnostics(cmd.OutOrStdout(), bag, fs, len(results), flags.report); err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	if flags.timings {
		printTimings(cmd.ErrOrStderr(), results)
	}

	if bag.HasErrors() || (flags.warningsAsErrors && bag.HasWarnings()) {
		return errDiagnostics
	}
	return nil
}

func checkFile(ctx context.Context, path string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	fs := source.NewFileSetWithBase(opts.Config.Root())
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	res := driver.ParseSource(ctx, fs, fileID, opts)
	return fs, []driver.FileResult{*res}, nil
}

// mergeResults collects every per-file bag into one. The per-file limits
// already applied, so the merged bag is unbounded.
func mergeResults(results []driver.FileResult) *diag.Bag {
	bag := diag.NewBag(0)
	for _, r := range results {
		bag.Merge(r.Bag)
	}
	return bag
}

func printTimings(w io.Writer, results []driver.FileResult) {
	var total observ.Report
	cached := 0
	for _, r := range results {
		if r.Timing != nil {
			total.Add(*r.Timing)
		}
		if r.Cached {
			cached++
		}
	}
	fmt.Fprint(w, total.Summary())
	fmt.Fprintf(w, "files: %d, cached: %d\n", len(results), cached)
}
