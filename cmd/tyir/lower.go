package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tyir/internal/driver"
	"tyir/internal/observ"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] <file.tys|directory>...",
	Short: "Lower type sheets into the unresolved type IR",
	Long: `Lower parses type sheets and prints the lowered type of every alias.
Directories are searched recursively for *.tys files. With --expr the single
argument is a type expression.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withCleanup(runLower),
}

func init() {
	f := lowerCmd.Flags()
	f.String("format", "pretty", "output format (pretty|debug|json|yaml)")
	f.Int("jobs", 0, "max parallel workers (0=auto)")
	f.Bool("no-cache", false, "do not read or write the IR cache")
	f.String("cache-dir", "", "IR cache directory (default: [cache].dir or the user cache dir)")
	f.Bool("clear-cache", false, "drop every cached entry before lowering")
	f.String("ui", "auto", "progress view (auto|on|off)")
	f.Bool("expr", false, "treat the argument as a type expression")
}

type lowerFlags struct {
	format lowerFormat
	jobs   int
	ui     uiMode
	expr   bool
}

func readLowerFlags(cmd *cobra.Command) (lowerFlags, error) {
	var lf lowerFlags
	flags := cmd.Flags()

	var err error
	if lf.format, err = lowerFormatFlag(cmd); err != nil {
		return lf, err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return lf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") && activeManifest != nil && activeManifest.Config.Lower.Jobs > 0 {
		jobs = activeManifest.Config.Lower.Jobs
	}
	lf.jobs = jobs

	uiStr, err := flags.GetString("ui")
	if err != nil {
		return lf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if lf.ui, err = readUIMode(uiStr); err != nil {
		return lf, err
	}
	if lf.expr, err = flags.GetBool("expr"); err != nil {
		return lf, fmt.Errorf("failed to get expr flag: %w", err)
	}
	return lf, nil
}

// lowerFormatFlag: an explicit --format wins over [lower].format.
func lowerFormatFlag(cmd *cobra.Command) (lowerFormat, error) {
	flags := cmd.Flags()
	formatStr, err := flags.GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	if !flags.Changed("format") && activeManifest != nil && activeManifest.Config.Lower.Format != "" {
		formatStr = activeManifest.Config.Lower.Format
	}
	return parseLowerFormat(formatStr)
}

// openCache honours --no-cache, --cache-dir and [cache]. A cache that cannot
// be opened is reported and skipped.
func openCache(cmd *cobra.Command) *driver.DiskCache {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil || noCache || !activeManifest.cacheEnabled() {
		return nil
	}
	dir, _ := cmd.Flags().GetString("cache-dir")
	if dir == "" {
		dir = activeManifest.cacheDir()
	}
	var cache *driver.DiskCache
	if dir != "" {
		cache, err = driver.NewDiskCache(dir)
	} else {
		cache, err = driver.OpenDiskCache("tyir")
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
		return nil
	}
	if drop, _ := cmd.Flags().GetBool("clear-cache"); drop {
		if err := cache.DropAll(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to clear cache %s: %v\n", cache.Dir(), err)
		}
	}
	return cache
}

// expandInputs replaces directories with the sheets found inside them.
func expandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil || !st.IsDir() {
			// missing files are reported per file by the driver
			paths = append(paths, arg)
			continue
		}
		found, err := driver.ListSheets(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", arg, err)
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func runLower(cmd *cobra.Command, args []string) error {
	lf, err := readLowerFlags(cmd)
	if err != nil {
		return err
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	printer, err := newDiagPrinter(cmd)
	if err != nil {
		return err
	}

	opts := driver.LowerOptions{
		MaxDiagnostics:    maxDiag,
		Jobs:              lf.jobs,
		TimingDiagnostics: showTimings && lf.format.structured(),
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}

	var results []driver.FileResult
	if lf.expr {
		if len(args) != 1 {
			return fmt.Errorf("--expr takes exactly one type expression, got %d arguments", len(args))
		}
		res, err := driver.LowerExpr(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		results = []driver.FileResult{{Path: "<expr>", Result: res}}
	} else {
		paths, err := expandInputs(args)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no %s files found", driver.SheetExt)
		}
		opts.Cache = openCache(cmd)
		if shouldUseTUI(lf.ui, len(paths)) {
			results, err = runLowerWithUI(cmd.Context(), "lowering", paths, opts)
		} else {
			results, err = driver.LowerFiles(cmd.Context(), paths, opts)
		}
		if err != nil {
			return err
		}
	}

	failed := reportResults(cmd, printer, results, !lf.format.structured())
	if err := writeLowered(cmd.OutOrStdout(), lf.format, results); err != nil {
		return err
	}
	if showTimings {
		printTimings(cmd.ErrOrStderr(), opts.Timer)
	}
	if failed {
		return errDiagnostics
	}
	return nil
}

// reportResults prints load errors and, when printDiags is set, diagnostics
// to stderr. It reports whether any file failed.
func reportResults(cmd *cobra.Command, printer *diagPrinter, results []driver.FileResult, printDiags bool) bool {
	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", r.Err)
			continue
		}
		if r.Result.Bag.HasErrors() {
			failed = true
		}
		if printDiags {
			printer.print(cmd, r.Result.Bag, r.Result.FileSet)
		}
	}
	return failed
}
