package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tyir/internal/driver"
)

var depsCmd = &cobra.Command{
	Use:   "deps [flags] <file.tys>",
	Short: "List the paths a type sheet refers to",
	Long: `Deps lowers a type sheet and lists every path it mentions, as a type or
as a trait bound, with the aliases that use it. Generic arguments are
ignored: Vec<u8> and Vec<T> both count as Vec.`,
	Args: cobra.ExactArgs(1),
	RunE: withCleanup(runDeps),
}

func init() {
	depsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDeps(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	printer, err := newDiagPrinter(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Lower(cmd.Context(), args[0], driver.LowerOptions{MaxDiagnostics: maxDiag})
	if err != nil {
		return err
	}
	printer.print(cmd, res.Bag, res.FileSet)

	deps := driver.CollectDeps(res)
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(deps); err != nil {
			return err
		}
	} else if err := writeDepsPretty(cmd.OutOrStdout(), deps); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func writeDepsPretty(w io.Writer, deps []driver.Dependency) error {
	width := 0
	for _, d := range deps {
		width = max(width, len(d.Path))
	}
	for _, d := range deps {
		if _, err := fmt.Fprintf(w, "%-*s %3d  %s\n", width, d.Path, d.Count, strings.Join(d.Aliases, ", ")); err != nil {
			return err
		}
	}
	return nil
}
