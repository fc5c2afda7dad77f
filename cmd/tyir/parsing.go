package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tyir/internal/diagfmt"
	"tyir/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.tys>",
	Short: "Parse a type sheet and print its syntax tree",
	Long: `Parse reads a type sheet and prints the syntax tree of every alias.
With --expr the argument is a single type expression instead of a file.`,
	Args: cobra.ExactArgs(1),
	RunE: withCleanup(runParse),
}

func init() {
	parseCmd.Flags().Bool("expr", false, "treat the argument as a type expression")
}

func runParse(cmd *cobra.Command, args []string) error {
	expr, err := cmd.Flags().GetBool("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	printer, err := newDiagPrinter(cmd)
	if err != nil {
		return err
	}

	if expr {
		fs, ty, bag, err := driver.ParseExpr(args[0], maxDiag)
		if err != nil {
			return err
		}
		printer.print(cmd, bag, fs)
		if err := diagfmt.FormatTypeTree(cmd.OutOrStdout(), ty, fs); err != nil {
			return err
		}
		if bag.HasErrors() {
			return errDiagnostics
		}
		return nil
	}

	result, err := driver.Parse(args[0], maxDiag)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	printer.print(cmd, result.Bag, result.FileSet)
	if err := diagfmt.FormatSheetTree(cmd.OutOrStdout(), result.Sheet, result.FileSet); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
