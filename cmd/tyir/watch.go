package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"tyir/internal/driver"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file.tys>",
	Short: "Re-lower a type sheet every time it changes",
	Args:  cobra.ExactArgs(1),
	RunE:  withCleanup(runWatch),
}

func init() {
	watchCmd.Flags().String("format", "pretty", "output format (pretty|debug|json|yaml)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := lowerFormatFlag(cmd)
	if err != nil {
		return err
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	printer, err := newDiagPrinter(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	path := args[0]
	relower := func() {
		res, err := driver.Lower(ctx, path, driver.LowerOptions{MaxDiagnostics: maxDiag})
		results := []driver.FileResult{{Path: path, Result: res, Err: err}}
		fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", time.Now().Format("15:04:05"), path)
		reportResults(cmd, printer, results, !format.structured())
		if err := writeLowered(cmd.OutOrStdout(), format, results); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	}

	relower()
	return driver.Watch(ctx, path, relower)
}
