package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tyir/internal/diag"
	"tyir/internal/diagfmt"
	"tyir/internal/source"
)

type diagPrinter struct {
	opts  diagfmt.PrettyOpts
	quiet bool
}

func newDiagPrinter(cmd *cobra.Command) (*diagPrinter, error) {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	minStr, err := flags.GetString("min-severity")
	if err != nil {
		return nil, fmt.Errorf("failed to get min-severity flag: %w", err)
	}
	minSev, err := diag.ParseSeverity(minStr)
	if err != nil {
		return nil, err
	}
	if quiet {
		minSev = diag.SevError
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	return &diagPrinter{
		opts: diagfmt.PrettyOpts{
			Color:       useColor,
			Context:     2,
			PathMode:    diagfmt.ParsePathMode(pathMode),
			ShowNotes:   true,
			MinSeverity: minSev,
		},
		quiet: quiet,
	}, nil
}

// print writes bag to stderr, duplicates dropped; --quiet hides bags
// without errors and everything below ERROR.
func (p *diagPrinter) print(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	if p.quiet && !bag.HasErrors() {
		return
	}
	bag.Dedup()
	bag.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, p.opts)
}
