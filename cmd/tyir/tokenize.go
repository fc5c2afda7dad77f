package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tyir/internal/diagfmt"
	"tyir/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.tys",
	Short: "Tokenize a type sheet",
	Long:  `Tokenize breaks a type sheet down into its tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  withCleanup(runTokenize),
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	printer, err := newDiagPrinter(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, maxDiag)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	printer.print(cmd, result.Bag, result.FileSet)

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
