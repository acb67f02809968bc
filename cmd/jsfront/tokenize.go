package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsfront/internal/diagfmt"
	"jsfront/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.js",
		Short: "Tokenize a JavaScript source file",
		Long:  `Tokenize breaks down a JavaScript source file into tokens with their leading trivia`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Tokenize(args[0], cli.driverOptions())
	if err != nil {
		return err
	}

	// Выводим диагностику в stderr, если есть
	printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, 2)
	if result.Err != nil {
		return exitCodeError{code: 1}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
}
