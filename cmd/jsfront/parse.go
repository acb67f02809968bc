package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jsfront/internal/diagfmt"
	"jsfront/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.js",
		Short: "Parse a JavaScript source file and print its syntax tree",
		Long:  `Parse builds the lossless concrete syntax tree of a JavaScript file; every token and its trivia stay in the tree`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|sexpr)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "sexpr":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	started := time.Now()
	result, err := driver.Parse(args[0], cli.driverOptions())
	if err != nil {
		return err
	}
	if cli.timings {
		fmt.Fprintf(cmd.ErrOrStderr(), "parsed %.1f ms\n", toMillis(time.Since(started)))
	}

	printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, 2)
	if result.Err != nil {
		return exitCodeError{code: 1}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return diagfmt.FormatTreeJSON(out, result.Tree)
	case "sexpr":
		return diagfmt.FormatTreeSexpr(out, result.Tree)
	default:
		return diagfmt.FormatTreePretty(out, result.Tree, result.FileSet)
	}
}
