package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jsfront/internal/version"
)

// exitCodeError ends the process with code without printing anything;
// the command has already reported why.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "jsfront",
		Short:             "JavaScript lexer, parser and rule checker",
		Long:              `jsfront tokenizes and parses JavaScript into a lossless syntax tree and runs lint rules over it`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadSettings,
	}

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to jsfront.toml (default: searched upward from the working directory)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("encoding", "", "source file encoding (default utf-8)")
	pf.String("path-mode", "auto", "how file paths are printed (auto|absolute|relative|basename)")
	pf.Int("max-depth", 0, "maximum syntactic nesting depth (0=default)")
	pf.Int("max-tokens", 0, "maximum number of tokens per file (0=unlimited)")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("trace-out", "", "write a runtime trace to file")
	return rootCmd
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.ExecuteContext(ctx)
	if stopErr := profiling.Stop(); stopErr != nil {
		fmt.Fprintf(stderr, "error: %v\n", stopErr)
	}
	profiling = nil
	if err != nil {
		var exit exitCodeError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit int
}
