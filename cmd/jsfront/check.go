package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jsfront/internal/diag"
	"jsfront/internal/diagfmt"
	"jsfront/internal/driver"
	"jsfront/internal/logging"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.js|directory>...",
		Short: "Run lint rules over JavaScript files",
		Long: `Check lexes, parses and runs the selected rules over every file; directories are searched
for .js, .mjs and .cjs files. The exit status is 1 when a file fails or any issue is reported`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	cmd.Flags().StringSlice("rules", nil, "comma-separated rule ids to run (default: all)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	cmd.Flags().String("cache-dir", "", "directory of the result cache (default: disabled)")
	cmd.Flags().Bool("no-cache", false, "ignore the configured result cache")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	format := stringSetting(cmd, "format", cli.config.Output.Format)
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	opts := cli.driverOptions()
	if cmd.Flags().Changed("rules") {
		if opts.Rules, err = cmd.Flags().GetStringSlice("rules"); err != nil {
			return fmt.Errorf("failed to get rules flag: %w", err)
		}
	}
	if opts.Jobs, err = intSetting(cmd, "jobs", opts.Jobs); err != nil {
		return err
	}
	if opts.Cache, err = openCache(cmd); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	started := time.Now()
	var result *driver.DirResult
	if format == "pretty" && shouldUseTUI(mode, out) {
		exts := opts.Extensions
		if len(exts) == 0 {
			exts = driver.DefaultExtensions
		}
		files, collectErr := driver.CollectFiles(args, exts)
		if collectErr != nil {
			return collectErr
		}
		result, err = runCheckWithUI(cmd.Context(), out, "checking", files, args, opts)
	} else {
		result, err = driver.AnalyzePaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	all := diag.NewBag(0)
	failed := 0
	for _, f := range result.Files {
		if f == nil {
			continue
		}
		all.Merge(f.Bag)
		if f.Failed() || len(f.RuleErrors) > 0 {
			failed++
		}
	}

	switch format {
	case "json":
		if err := diagfmt.JSON(out, all, result.FileSet, cli.jsonOpts()); err != nil {
			return err
		}
	case "short":
		if text := diag.FormatShortDiagnostics(all.Items(), result.FileSet, false); text != "" {
			fmt.Fprintln(out, text)
		}
	default:
		diagfmt.Pretty(out, all, result.FileSet, cli.prettyOpts(out, 0))
	}

	errOut := cmd.ErrOrStderr()
	if cli.timings {
		printTimings(errOut, result.Files, time.Since(started))
	}
	issues := result.IssueCount()
	cli.logger.Info("check finished", "files", len(result.Files), "issues", issues, "failed", failed)
	if format == "pretty" {
		fmt.Fprintf(errOut, "%d files checked, %d issues, %d failed\n", len(result.Files), issues, failed)
	}
	if issues > 0 || result.Failed() {
		return exitCodeError{code: 1}
	}
	return nil
}

func openCache(cmd *cobra.Command) (*driver.Cache, error) {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	dir := stringSetting(cmd, "cache-dir", cli.config.Cache.Dir)
	if noCache || dir == "" {
		return nil, nil
	}
	cache, err := driver.OpenCache(dir)
	if err != nil {
		return nil, err
	}
	cli.logger.Debug("result cache enabled", logging.File(cache.Dir()))
	return cache, nil
}
