package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"jsfront/internal/diag"
	"jsfront/internal/diagfmt"
	"jsfront/internal/driver"
	"jsfront/internal/logging"
	"jsfront/internal/prof"
	"jsfront/internal/project"
	"jsfront/internal/source"
)

// settings merges command-line flags over jsfront.toml; an explicitly set
// flag always wins.
type settings struct {
	config         *project.Config
	logger         *slog.Logger
	color          string
	pathMode       diagfmt.PathMode
	maxDiagnostics int
	timings        bool
	encoding       string
	maxDepth       int
	maxTokens      int
}

var cli settings

// profiling is stopped by run after the command returns, whatever its outcome.
var profiling *prof.Session

func loadSettings(cmd *cobra.Command, _ []string) error {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	logger, err := logging.Setup(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}

	s := settings{config: cfg, logger: logger}
	s.color = stringSetting(cmd, "color", cfg.Output.Color)
	switch s.color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", s.color)
	}
	mode, ok := diagfmt.ParsePathMode(stringSetting(cmd, "path-mode", cfg.Output.PathMode))
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q", stringSetting(cmd, "path-mode", cfg.Output.PathMode))
	}
	s.pathMode = mode
	s.encoding = stringSetting(cmd, "encoding", cfg.Analysis.Encoding)
	if s.encoding != "" {
		if _, _, err := source.LookupEncoding(s.encoding); err != nil {
			return fmt.Errorf("invalid --encoding: %w", err)
		}
	}
	if s.maxDiagnostics, err = intSetting(cmd, "max-diagnostics", cfg.Output.MaxDiagnostics); err != nil {
		return err
	}
	if s.maxDepth, err = intSetting(cmd, "max-depth", cfg.Analysis.MaxDepth); err != nil {
		return err
	}
	if s.maxTokens, err = intSetting(cmd, "max-tokens", cfg.Analysis.MaxTokens); err != nil {
		return err
	}
	if s.timings, err = cmd.Flags().GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	cli = s
	return startProfiling(cmd)
}

func startProfiling(cmd *cobra.Command) error {
	var opts prof.Options
	for name, dst := range map[string]*string{"cpu-profile": &opts.CPU, "mem-profile": &opts.Mem, "trace-out": &opts.Trace} {
		value, err := cmd.Flags().GetString(name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = value
	}
	if !opts.Enabled() {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	profiling = session
	return nil
}

func loadConfig(cmd *cobra.Command, logger *slog.Logger) (*project.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return project.LoadConfig(path)
	}
	cfg, found, err := project.Discover(".")
	if err != nil {
		return nil, err
	}
	if found {
		logger.Debug("using config", logging.File(cfg.Path))
	}
	return cfg, nil
}

// stringSetting returns the flag value when it was set explicitly or the
// config has nothing for it.
func stringSetting(cmd *cobra.Command, name, configured string) string {
	value, _ := cmd.Flags().GetString(name)
	if cmd.Flags().Changed(name) || configured == "" {
		return value
	}
	return configured
}

func intSetting(cmd *cobra.Command, name string, configured int) (int, error) {
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("--%s must be non-negative, got %d", name, value)
	}
	if cmd.Flags().Changed(name) || configured == 0 {
		return value, nil
	}
	return configured, nil
}

func (s *settings) driverOptions() driver.Options {
	return driver.Options{
		Encoding:       s.encoding,
		MaxDepth:       s.maxDepth,
		MaxTokens:      s.maxTokens,
		MaxDiagnostics: s.maxDiagnostics,
		Rules:          s.config.Analysis.Rules,
		Jobs:           s.config.Analysis.Jobs,
		Extensions:     s.config.Analysis.Extensions,
		Timings:        s.timings,
		Logger:         s.logger,
	}
}

func (s *settings) useColor(w io.Writer) bool {
	return s.color == "on" || (s.color == "auto" && isTerminal(w))
}

func (s *settings) prettyOpts(w io.Writer, context int8) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.useColor(w),
		Context:   context,
		PathMode:  s.pathMode,
		ShowNotes: true,
		Max:       s.maxDiagnostics,
	}
}

func (s *settings) jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         s.pathMode,
		Max:              s.maxDiagnostics,
		IncludeNotes:     true,
	}
}

// printDiagnostics writes bag in pretty form when it has anything to say.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, context int8) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(w, bag, fs, cli.prettyOpts(w, context))
}
