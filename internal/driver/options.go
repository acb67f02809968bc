package driver

import (
	"log/slog"
	"runtime"

	"jsfront/internal/check"
	"jsfront/internal/limits"
	"jsfront/internal/rules"
	"jsfront/internal/source"
)

// DefaultExtensions are collected when a directory is analyzed.
var DefaultExtensions = []string{".js", ".mjs", ".cjs"}

// Options configure one analysis run.
type Options struct {
	// Encoding of the input files; empty means UTF-8.
	Encoding       string
	MaxDepth       int
	MaxTokens      int
	MaxDiagnostics int
	// Rules selects rule ids; empty enables every shipped rule.
	Rules []string
	// Registry overrides Rules with a caller-built registry.
	Registry   *check.Registry
	Jobs       int
	Extensions []string
	Timings    bool
	Cache      *Cache
	Progress   ProgressSink
	Logger     *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Encoding == "" {
		o.Encoding = source.DefaultEncoding
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = limits.DefaultMaxDepth
	}
	if o.MaxTokens < 0 {
		o.MaxTokens = limits.DefaultMaxTokens
	}
	if len(o.Extensions) == 0 {
		o.Extensions = DefaultExtensions
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func (o Options) registry() (*check.Registry, error) {
	if o.Registry != nil {
		o.Registry.Freeze()
		return o.Registry, nil
	}
	return rules.NewRegistry(o.Rules)
}
