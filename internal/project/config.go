package project

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"jsfront/internal/diagfmt"
	"jsfront/internal/rules"
	"jsfront/internal/source"
)

// Config mirrors jsfront.toml. Zero values mean "use the built-in default".
type Config struct {
	// Path of the file the config was read from; empty for defaults.
	Path     string         `toml:"-"`
	Analysis AnalysisConfig `toml:"analysis"`
	Output   OutputConfig   `toml:"output"`
	Cache    CacheConfig    `toml:"cache"`
}

type AnalysisConfig struct {
	Encoding   string   `toml:"encoding"`
	MaxDepth   int      `toml:"max_depth"`
	MaxTokens  int      `toml:"max_tokens"`
	Jobs       int      `toml:"jobs"`
	Extensions []string `toml:"extensions"`
	Rules      []string `toml:"rules"`
}

type OutputConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	PathMode       string `toml:"path_mode"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type CacheConfig struct {
	// Dir is resolved against the directory of the config file.
	Dir string `toml:"dir"`
}

var (
	outputFormats = []string{"pretty", "json", "short"}
	colorModes    = []string{"auto", "on", "off"}
)

// Default returns the configuration used when no jsfront.toml exists.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Format: "pretty", Color: "auto", PathMode: "auto"},
	}
}

// LoadConfig parses and validates one jsfront.toml.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Path = path
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), filepath.FromSlash(cfg.Cache.Dir))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value; the error names the offending key.
func (c *Config) Validate() error {
	a := c.Analysis
	if a.Encoding != "" {
		if _, _, err := source.LookupEncoding(a.Encoding); err != nil {
			return fmt.Errorf("[analysis].encoding: %w", err)
		}
	}
	if a.MaxDepth < 0 {
		return fmt.Errorf("[analysis].max_depth must be non-negative, got %d", a.MaxDepth)
	}
	if a.MaxTokens < 0 {
		return fmt.Errorf("[analysis].max_tokens must be non-negative, got %d", a.MaxTokens)
	}
	if a.Jobs < 0 {
		return fmt.Errorf("[analysis].jobs must be non-negative, got %d", a.Jobs)
	}
	for _, ext := range a.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("[analysis].extensions: %q must start with a dot", ext)
		}
	}
	for _, id := range a.Rules {
		if _, ok := rules.ByID(id); !ok {
			return fmt.Errorf("[analysis].rules: unknown rule %q", id)
		}
	}

	o := c.Output
	if o.Format != "" && !slices.Contains(outputFormats, o.Format) {
		return fmt.Errorf("[output].format must be one of %s, got %q", strings.Join(outputFormats, ", "), o.Format)
	}
	if o.Color != "" && !slices.Contains(colorModes, o.Color) {
		return fmt.Errorf("[output].color must be one of %s, got %q", strings.Join(colorModes, ", "), o.Color)
	}
	if o.PathMode != "" {
		if _, ok := diagfmt.ParsePathMode(o.PathMode); !ok {
			return fmt.Errorf("[output].path_mode: unknown mode %q", o.PathMode)
		}
	}
	if o.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must be non-negative, got %d", o.MaxDiagnostics)
	}
	return nil
}
