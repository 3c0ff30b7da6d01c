// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/joe/find-files/internal/matcher"
	"github.com/joe/find-files/internal/search"
	"github.com/joe/find-files/pkg/filesystem"
)

// Exported constants.
const (
	// DefaultRoot is searched when no root is given
	DefaultRoot = "."
)

// Exported variables.
var (
	ErrNothingToYield = errors.New("at least one of --files or --dirs must be enabled")
	ErrNegativeLimit  = errors.New("limit must be zero (unlimited) or positive")
)

// Config holds the application configuration
type Config struct {
	Root            string       `arg:"positional" help:"Directory to search: local path or sftp://user@host[:port]/path (default: .)"`
	RootFlag        string       `arg:"-r,--root" help:"Directory to search (alternative to the positional argument)"`
	Pattern         string       `arg:"-p,--pattern" help:"Only yield entries whose name matches this pattern"`
	Kind            matcher.Kind `arg:"--kind" default:"glob" help:"Pattern syntax: glob|regex"`
	IgnoreCase      bool         `arg:"-c,--ignore-case" help:"Match names case-insensitively"`
	Files           bool         `arg:"--files" default:"true" help:"Yield files (use --files=false to hide them)"`
	Dirs            bool         `arg:"--dirs" default:"true" help:"Yield matching directories and descend into them (--dirs=false searches the root directory only)"`
	Limit           int          `arg:"-n,--limit" help:"Stop after this many results (0 = unlimited)"`
	SkipErrors      bool         `arg:"--skip-errors" help:"Skip unreadable directories instead of stopping"`
	LogPath         string       `arg:"--log" help:"Write a run log to this file"`
	InteractiveMode bool         `arg:"-i,--interactive" help:"Show results in an interactive terminal view"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "A lazy, depth-first file finder for local and SFTP directory trees"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "find-files 1.0.0"
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{
		Kind:  matcher.Glob,
		Files: true,
		Dirs:  true,
	}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	if cfg.Root == "" {
		cfg.Root = cfg.RootFlag
	}

	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}

	if !cfg.Files && !cfg.Dirs {
		return nil, ErrNothingToYield
	}

	if cfg.Limit < 0 {
		return nil, ErrNegativeLimit
	}

	if _, err := cfg.NewMatcher(); err != nil {
		return nil, err
	}

	if err := cfg.ValidateRoot(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewMatcher compiles the configured pattern.
func (cfg *Config) NewMatcher() (search.Matcher, error) {
	return matcher.New(cfg.Pattern, cfg.Kind, cfg.IgnoreCase)
}

// ValidateRoot validates that the search root is usable. Remote roots are
// only checked for URL syntax; reachability is checked when connecting.
func (cfg *Config) ValidateRoot() error {
	parsed, err := filesystem.ParsePath(cfg.Root)
	if err != nil {
		return err
	}

	if parsed.IsRemote {
		return nil
	}

	info, err := os.Stat(parsed.LocalPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("root path does not exist: %s", cfg.Root) //nolint:err113 // Validation with actual value
	}

	if err != nil {
		return fmt.Errorf("cannot access root path: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("root path is not a directory: %s", cfg.Root) //nolint:err113 // Validation with actual value
	}

	return nil
}
