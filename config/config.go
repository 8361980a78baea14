// Package config loads oxiparse settings from oxiparse.toml or
// oxiparse.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/oxiparse/oxiby/parser"
)

// Format represents the configuration file format
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	FormatAuto
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "auto"
}

// FileNames are the names Discover looks for, in order of preference.
var FileNames = []string{"oxiparse.toml", "oxiparse.yaml", "oxiparse.yml"}

type Config struct {
	// Policy is "fail-fast" or "tolerant".
	Policy string `toml:"policy" yaml:"policy"`
	// MaxDepth caps nesting of expressions, types, patterns and blocks.
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
	// Comments keeps comments on parsed trees for doc-comment lookup.
	Comments bool `toml:"comments" yaml:"comments"`
	// Extensions selects the files scanned in a workspace.
	Extensions []string `toml:"extensions" yaml:"extensions"`
	// Exclude holds glob patterns matched against slash-separated paths
	// relative to the workspace root and against base names.
	Exclude []string `toml:"exclude" yaml:"exclude"`
	// Workers bounds the number of files parsed concurrently.
	Workers int `toml:"workers" yaml:"workers"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-" yaml:"-"`
}

func Default() *Config {
	return &Config{
		Policy:     parser.PolicyFailFast.String(),
		MaxDepth:   parser.DefaultMaxDepth,
		Extensions: []string{".oxi"},
		Exclude:    []string{".git", "node_modules"},
		Workers:    runtime.GOMAXPROCS(0),
	}
}

// Load reads a configuration file. Values missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := LoadFromString(string(data), detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}
	cfg := Default()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover looks for a configuration file in dir and its parents. It
// returns the defaults when none is found.
func Discover(dir string) (*Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return Load(path)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

func (c *Config) Validate() error {
	if _, err := parser.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// ParserOptions converts the configuration into parser options.
func (c *Config) ParserOptions() []parser.Option {
	policy, _ := parser.ParsePolicy(c.Policy)
	opts := []parser.Option{
		parser.WithPolicy(policy),
		parser.WithMaxDepth(c.MaxDepth),
	}
	if c.Comments {
		opts = append(opts, parser.WithComments())
	}
	return opts
}

// IsSource reports whether path has one of the configured extensions.
func (c *Config) IsSource(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Excluded reports whether rel, a path relative to the workspace root,
// matches an exclude pattern.
func (c *Config) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, pattern := range c.Exclude {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if strings.HasPrefix(rel, strings.TrimSuffix(pattern, "/")+"/") {
			return true
		}
	}
	return false
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}
