// Package config loads filterql settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jvitoroc/filterql/format"
	"github.com/jvitoroc/filterql/query"
)

type Config struct {
	Limits   Limits  `yaml:"limits"`
	Catalog  Catalog `yaml:"catalog"`
	Output   string  `yaml:"output"`
	LogLevel string  `yaml:"log_level"`
}

// Limits mirrors query.Limits. Zero disables a limit.
type Limits struct {
	MaxDepth  int `yaml:"max_depth"`
	MaxTokens int `yaml:"max_tokens"`
}

type Catalog struct {
	Dir string `yaml:"dir"`
}

func Default() *Config {
	dir := ".filterql"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".filterql")
	}

	return &Config{
		Limits: Limits{
			MaxDepth:  query.DefaultLimits.MaxDepth,
			MaxTokens: query.DefaultLimits.MaxTokens,
		},
		Catalog:  Catalog{Dir: dir},
		Output:   string(format.Tree),
		LogLevel: "info",
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

func (c *Config) Validate() error {
	if c.Limits.MaxDepth < 0 {
		return fmt.Errorf("limits.max_depth must not be negative, got %d", c.Limits.MaxDepth)
	}

	if c.Limits.MaxTokens < 0 {
		return fmt.Errorf("limits.max_tokens must not be negative, got %d", c.Limits.MaxTokens)
	}

	if !format.IsFormat(c.Output) {
		return fmt.Errorf("output format '%s' is not one of %v", c.Output, format.Formats)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

func (c *Config) QueryLimits() query.Limits {
	return query.Limits{
		MaxDepth:  c.Limits.MaxDepth,
		MaxTokens: c.Limits.MaxTokens,
	}
}

func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}

	return l, nil
}
