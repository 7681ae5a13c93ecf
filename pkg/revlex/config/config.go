// Package config loads run configuration and reference data files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/revlex/pkg/revlex/internalerr"
)

// Config holds one pipeline run's configuration.
type Config struct {
	Corpus struct {
		Path   string `yaml:"path"`
		Format string `yaml:"format"` // csv or jsonl
	} `yaml:"corpus"`

	Lexicon struct {
		Path   string `yaml:"path"`
		Format string `yaml:"format"` // tsv or yaml
	} `yaml:"lexicon"`

	StoplistPath string `yaml:"stoplist"`

	Language   string `yaml:"language"`    // default "english"
	MinLength  int    `yaml:"min_length"`  // default 5 runes
	MaxLength  int    `yaml:"max_length"`  // default 8000 runes
	MinSupport int    `yaml:"min_support"` // default 3 reviews
	Workers    int    `yaml:"workers"`     // default 1

	Output struct {
		Dir     string   `yaml:"dir"`
		Formats []string `yaml:"formats"` // csv, jsonl, sqlite
	} `yaml:"output"`
}

// Load reads a Config from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Corpus.Format == "" {
		c.Corpus.Format = "csv"
	}
	if c.Lexicon.Format == "" {
		c.Lexicon.Format = "tsv"
	}
	if c.Language == "" {
		c.Language = "english"
	}
	if c.MinLength == 0 {
		c.MinLength = 5
	}
	if c.MaxLength == 0 {
		c.MaxLength = 8000
	}
	if c.MinSupport == 0 {
		c.MinSupport = 3
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{"csv"}
	}
}

// Validate ensures the configuration is coherent.
func (c *Config) Validate() error {
	if c.Corpus.Path == "" {
		return fmt.Errorf("corpus path is required: %w", internalerr.ErrInvalidConfig)
	}
	switch c.Corpus.Format {
	case "csv", "jsonl":
	default:
		return fmt.Errorf("corpus format %q: %w", c.Corpus.Format, internalerr.ErrInvalidConfig)
	}
	if c.Lexicon.Path == "" {
		return fmt.Errorf("lexicon path is required: %w", internalerr.ErrInvalidConfig)
	}
	switch c.Lexicon.Format {
	case "tsv", "yaml":
	default:
		return fmt.Errorf("lexicon format %q: %w", c.Lexicon.Format, internalerr.ErrInvalidConfig)
	}
	if c.MinLength < 0 || c.MaxLength < 0 || c.MinSupport < 0 {
		return fmt.Errorf("length and support thresholds must be non-negative: %w", internalerr.ErrInvalidConfig)
	}
	if c.MaxLength > 0 && c.MaxLength < c.MinLength {
		return fmt.Errorf("max_length below min_length: %w", internalerr.ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive: %w", internalerr.ErrInvalidConfig)
	}
	for _, format := range c.Output.Formats {
		switch format {
		case "csv", "jsonl", "sqlite":
		default:
			return fmt.Errorf("output format %q: %w", format, internalerr.ErrInvalidConfig)
		}
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stoplist %s: %w", path, err)
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse stoplist %s: %w", path, err)
	}

	return &sl, nil
}
