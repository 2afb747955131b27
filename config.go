package domscope

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level domscope configuration.
type Config struct {
	Browser   BrowserConfig  `yaml:"browser"`
	Report    ReportConfig   `yaml:"report"`
	Pages     []PageConfig   `yaml:"pages"`
	Sinks     []SinkConfig   `yaml:"sinks"`
	Snapshots SnapshotConfig `yaml:"snapshots"`
}

// BrowserConfig controls the Chrome connection for live analysis.
type BrowserConfig struct {
	Remote     string        `yaml:"remote"`  // ws:// DevTools URL; empty launches local Chrome
	Stealth    bool          `yaml:"stealth"` // apply stealth evasions to new tabs
	Headful    bool          `yaml:"headful"`
	NavTimeout time.Duration `yaml:"nav_timeout"`
}

// ReportConfig controls report composition.
type ReportConfig struct {
	MaxDepth         int  `yaml:"max_depth"`         // full structural dumps
	OverviewDepth    int  `yaml:"overview_depth"`    // structure section in reports
	IncludeDetails   bool `yaml:"include_details"`
	InteractiveLimit int  `yaml:"interactive_limit"`
	TextPreview      int  `yaml:"text_preview"`
	PageText         bool `yaml:"page_text"` // append the markdown appendix
}

// PageConfig defines a page to analyse in daemon mode. Exactly one of
// URL or File must be set.
type PageConfig struct {
	ID   string `yaml:"id"`
	URL  string `yaml:"url"`
	File string `yaml:"file"`
}

// SinkConfig defines an output backend.
type SinkConfig struct {
	Type string `yaml:"type"` // stdout | jsonl | file
	Path string `yaml:"path"` // for jsonl/file
}

// SnapshotConfig enables the HTML snapshot cache.
type SnapshotConfig struct {
	Path string `yaml:"path"` // sqlite file; empty disables caching
}

// LoadConfig reads a YAML configuration file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() *Config {
	var cfg Config
	cfg.Defaults()
	return &cfg
}

// Defaults fills unset fields.
func (c *Config) Defaults() {
	if c.Browser.NavTimeout <= 0 {
		c.Browser.NavTimeout = 30 * time.Second
	}
	if c.Report.MaxDepth <= 0 {
		c.Report.MaxDepth = 5
	}
	if c.Report.OverviewDepth <= 0 {
		c.Report.OverviewDepth = 3
	}
	if c.Report.InteractiveLimit <= 0 {
		c.Report.InteractiveLimit = 20
	}
	if c.Report.TextPreview <= 0 {
		c.Report.TextPreview = 100
	}
}

// Validate rejects configurations the service cannot run.
func (c *Config) Validate() error {
	for i, p := range c.Pages {
		if p.URL == "" && p.File == "" {
			return fmt.Errorf("config: pages[%d]: url or file is required", i)
		}
		if p.URL != "" && p.File != "" {
			return fmt.Errorf("config: pages[%d]: url and file are mutually exclusive", i)
		}
	}
	for i, s := range c.Sinks {
		switch s.Type {
		case "stdout":
		case "jsonl", "file":
			if s.Path == "" {
				return fmt.Errorf("config: sinks[%d]: path is required for %s", i, s.Type)
			}
		default:
			return fmt.Errorf("config: sinks[%d]: unknown type %q", i, s.Type)
		}
	}
	return nil
}
