package config

import (
	"fmt"
	"os"
)

// Validate checks option values and every configured data source.
func (c *Config) Validate() error {
	if c.DocsDir == "" {
		return fmt.Errorf("docs_dir is required")
	}
	if c.SiteDir == "" {
		return fmt.Errorf("site_dir is required")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q (expected text or json)", c.LogFormat)
	}
	switch c.OutputFormat {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("invalid output %q (expected auto, text or json)", c.OutputFormat)
	}

	if err := c.Global().Validate(); err != nil {
		return fmt.Errorf("invalid databases configuration: %w", err)
	}
	return nil
}

// ValidateDirectories checks that the docs directory exists.
func (c *Config) ValidateDirectories() error {
	info, err := os.Stat(c.DocsDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("docs directory does not exist: %s\nHint: create it or use --docs-dir to specify a different path", c.DocsDir)
	}
	if err != nil {
		return fmt.Errorf("failed to read docs directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("docs directory is not a directory: %s", c.DocsDir)
	}
	return nil
}
