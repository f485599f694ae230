// Package parser extracts the structured parts of a Markdown page:
// YAML front matter and fenced SQL query blocks.
package parser

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/docsql/pkg/core"
)

// FrontmatterConfig represents the docsql keys of a page's front matter.
// Other keys (title, tags, ...) belong to the site generator and are ignored.
type FrontmatterConfig struct {
	ShowQuery *bool                            `koanf:"show_query"`
	Databases map[string]core.DataSourceConfig `koanf:"databases"`
}

// FrontmatterResult holds the result of front matter extraction.
type FrontmatterResult struct {
	Config  *FrontmatterConfig
	Body    string // page text after the closing delimiter
	HasYAML bool   // whether a delimited block was found
}

// frontmatterPattern matches a leading ---\n ... \n--- block.
var frontmatterPattern = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(?:(.*?)\r?\n)?---[ \t]*(?:\r?\n|\z)`)

// ExtractFrontmatter extracts and decodes YAML front matter from page text.
// A page without front matter yields an empty config and no error.
func ExtractFrontmatter(content string) (*FrontmatterResult, error) {
	result := &FrontmatterResult{
		Config: &FrontmatterConfig{},
		Body:   content,
	}

	loc := frontmatterPattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return result, nil
	}

	result.HasYAML = true
	result.Body = content[loc[1]:]

	var yamlContent string
	if loc[2] >= 0 {
		yamlContent = content[loc[2]:loc[3]]
	}

	config, err := parseFrontmatterYAML(yamlContent)
	if err != nil {
		return nil, err
	}

	result.Config = config
	return result, nil
}

func parseFrontmatterYAML(yamlContent string) (*FrontmatterConfig, error) {
	var rawMap map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &rawMap); err != nil {
		return nil, &ConfigParseError{
			Message: fmt.Sprintf("invalid YAML: %v", err),
			Err:     err,
		}
	}

	markPresence(rawMap)

	var config FrontmatterConfig
	if err := Decode(rawMap, &config); err != nil {
		return nil, &ConfigParseError{
			Message: fmt.Sprintf("failed to decode front matter: %v", err),
			Err:     err,
		}
	}

	return &config, nil
}

// ConfigParseError represents a front matter that could not be parsed.
// Callers recover from it by falling back to global settings.
type ConfigParseError struct {
	File    string
	Message string
	Err     error
}

func (e *ConfigParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}
