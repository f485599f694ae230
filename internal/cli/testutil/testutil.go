// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/docsql/internal/cli/output"
	"github.com/leapstack-labs/docsql/internal/testutil"
)

// ProjectConfig is the docsql.yaml written by SetupTestProject.
const ProjectConfig = `docs_dir: docs
site_dir: site
show_query: true
minify_assets: false
databases:
  default:
    type: sqlite
    path: population.db
`

// SetupTestProject creates a temporary project with a config file, the
// population database and two pages. It returns the project root.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	testutil.CreatePopulationDB(t, root, "population.db")

	files := map[string]string{
		"docsql.yaml": ProjectConfig,
		filepath.Join("docs", "index.md"): "# Countries\n\n```sql\n" +
			"SELECT name, gdp_usd AS country_gdp_usd FROM countries WHERE id = 3\n```\n",
		filepath.Join("docs", "guide", "cities.md"): "---\nshow_query: false\n---\n# Cities\n\n```sql\n" +
			"SELECT name, population FROM cities WHERE is_capital = 1 ORDER BY id LIMIT 3\n```\n",
		filepath.Join("docs", "img", "logo.txt"): "logo",
	}
	for rel, content := range files {
		WriteFile(t, filepath.Join(root, rel), content)
	}
	return root
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode without a TTY.
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertBalancedFences checks that every code fence in md is closed.
func AssertBalancedFences(t *testing.T, md string) {
	t.Helper()
	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}
}
