package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/docsql/internal/cli/output"
	"github.com/leapstack-labs/docsql/internal/engine"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Out string
}

// renderOutput is the JSON shape of a rendered page.
type renderOutput struct {
	Path    string       `json:"path"`
	Content string       `json:"content"`
	Stats   engine.Stats `json:"stats"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a single Markdown page",
		Long: `Run the sql blocks of one Markdown page and print the processed page.

This is useful for checking a page's queries and front matter without
building the whole site. Use "-" to read the page from stdin.`,
		Example: `  # Print the processed page
  docsql render docs/countries.md

  # Write it to a file
  docsql render docs/countries.md --out /tmp/countries.md

  # Read from stdin
  cat page.md | docsql render -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Write the processed page to this file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, path string, opts *RenderOptions) error {
	cc := NewCommandContext(cmd)

	content, err := readPage(cmd, path)
	if err != nil {
		return err
	}

	eng := cc.NewEngine()
	defer func() { _ = eng.Close() }()

	out := eng.ProcessPage(cmd.Context(), engine.Page{Path: filepath.ToSlash(path), Text: content})
	stats := eng.Stats()
	if stats.Failed > 0 {
		cc.Logger.Warn("page rendered with failed blocks", "page", path, "failed", stats.Failed)
	}

	if opts.Out != "" {
		if err := os.WriteFile(opts.Out, []byte(out), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.Out, err)
		}
		return nil
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(renderOutput{Path: path, Content: out, Stats: stats})
	}
	_, err = io.WriteString(r.Writer(), out)
	return err
}

func readPage(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	}

	content, err := os.ReadFile(path) //nolint:gosec // G304: path is a user-supplied page
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}
