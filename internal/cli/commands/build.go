package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/docsql/internal/cli/output"
	"github.com/leapstack-labs/docsql/internal/docs"
)

// BuildOptions holds options for the build command.
type BuildOptions struct {
	Strict bool
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the documentation site",
		Long: `Process every Markdown page in the docs directory and write the result to
the site directory.

Each sql block is executed against its data source and replaced with a
rendered table. Files that are not Markdown are copied unchanged, and the
toggle stylesheet and script are written alongside them. A failing block is
rendered as an error in place and does not stop the build.`,
		Example: `  # Build with docsql.yaml from the current project
  docsql build

  # Build another directory and fail if any block errors
  docsql build --docs-dir handbook --site-dir public --strict

  # Machine-readable summary
  docsql build -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit with an error if any query block fails")

	return cmd
}

func runBuild(cmd *cobra.Command, opts *BuildOptions) error {
	cc := NewCommandContext(cmd)
	if err := cc.Cfg.ValidateDirectories(); err != nil {
		return err
	}

	m, err := docs.Build(cmd.Context(), cc.BuildOptions())
	if err != nil {
		return err
	}
	if err := renderManifest(cc.Renderer, m); err != nil {
		return err
	}

	if opts.Strict && m.Stats.Failed > 0 {
		return fmt.Errorf("%d query block(s) failed", m.Stats.Failed)
	}
	return nil
}

func renderManifest(r *output.Renderer, m *docs.Manifest) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(m)
	}

	if m.Stats.Failed > 0 {
		r.Warning(fmt.Sprintf("Built with %d failed block(s)", m.Stats.Failed))
	} else {
		r.Success("Build complete")
	}
	r.KeyValue("Pages", fmt.Sprintf("%d", m.Stats.Pages))
	r.KeyValue("Blocks", fmt.Sprintf("%d", m.Stats.Blocks))
	r.KeyValue("Failed", fmt.Sprintf("%d", m.Stats.Failed))
	r.KeyValue("Warnings", fmt.Sprintf("%d", m.Stats.Warnings))
	r.KeyValue("Copied", fmt.Sprintf("%d", m.Copied))
	r.KeyValue("Site", m.SiteDir)
	r.KeyValue("Duration", m.Duration)

	failed := m.FailedPages()
	if len(failed) > 0 {
		r.Println()
		r.Header(2, "Failed pages")
		for _, p := range failed {
			r.StatusLine(p.Path, "error", fmt.Sprintf("%d of %d block(s) failed", p.Failed, p.Blocks))
		}
	}
	return nil
}
