package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/docsql/internal/cli/config"
	"github.com/leapstack-labs/docsql/internal/cli/output"
	"github.com/leapstack-labs/docsql/internal/docs"
	"github.com/leapstack-labs/docsql/internal/engine"
	"github.com/leapstack-labs/docsql/internal/pool"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// BuildOptions returns the site build options for the current configuration.
func (c *CommandContext) BuildOptions() docs.Options {
	return buildOptions(c.Cfg, c.Logger)
}

// NewEngine creates a page engine for the current configuration.
// The caller must Close it.
func (c *CommandContext) NewEngine() *engine.Engine {
	return engine.New(engine.Config{
		Global:  c.Cfg.Global(),
		BaseDir: c.Cfg.ProjectRoot,
		Logger:  c.Logger,
	})
}

// NewPool creates a connection pool for the current configuration.
// The caller must CloseAll it.
func (c *CommandContext) NewPool() *pool.Pool {
	return pool.New(pool.Config{BaseDir: c.Cfg.ProjectRoot, Logger: c.Logger})
}

func buildOptions(cfg *config.Config, logger *slog.Logger) docs.Options {
	return docs.Options{
		DocsDir:      cfg.DocsDir,
		SiteDir:      cfg.SiteDir,
		Global:       cfg.Global(),
		BaseDir:      cfg.ProjectRoot,
		MinifyAssets: cfg.MinifyAssets,
		Logger:       logger,
	}
}

// getConfig returns the current configuration, or defaults when none was
// loaded (commands constructed outside the root command).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		DocsDir:      config.DefaultDocsDir,
		SiteDir:      config.DefaultSiteDir,
		ShowQuery:    config.DefaultShowQuery,
		LogFormat:    config.DefaultLogFormat,
		OutputFormat: config.DefaultOutput,
		MinifyAssets: config.DefaultMinifyAssets,
	}
}
