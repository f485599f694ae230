package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/docsql/internal/cli/config"
	"github.com/leapstack-labs/docsql/internal/docs"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the site whenever pages or config change",
		Long: `Build the documentation site, then rebuild it whenever a file under the
docs directory or docsql.yaml changes. Press Ctrl+C to stop.

Each rebuild reloads the configuration and opens fresh connections.`,
		Example: `  docsql watch
  docsql watch --docs-dir handbook -v`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)
	if err := cc.Cfg.ValidateDirectories(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configFile := config.GetConfigFileUsed()
	flags := cmd.Root().PersistentFlags()
	first := true

	return docs.Watch(ctx, docs.WatchOptions{
		Load: func() (docs.Options, error) {
			if first {
				first = false
				return cc.BuildOptions(), nil
			}
			cfg, err := config.LoadConfig(configFile, flags)
			if err != nil {
				return docs.Options{}, err
			}
			return buildOptions(cfg, cc.Logger), nil
		},
		ConfigFile: configFile,
		OnBuild: func(m *docs.Manifest, err error) {
			if err != nil {
				cc.Renderer.Error(err.Error())
				return
			}
			_ = renderManifest(cc.Renderer, m)
		},
		Logger: cc.Logger,
	})
}
