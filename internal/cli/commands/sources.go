package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/docsql/internal/cli/output"
)

// SourcesOptions holds options for the sources command.
type SourcesOptions struct {
	Check bool
}

// sourceInfo describes one configured data source.
type sourceInfo struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Target string `json:"target"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewSourcesCommand creates the sources command.
func NewSourcesCommand() *cobra.Command {
	opts := &SourcesOptions{}

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the configured data sources",
		Long: `List the data sources from docsql.yaml with their connection targets.
Passwords are masked.

With --check, each source is connected to and the result reported. The
command fails if any source cannot be reached.`,
		Example: `  docsql sources
  docsql sources --check
  docsql sources -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSources(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Check, "check", false, "Connect to each source and report the result")

	return cmd
}

func runSources(cmd *cobra.Command, opts *SourcesOptions) error {
	cc := NewCommandContext(cmd)
	global := cc.Cfg.Global()

	p := cc.NewPool()
	defer func() { _ = p.CloseAll() }()

	infos := make([]sourceInfo, 0, len(global.Databases))
	failed := 0
	for _, name := range global.SourceNames() {
		src := global.Databases[name]
		info := sourceInfo{Name: name, Type: string(src.EffectiveKind())}

		target, err := p.Describe(global.Databases, name)
		if err != nil {
			info.Error = err.Error()
		}
		info.Target = target

		if opts.Check && info.Error == "" {
			if _, err := p.Connection(cmd.Context(), global.Databases, name); err != nil {
				info.Status = "error"
				info.Error = err.Error()
			} else {
				info.Status = "ok"
			}
		}
		if info.Error != "" {
			failed++
		}
		infos = append(infos, info)
	}

	if err := renderSources(cc.Renderer, infos, opts.Check); err != nil {
		return err
	}
	if opts.Check && failed > 0 {
		return fmt.Errorf("%d of %d source(s) unreachable", failed, len(infos))
	}
	return nil
}

func renderSources(r *output.Renderer, infos []sourceInfo, check bool) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	if len(infos) == 0 {
		r.Muted("No data sources configured")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(r.Writer())
	tw.SetStyle(table.StyleLight)

	header := table.Row{"Name", "Type", "Target"}
	if check {
		header = append(header, "Status")
	}
	tw.AppendHeader(header)

	for _, info := range infos {
		row := table.Row{info.Name, info.Type, info.Target}
		if check {
			status := info.Status
			if info.Error != "" {
				status = "error: " + info.Error
			}
			row = append(row, status)
		}
		tw.AppendRow(row)
	}
	tw.Render()
	return nil
}
