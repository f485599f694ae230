package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/docsql/pkg/core"
)

// Query output formats.
const (
	formatTable    = "table"
	formatMarkdown = "markdown"
	formatHTML     = "html"
	formatJSON     = "json"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Source string
	Format string
	Input  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run one query against a configured data source",
		Long: `Run a single SQL query against one of the configured data sources and
print the result with the same formatting the documentation uses.

The table and markdown formats show formatted values; html prints the table
exactly as it is embedded in pages; json prints unformatted values.`,
		Example: `  # Query the default source
  docsql query "SELECT name, population FROM countries"

  # Query a named source
  docsql query --source warehouse "SELECT COUNT(*) FROM orders"

  # Read the query from a file, print the HTML table
  docsql query -i report.sql --format html

  # Pipe the query in
  echo "SELECT 1" | docsql query`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Source, "source", "s", core.DefaultSourceName, "Data source name")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", formatTable, "Output format: table, markdown, html, json")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{formatTable, formatMarkdown, formatHTML, formatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	sqlQuery, err := readQuery(cmd, args, opts.Input)
	if err != nil {
		return err
	}

	cc := NewCommandContext(cmd)
	p := cc.NewPool()
	defer func() { _ = p.CloseAll() }()

	table, err := p.Execute(cmd.Context(), cc.Cfg.Global().Databases, opts.Source, sqlQuery)
	if err != nil {
		return err
	}

	return renderResults(cmd.OutOrStdout(), table, opts.Format)
}

// readQuery takes the query from the argument, the --input file, or piped
// stdin, in that order.
func readQuery(cmd *cobra.Command, args []string, input string) (string, error) {
	var sqlQuery string
	switch {
	case len(args) == 1:
		sqlQuery = args[0]
	case input != "":
		content, err := os.ReadFile(input) //nolint:gosec // G304: user-supplied query file
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(cmd.InOrStdin()):
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	}

	sqlQuery = strings.TrimSpace(sqlQuery)
	if sqlQuery == "" {
		return "", fmt.Errorf("no query given\nHint: pass SQL as an argument, with --input, or on stdin")
	}
	return sqlQuery, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd fits in int
}
