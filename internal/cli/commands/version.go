package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/docsql/pkg/adapter"
)

// NewVersionCommand creates the version command. It also lists the data
// source kinds registered in this binary.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version and supported data source kinds",
		Long: `Display the docsql version, the build it came from and the data source
kinds this binary can connect to.`,
		Example: `  docsql version
  docsql version --short`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(w, version)
				return
			}

			_, _ = fmt.Fprintf(w, "docsql v%s (%s, built %s, %s %s/%s)\n",
				version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)

			kinds := adapter.ListAdapters()
			if len(kinds) == 0 {
				kinds = []string{"none"}
			}
			_, _ = fmt.Fprintf(w, "data sources: %s\n", strings.Join(kinds, ", "))
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}
