package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/mvp-joe/fileicons/internal/pipeline"
	"github.com/mvp-joe/fileicons/internal/source"
	"github.com/spf13/cobra"
)

var listAllFlag bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the language directories a build would process",
	Long: `List queries Sourcegraph for the entries under the configured Monaco root
and prints the directories a build would process, with the contribution file
URL of each.

Examples:
  # Directories that will be built
  fileicons list

  # Every entry, including skipped ones
  fileicons list --all
`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listAllFlag, "all", "a", false, "Include entries that are skipped")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := interruptContext(cmd.Context(), "Interrupted! Cancelling listing...")
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := source.NewHTTPClient(cfg.Fetch.Timeout, cfg.Sourcegraph.Token)
	entries, err := source.NewLister(cfg.Sourcegraph.Endpoint, client).
		List(ctx, cfg.Monaco.Repository, cfg.Monaco.Commit, cfg.Monaco.Root)
	if err != nil {
		return err
	}

	filter, err := pipeline.NewFilter(cfg.Monaco.Exclude)
	if err != nil {
		return err
	}

	fetcher, err := source.NewFetcher(source.FetcherConfig{
		BaseURL: cfg.Monaco.RawBase,
		Commit:  cfg.Monaco.Commit,
	}, source.NewHTTPClient(cfg.Fetch.Timeout, ""))
	if err != nil {
		return err
	}
	defer fetcher.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, e := range entries {
		eligible := filter.Eligible(e)
		switch {
		case eligible && listAllFlag:
			fmt.Fprintf(w, "build\t%s\t%s\n", e.Name(), fetcher.ContributionURL(e.Path))
		case eligible:
			fmt.Fprintf(w, "%s\t%s\n", e.Name(), fetcher.ContributionURL(e.Path))
		case listAllFlag:
			fmt.Fprintf(w, "skip\t%s\t\n", e.Name())
		}
	}
	return w.Flush()
}
