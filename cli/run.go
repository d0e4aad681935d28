package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ka2n/llamadocs/api"
	"github.com/ka2n/llamadocs/mcp"
	"github.com/morikuni/failure/v2"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the llamadocs command tree
func NewRootCommand() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:           "llamadocs",
		Short:         "Serve LlamaIndex documentation to MCP clients",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `llamadocs discovers the pages of the LlamaIndex documentation site and
serves them to Model Context Protocol clients as resources and tools.

Serve JSON-RPC over HTTP:
  llamadocs serve --addr :8000

Serve MCP over stdio:
  llamadocs mcp

Browse from the terminal:
  llamadocs resources
  llamadocs search agents
  llamadocs fetch --markdown https://docs.llamaindex.ai/en/stable/`,
	}
	opts.register(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		mcp.ServeCommand(opts.loadLibrary),
		mcp.Command(opts.loadLibrary),
		newResourcesCommand(&opts),
		newSearchCommand(&opts),
		newFetchCommand(&opts),
		newVersionCommand(),
	)
	return rootCmd
}

// Run executes the main CLI functionality
func Run() error {
	return NewRootCommand().Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "llamadocs version %s\n", api.VersionString())
		},
	}
}

func newResourcesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the documentation resources discovered on the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := opts.loadLibrary(cmd.Context())
			if err != nil {
				return err
			}
			printResources(cmd.OutOrStdout(), lib.Resources())
			return nil
		},
	}
}

func printResources(w io.Writer, resources []api.Resource) {
	name := color.New(color.FgCyan, color.Bold)
	gray := color.New(color.FgHiBlack)

	fmt.Fprintf(w, "Documentation Resources (%d):\n", len(resources))
	for _, r := range resources {
		name.Fprintf(w, "  %s\n", r.Name)
		fmt.Fprintf(w, "    %s\n", r.Description)
		gray.Fprintf(w, "    %s\n", r.URI)
	}
}

func newSearchCommand(opts *options) *cobra.Command {
	limit := countFlag{Value: api.DefaultSearchLimit}
	var output outputFlag

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the documentation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if strings.TrimSpace(query) == "" {
				return failure.New(InvalidArguments, failure.Message("Search query must not be empty"))
			}

			lib, err := opts.loadLibrary(cmd.Context())
			if err != nil {
				return err
			}

			results, err := lib.Search(cmd.Context(), query, limit.Value)
			if err != nil {
				return failure.Wrap(err, failure.WithCode(InvalidLimit), failure.Message("Search failed"))
			}

			if output.String() == outputJSON {
				b, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return failure.Wrap(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			printSearchResults(cmd.OutOrStdout(), query, results)
			return nil
		},
	}
	cmd.Flags().VarP(&limit, "limit", "n", "Maximum number of results")
	cmd.Flags().VarP(&output, "output", "o", "Output format: text or json")
	return cmd
}

func printSearchResults(w io.Writer, query string, results []api.SearchResult) {
	if len(results) == 0 {
		color.New(color.FgYellow).Fprintf(w, "No results for %q\n", query)
		return
	}

	title := color.New(color.FgGreen, color.Bold)
	gray := color.New(color.FgHiBlack)
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title.Fprintf(w, "%s\n", r.Title)
		gray.Fprintf(w, "%s\n", r.URI)
		for _, line := range strings.Split(r.Snippet, "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
