package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure/v2"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

const wordWrap = 100

func newFetchCommand(opts *options) *cobra.Command {
	var (
		markdownFlag bool
		browserFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <uri>",
		Short: "Show the content of a documentation page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri := args[0]

			if browserFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "Opening in browser: %s\n", uri)
				return failure.Wrap(browser.OpenURL(uri))
			}

			lib, err := opts.newLibrary()
			if err != nil {
				return err
			}

			var out string
			if markdownFlag {
				out, err = renderMarkdown(lib.ReadMarkdown(cmd.Context(), uri))
				if err != nil {
					return err
				}
			} else {
				out = lib.Read(cmd.Context(), uri)
			}

			if isTerminal(cmd.OutOrStdout()) {
				return failure.Wrap(RunPager(uri, out))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return failure.Wrap(err)
		},
	}
	cmd.Flags().BoolVarP(&markdownFlag, "markdown", "m", false, "Render the page as Markdown")
	cmd.Flags().BoolVarP(&browserFlag, "browser", "b", false, "Open the page in the browser instead")
	return cmd
}

// renderMarkdown renders md for the terminal
func renderMarkdown(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", failure.Wrap(err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", failure.Wrap(err)
	}
	return out, nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
