package mcp

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ka2n/llamadocs/api"
	"github.com/spf13/cobra"
)

// EnvAddr overrides the default HTTP listen address
const EnvAddr = "LLAMADOCS_ADDR"

// LibraryLoader builds the initialized Library a command serves
type LibraryLoader func(ctx context.Context) (*api.Library, error)

// Command returns the MCP server command
func Command(load LibraryLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := load(cmd.Context())
			if err != nil {
				return err
			}
			return NewServer(lib).Run()
		},
	}
}

// ServeCommand returns the command serving JSON-RPC over HTTP
func ServeCommand(load LibraryLoader) *cobra.Command {
	addr := os.Getenv(EnvAddr)
	if addr == "" {
		addr = DefaultAddr
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start JSON-RPC server over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			lib, err := load(ctx)
			if err != nil {
				return err
			}
			return ListenAndServe(ctx, addr, NewHandler(NewDispatcher(lib)))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", addr, "Listen address (env "+EnvAddr+")")
	return cmd
}
