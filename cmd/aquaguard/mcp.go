// ABOUTME: MCP serve command
// ABOUTME: Starts the MCP server for AI agent integration

package main

import (
	"os/signal"
	"syscall"

	"github.com/harper/aquaguard/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		assessor, closeAssessor, err := buildAssessor(ctx)
		if err != nil {
			return err
		}
		defer closeAssessor()

		server, err := mcp.NewServer(store, assessor)
		if err != nil {
			return err
		}
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
