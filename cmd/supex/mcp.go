package main

import (
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	supex "github.com/supexhq/supex-go"
	"github.com/supexhq/supex-go/internal/docs"
	"github.com/supexhq/supex-go/internal/mcpserver"
)

func newMCPCommand() *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Long: `Run the Model-Context-Protocol server on stdio.

Exposes the runtime bridge as MCP tools (status, send_command,
list_runtime_resources) and the API documentation as supex://docs/
resources. Intended to be spawned by an MCP client, not run by hand.`,
		Args: cobra.NoArgs,
		RunE: mcpAction,
	}

	mcpCmd.Flags().String("docs-dir", defaultDocsDir(), "documentation tree root")

	return mcpCmd
}

func mcpAction(cmd *cobra.Command, _ []string) error {
	cfg, err := supex.LoadConfig()
	if err != nil {
		return err
	}

	if flags.host != "" {
		cfg.Host = flags.host
	}

	if flags.port != 0 {
		cfg.Port = flags.port
	}

	// MCP speaks JSON on stdout; all logging goes to stderr.
	log := newLogger()

	docsDir, err := cmd.Flags().GetString("docs-dir")
	if err != nil {
		return err
	}

	var store *docs.Store
	if s := docs.NewStore(docsDir); s.Available() {
		store = s
	} else {
		fmt.Fprintf(os.Stderr, "documentation not found at %s, docs resources disabled\n", docsDir)
	}

	server, err := mcpserver.New(mcpserver.Config{
		Name:        "supex",
		Version:     supex.Version(),
		Logger:      log,
		Registry:    supex.NewRegistry(log),
		ConnOptions: cfg.ConnOptions("mcp", log),
		Docs:        store,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	log.Info("MCP server ready", "version", supex.Version(), "transport", "stdio")

	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
