package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "slackgraph/internal/adapters/mcp"
	"slackgraph/internal/adapters/sqlite"
	"slackgraph/internal/config"
)

func main() {
	_ = godotenv.Load()

	mirrorFlag := flag.String("mirror", config.MirrorPath(), "path to the mirror store")
	flag.Parse()

	mirror, err := sqlite.Open(*mirrorFlag)
	if err != nil {
		log.Fatalf("slackgraph-mcp: %v", err)
	}
	defer mirror.Close()

	mcpServer := server.NewMCPServer(
		"slackgraph-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, mirror)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("slackgraph-mcp: %v", err)
	}
}
