package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "provmark/internal/adapters/mcp"
	"provmark/internal/bootstrap"
	"provmark/internal/config"
)

func main() {
	config.LoadEnv()

	var opts bootstrap.Options
	flag.StringVar(&opts.Dataset, "dataset", config.DatasetPath(), "dataset file (.csv or .xlsx)")
	flag.StringVar(&opts.Store, "store", config.StorePath(), "SQLite cache file")
	flag.BoolVar(&opts.NoCache, "no-cache", false, "read the dataset directly")
	flag.StringVar(&opts.VocabPath, "vocab", config.VocabPath(), "vocabulary YAML file")
	logLevel := flag.String("log-level", config.LogLevel(), "log level")
	flag.Parse()

	// stdout carries the protocol
	logger, err := config.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		log.Fatalf("provmark-mcp: %v", err)
	}

	ws, err := bootstrap.NewWorkspace(logger, opts.VocabPath)
	if err != nil {
		log.Fatalf("provmark-mcp: %v", err)
	}
	res, err := bootstrap.LoadDataset(context.Background(), ws, opts)
	if err != nil {
		log.Fatalf("provmark-mcp: %v", err)
	}
	logger.Info(res.Message)

	mcpServer := server.NewMCPServer(
		"provmark-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, ws)
	mcpadapter.RegisterWriteTools(mcpServer, ws)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("provmark-mcp: %v", err)
	}
}
