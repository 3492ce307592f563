package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	qduelmcp "github.com/qduelist/qduel/internal/mcp"
)

func main() {
	pools := flag.String("pools", "pools.yaml", "path to pools YAML file (empty for the built-in pool)")
	port := flag.String("port", "9999", "TCP port for human player connection")
	flag.Parse()

	// stdout carries the MCP protocol, so logs go to stderr.
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	qduelmcp.SetPoolFile(*pools)
	qduelmcp.SetPort(*port)
	qduelmcp.SetLogger(logger)

	s := server.NewMCPServer("qduel", "1.0.0")
	qduelmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		logger.Error("serve stdio", zap.Error(err))
		os.Exit(1)
	}
}
