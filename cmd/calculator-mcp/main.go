// Command calculator-mcp serves the calculator as MCP tools over stdio or
// streamable HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"keypad-calculator/internal/mcptools"
	"keypad-calculator/internal/session"
)

const version = "0.1.0"

func main() {
	var (
		portFlag    = flag.Int("port", 0, "TCP port to listen on (0 for stdio)")
		ttlFlag     = flag.Duration("session-ttl", 15*time.Minute, "Discard sessions idle for longer than this (0 keeps them)")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println("calculator-mcp v" + version)
		os.Exit(0)
	}

	// stdout carries the protocol; zap's production config logs to stderr.
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	store := session.NewStore(*ttlFlag, session.WithLogger(logger))
	if *ttlFlag > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go store.Run(ctx, time.Minute)
	}

	mcpServer := server.NewMCPServer(
		"calculator-mcp",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	mcptools.New(store, logger).Register(mcpServer)

	if *portFlag == 0 {
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Fatal("stdio server failed", zap.Error(err))
		}
		return
	}

	addr := fmt.Sprintf(":%d", *portFlag)
	logger.Info("starting streamable HTTP server", zap.String("addr", addr))
	if err := server.NewStreamableHTTPServer(mcpServer).Start(addr); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}
