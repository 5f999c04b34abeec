// Command api runs only the HTTP server. Settings come from the file named
// by SHOPGRAPH_CONFIG (default shopgraph.yaml) and SHOPGRAPH_* variables.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/TwigBush/shopgraph/internal/cli"
	"github.com/TwigBush/shopgraph/internal/config"
)

func main() {
	path := os.Getenv("SHOPGRAPH_CONFIG")
	if path == "" {
		path = "shopgraph.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	logger, closer, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Serve(ctx, cfg, logger); err != nil {
		logger.Error("server_exit", "err", err)
		stop()
		os.Exit(1)
	}
}
