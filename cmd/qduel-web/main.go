package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/qduelist/qduel/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	pools := flag.String("pools", "pools.yaml", "path to pools YAML file (empty for the built-in pool)")
	debug := flag.Bool("debug", false, "development logging")
	flag.Parse()

	var (
		logger *zap.Logger
		err    error
	)
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := web.NewServer(*pools, logger)
	if err := srv.ListenAndServe(ctx, fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("web server", zap.Error(err))
		os.Exit(1)
	}
}
