package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	qnet "github.com/qduelist/qduel/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := os.Args[1]
	switch cmd {
	case "host":
		runHost(ctx, os.Args[2:])
	case "join":
		runJoin(ctx, os.Args[2:])
	case "sim":
		runSim(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  qduel host [--pool N] [--port P] [--pools FILE] [--seed S] [--debug]")
	fmt.Println("  qduel join [--pool N] [--addr ADDR]")
	fmt.Println("  qduel sim  [--games N] [--mage-pool N] [--wizard-pool N] [--pools FILE] [--seed S] [--verbose]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a duel server and play as the Mage")
	fmt.Println("  join    Connect to a duel server and play as the Wizard")
	fmt.Println("  sim     Run bot-vs-bot duels and print a summary")
}

// newLogger builds the operational logger. Debug mode uses zap's
// human-readable development encoder.
func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func runHost(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	pool := fs.Int("pool", 1, "pool number to use (from pools.yaml)")
	port := fs.String("port", "9000", "TCP port to listen on")
	poolsFile := fs.String("pools", "pools.yaml", "path to pools file (empty for the built-in pool)")
	seed := fs.Uint64("seed", 0, "RNG seed (0 for random)")
	debug := fs.Bool("debug", false, "development logging")
	fs.Parse(args)

	logger := newLogger(*debug)
	defer logger.Sync()

	srv := &qnet.Server{
		PoolFile: *poolsFile,
		Port:     *port,
		HostPool: *pool,
		Seed:     *seed,
		Logger:   logger,
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("host failed", zap.Error(err))
		os.Exit(1)
	}
}

func runJoin(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	pool := fs.Int("pool", 1, "pool number to use (from the host's pools.yaml)")
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	if err := qnet.Connect(ctx, *addr, *pool); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
