package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"go.uber.org/zap"

	"github.com/qduelist/qduel/internal/game"
	"github.com/qduelist/qduel/internal/log"
)

// Server hosts a duel between the local player (Mage) and one TCP client (Wizard).
type Server struct {
	PoolFile string
	Port     string
	HostPool int    // host's pool number (1-indexed)
	Seed     uint64 // 0 for random
	Logger   *zap.Logger
}

// LoadPools resolves the host and joiner pools and the rules from a pool file.
// An empty path selects the built-in pool and rules.
func LoadPools(path string, hostPool, joinerPool int) (host, joiner game.Pool, rules game.Rules, err error) {
	if path == "" {
		return game.DefaultPool(), game.DefaultPool(), game.DefaultRules(), nil
	}
	host, rules, err = game.PoolByNumber(path, hostPool)
	if err != nil {
		return host, joiner, rules, fmt.Errorf("load host pool: %w", err)
	}
	joiner, _, err = game.PoolByNumber(path, joinerPool)
	if err != nil {
		return host, joiner, rules, fmt.Errorf("load joiner pool: %w", err)
	}
	return host, joiner, rules, nil
}

// Run starts the server, waits for a client to join, then runs the duel.
func (s *Server) Run(ctx context.Context) error {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	logger.Info("waiting for opponent", zap.String("port", s.Port))

	// Accept exactly one connection (the joiner)
	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	logger.Info("opponent connected", zap.Stringer("remote", conn.RemoteAddr()))

	// Read the joiner's pool choice
	dec := json.NewDecoder(conn)
	var joinMsg ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	joinerPool := joinMsg.PoolNumber
	if joinerPool == 0 {
		joinerPool = 1
	}

	hostPool, wizardPool, rules, err := LoadPools(s.PoolFile, s.HostPool, joinerPool)
	if err != nil {
		return err
	}
	logger.Info("pools selected",
		zap.String("mage", hostPool.Name),
		zap.String("wizard", wizardPool.Name))

	// Create a pipe for the host's local connection
	hostConn, hostServerConn := net.Pipe()

	// Mage = host, Wizard = joiner
	hostCtrl := NewNetworkController(hostServerConn, game.Mage)
	joinerCtrl := NewNetworkControllerWithDecoder(conn, dec, game.Wizard)

	duel := game.NewDuel(game.DuelConfig{
		MagePool:   &hostPool,
		WizardPool: &wizardPool,
		Rules:      rules,
		Logger:     log.NewZapLogger(logger.Named("duel")),
		Seed:       s.Seed,
	}, hostCtrl, joinerCtrl)
	matchID := duel.State.ID
	logger.Info("match started", zap.String("match_id", matchID))

	// Run the host's local REPL in a goroutine
	errCh := make(chan error, 2)
	go func() {
		client := NewClient(hostConn, "Mage")
		errCh <- client.RunREPL(ctx)
	}()

	// Run the duel
	go func() {
		winner, err := duel.Run(ctx)
		if err != nil {
			errCh <- fmt.Errorf("duel error: %w", err)
			return
		}
		logger.Info("match finished",
			zap.String("match_id", matchID),
			zap.Int("winner", winner),
			zap.String("result", duel.State.Result))

		_ = joinerCtrl.SendGameOver(matchID, winner, duel.State.Result)
		_ = hostCtrl.SendGameOver(matchID, winner, duel.State.Result)
		errCh <- nil
	}()

	// Wait for either the duel or the REPL to finish
	return <-errCh
}
