package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/qduelist/qduel/internal/game"
	"github.com/qduelist/qduel/internal/log"
	qnet "github.com/qduelist/qduel/internal/net"
)

// simSummary tallies the outcome of a batch of bot duels.
type simSummary struct {
	Games      int
	MageWins   int
	WizardWins int
	Draws      int
	TotalTurns int
	Reasons    map[string]int
}

func (s *simSummary) record(winner, turns int, result string) {
	s.Games++
	s.TotalTurns += turns
	switch winner {
	case game.Mage:
		s.MageWins++
	case game.Wizard:
		s.WizardWins++
	default:
		s.Draws++
	}
	s.Reasons[result]++
}

func (s *simSummary) print(w io.Writer) {
	if s.Games == 0 {
		fmt.Fprintln(w, "No games played.")
		return
	}
	pct := func(n int) float64 { return float64(n) * 100 / float64(s.Games) }
	fmt.Fprintf(w, "Games:       %d\n", s.Games)
	fmt.Fprintf(w, "Mage wins:   %d (%.1f%%)\n", s.MageWins, pct(s.MageWins))
	fmt.Fprintf(w, "Wizard wins: %d (%.1f%%)\n", s.WizardWins, pct(s.WizardWins))
	fmt.Fprintf(w, "Draws:       %d (%.1f%%)\n", s.Draws, pct(s.Draws))
	fmt.Fprintf(w, "Avg turns:   %.1f\n", float64(s.TotalTurns)/float64(s.Games))
}

// simulate runs games bot-vs-bot duels. When out is non-nil every event is
// written to it.
func simulate(ctx context.Context, mage, wizard game.Pool, rules game.Rules, games int, seed uint64, out io.Writer) (*simSummary, error) {
	summary := &simSummary{Reasons: make(map[string]int)}
	for i := 0; i < games; i++ {
		gameSeed := seed
		if seed != 0 {
			gameSeed = seed + uint64(i)*7919
		}

		var logger log.EventLogger = log.NewMemoryLogger()
		if out != nil {
			fmt.Fprintf(out, "--- game %d ---\n", i+1)
			logger = log.NewTextLogger(out)
		}

		mageCtrl := game.NewRandomController(gameSeed + 1)
		wizardCtrl := game.NewRandomController(gameSeed + 2)
		duel := game.NewDuel(game.DuelConfig{
			MagePool:   &mage,
			WizardPool: &wizard,
			Rules:      rules,
			Logger:     logger,
			Seed:       gameSeed,
		}, mageCtrl, wizardCtrl)

		winner, err := duel.Run(ctx)
		if err != nil {
			return summary, fmt.Errorf("game %d: %w", i+1, err)
		}
		summary.record(winner, duel.State.Turn, duel.State.Result)
	}
	return summary, nil
}

func runSim(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	games := fs.Int("games", 100, "number of duels to simulate")
	magePool := fs.Int("mage-pool", 1, "pool number for the Mage")
	wizardPool := fs.Int("wizard-pool", 1, "pool number for the Wizard")
	poolsFile := fs.String("pools", "pools.yaml", "path to pools file (empty for the built-in pool)")
	seed := fs.Uint64("seed", 0, "base RNG seed (0 for random)")
	verbose := fs.Bool("verbose", false, "print every duel event")
	debug := fs.Bool("debug", false, "development logging")
	fs.Parse(args)

	logger := newLogger(*debug)
	defer logger.Sync()

	mage, wizard, rules, err := qnet.LoadPools(*poolsFile, *magePool, *wizardPool)
	if err != nil {
		logger.Error("load pools", zap.Error(err))
		os.Exit(1)
	}

	var out io.Writer
	if *verbose {
		out = os.Stdout
	}
	logger.Info("simulation started",
		zap.Int("games", *games),
		zap.String("mage_pool", mage.Name),
		zap.String("wizard_pool", wizard.Name))

	summary, err := simulate(ctx, mage, wizard, rules, *games, *seed, out)
	summary.print(os.Stdout)
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}
