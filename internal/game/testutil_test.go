package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/qduelist/qduel/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined script of actions.
// Used in tests to deterministically drive the game.
type ScriptedController struct {
	t       *testing.T
	name    string
	actions []ScriptedAction
	pos     int

	// For ChooseCards prompts
	cardChoices []ScriptedCardChoice
	cardPos     int

	// For ChooseOption prompts
	options   []int
	optionPos int
	prompts   []string
}

type ScriptedAction struct {
	// Match by ActionType: picks the first action of this type
	Type ActionType
	// Optional: match by card name as well
	CardName string
}

type ScriptedCardChoice struct {
	// Choose cards by name
	Names []string
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddPlay(cardName string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionPlayCard, CardName: cardName})
	return sc
}

func (sc *ScriptedController) AddPass() *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionPass})
	return sc
}

func (sc *ScriptedController) AddCardChoice(names ...string) *ScriptedController {
	sc.cardChoices = append(sc.cardChoices, ScriptedCardChoice{Names: names})
	return sc
}

func (sc *ScriptedController) AddOption(index int) *ScriptedController {
	sc.options = append(sc.options, index)
	return sc
}

func (sc *ScriptedController) ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error) {
	if sc.pos < len(sc.actions) {
		scripted := sc.actions[sc.pos]
		sc.pos++
		for _, a := range actions {
			if a.Type != scripted.Type {
				continue
			}
			if scripted.CardName != "" && (a.Card == nil || a.Card.Card.Name != scripted.CardName) {
				continue
			}
			return a, nil
		}
		sc.t.Logf("[%s] scripted %v %q not available, passing", sc.name, scripted.Type, scripted.CardName)
	}
	// Default: pass
	for _, a := range actions {
		if a.Type == ActionPass {
			return a, nil
		}
	}
	return actions[len(actions)-1], nil
}

func (sc *ScriptedController) ChooseCards(ctx context.Context, state *GameState, prompt string, candidates []*CardInstance, min, max int) ([]*CardInstance, error) {
	if sc.cardPos >= len(sc.cardChoices) {
		// Default: choose the first min candidates
		if min > len(candidates) {
			min = len(candidates)
		}
		return candidates[:min], nil
	}

	choice := sc.cardChoices[sc.cardPos]
	sc.cardPos++

	var result []*CardInstance
	for _, name := range choice.Names {
		for _, c := range candidates {
			if c.Card.Name == name {
				result = append(result, c)
				break
			}
		}
	}

	if len(result) < min {
		return nil, fmt.Errorf("[%s] card choice: wanted %v but only found %d in candidates", sc.name, choice.Names, len(result))
	}
	return result, nil
}

func (sc *ScriptedController) ChooseOption(ctx context.Context, state *GameState, prompt string, options []string) (int, error) {
	sc.prompts = append(sc.prompts, prompt)
	if sc.optionPos >= len(sc.options) {
		return 0, nil
	}
	idx := sc.options[sc.optionPos]
	sc.optionPos++
	return idx, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// --- Test helpers ---

func makeDeck(cards ...*Card) []*Card {
	deck := make([]*Card, 0, len(cards))
	deck = append(deck, cards...)
	return deck
}

// repeat returns n fresh copies of a card.
func repeat(ctor func() *Card, n int) []*Card {
	cards := make([]*Card, n)
	for i := range cards {
		cards[i] = ctor()
	}
	return cards
}

// newTestDuel builds a seeded duel over fixed decks.
func newTestDuel(t *testing.T, cfg DuelConfig, mage, wizard PlayerController) (*Duel, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 100 // reasonable default for tests
	}
	return NewDuel(cfg, mage, wizard), logger
}

// forceDeck collapses the first len(labels) superposition cards of a deck.
// Empty labels leave the card untouched.
func forceDeck(t *testing.T, d *Duel, player int, labels ...string) {
	t.Helper()
	deck := d.State.Characters[player].Deck
	for i, label := range labels {
		if label == "" {
			continue
		}
		if err := deck.Cards[i].State.Force(label); err != nil {
			t.Fatalf("force %s to %q: %v", deck.Cards[i].Card.Name, label, err)
		}
	}
}

// runDuel runs a prepared duel and returns the winner.
func runDuel(t *testing.T, d *Duel, logger *log.MemoryLogger) int {
	t.Helper()
	winner, err := d.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Duel error: %v", err)
	}

	t.Logf("Duel result: winner=%d (%s)", winner, d.State.Result)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
	return winner
}

// runDuelToCompletion builds and runs a duel and returns the logger for inspection.
func runDuelToCompletion(t *testing.T, cfg DuelConfig, mage, wizard PlayerController) (*Duel, *log.MemoryLogger) {
	t.Helper()
	d, logger := newTestDuel(t, cfg, mage, wizard)
	runDuel(t, d, logger)
	return d, logger
}
