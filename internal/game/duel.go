package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/qduelist/qduel/internal/log"
	"github.com/qduelist/qduel/internal/quantum"
)

var ErrIllegalAction = errors.New("illegal action")

// PlayerController is the interface that human (TCP/WebSocket), agent (MCP),
// bot and scripted players implement.
type PlayerController interface {
	// ChooseAction presents available actions and waits for the player to pick one.
	ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error)

	// ChooseCards asks the player to select cards from a list (e.g., a Phase Bias target).
	ChooseCards(ctx context.Context, state *GameState, prompt string, candidates []*CardInstance, min, max int) ([]*CardInstance, error)

	// ChooseOption asks the player to pick one of several labelled options
	// and returns its index.
	ChooseOption(ctx context.Context, state *GameState, prompt string, options []string) (int, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// DuelConfig holds configuration for creating a new duel.
type DuelConfig struct {
	MagePool   *Pool   // nil for DefaultPool
	WizardPool *Pool   // nil for DefaultPool
	MageDeck   []*Card // fixed deck in draw order; overrides MagePool
	WizardDeck []*Card // fixed deck in draw order; overrides WizardPool
	Rules      Rules   // zero fields take DefaultRules values
	Logger     log.EventLogger
	Seed       uint64 // RNG seed (0 for random)
	MaxTurns   int    // stop after this many turns (0 = 200)
}

// Duel orchestrates an entire duel between the Mage and the Wizard.
type Duel struct {
	State       *GameState
	Controllers [2]PlayerController
	Logger      log.EventLogger
	ctx         context.Context
	maxTurns    int
}

// NewDuel creates a new duel from the given config and player controllers.
func NewDuel(cfg DuelConfig, mage, wizard PlayerController) *Duel {
	gs := NewGameState(cfg.Rules, quantum.NewSampler(cfg.Seed))
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	pools := [2]*Pool{cfg.MagePool, cfg.WizardPool}
	decks := [2][]*Card{cfg.MageDeck, cfg.WizardDeck}
	for p := 0; p < 2; p++ {
		switch {
		case decks[p] != nil:
			gs.LoadDeck(p, decks[p])
		case pools[p] != nil:
			gs.BuildDeck(p, *pools[p])
		default:
			gs.BuildDeck(p, DefaultPool())
		}
	}

	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = 200 // safety limit
	}

	return &Duel{
		State:       gs,
		Controllers: [2]PlayerController{mage, wizard},
		Logger:      logger,
		ctx:         context.Background(),
		maxTurns:    maxTurns,
	}
}

// Run executes the entire duel loop. Returns the winner (0, 1, or -1 for draw).
func (d *Duel) Run(ctx context.Context) (int, error) {
	d.ctx = ctx
	gs := d.State

	for p := 0; p < 2; p++ {
		for _, card := range gs.Characters[p].Refill() {
			d.log(log.NewDrawEvent(gs.Clock(), p, card.Card.Name))
		}
	}

	for !gs.Over {
		if gs.Turn >= d.maxTurns {
			d.endGame(-1, fmt.Sprintf("turn limit reached (%d turns)", d.maxTurns))
			break
		}
		if err := d.runTurn(); err != nil {
			return gs.Winner, err
		}
		if err := d.ctx.Err(); err != nil {
			return -1, err
		}
	}

	return gs.Winner, nil
}

// runTurn executes a single turn for the active character.
func (d *Duel) runTurn() error {
	gs := d.State
	gs.Turn++
	p := gs.Active
	c := gs.Characters[p]

	gs.State = turnStateFor(p)
	d.log(log.NewStateChangeEvent(gs.Clock()))
	d.log(log.NewTurnEvent(gs.Clock(), p))

	if c.OutOfCards() {
		d.endGame(gs.Opponent(p), fmt.Sprintf("%s has no cards left", c.Name))
		return nil
	}
	// Cards returned to an exhausted deck top the hand back up.
	for _, card := range c.Refill() {
		d.log(log.NewDrawEvent(gs.Clock(), p, card.Card.Name))
	}

	d.tickDamageOverTurn(p)
	if d.checkHealth() {
		return nil
	}

	actions := d.computeActions(p)
	chosen, err := d.Controllers[p].ChooseAction(d.ctx, gs, actions)
	if err != nil {
		return err
	}

	switch chosen.Type {
	case ActionPlayCard:
		if err := d.playCard(p, chosen); err != nil {
			return err
		}
	case ActionPass:
		d.log(log.NewPassEvent(gs.Clock(), p))
	default:
		return fmt.Errorf("%w: %v", ErrIllegalAction, chosen.Type)
	}

	if err := d.resolvePlayed(p); err != nil {
		return err
	}
	if gs.Over {
		return nil
	}
	if c.OutOfCards() {
		d.endGame(gs.Opponent(p), fmt.Sprintf("%s has no cards left", c.Name))
		return nil
	}

	if p == Wizard {
		d.endRound()
	}
	gs.Active = gs.Opponent(p)
	return nil
}

// computeActions lists every card in hand plus passing.
func (d *Duel) computeActions(p int) []Action {
	hand := d.State.Characters[p].Hand
	actions := make([]Action, 0, hand.Len()+1)
	for i, card := range hand.Cards {
		actions = append(actions, Action{
			Type:      ActionPlayCard,
			Player:    p,
			Card:      card,
			HandIndex: i,
			Desc:      fmt.Sprintf("Play %s", card.DisplayString()),
		})
	}
	actions = append(actions, Action{Type: ActionPass, Player: p, Desc: "Pass"})
	return actions
}

// playCard moves a card from the hand to the played queue and draws a replacement.
func (d *Duel) playCard(p int, a Action) error {
	gs := d.State
	c := gs.Characters[p]
	idx := c.Hand.Index(a.Card)
	if idx < 0 {
		return fmt.Errorf("%w: %s is not in %s's hand", ErrIllegalAction, a.Card, c.Name)
	}
	card := c.Hand.RemoveAt(idx)
	c.Played = append(c.Played, card)
	d.log(log.NewPlayCardEvent(gs.Clock(), p, card.DisplayString()))

	if drawn := c.Deck.Draw(); drawn != nil {
		c.Hand.Add(drawn)
		d.log(log.NewDrawEvent(gs.Clock(), p, drawn.Card.Name))
	}
	return nil
}

// resolvePlayed resolves the played queue in order until it is empty.
func (d *Duel) resolvePlayed(p int) error {
	c := d.State.Characters[p]
	for len(c.Played) > 0 && !d.State.Over {
		card := c.Played[0]
		c.Played = c.Played[1:]
		if err := d.resolveCard(p, card); err != nil {
			return err
		}
	}
	c.Played = nil
	return nil
}

// resolveCard activates a card and applies its outcome.
func (d *Duel) resolveCard(p int, card *CardInstance) error {
	gs := d.State
	out := card.Activate(gs)
	if out.Label != "" {
		d.log(log.NewCollapseEvent(gs.Clock(), p, card.Card.Name, out.Label, out.Effect.Describe()))
	}
	if acc := out.Accompanying; acc != nil {
		label, _ := acc.State.Collapsed()
		d.log(log.NewEntangleEvent(gs.Clock(), p, card.Card.Name, acc.Card.Name, label))
	}

	if err := d.applyEffect(p, card, out.Effect); err != nil {
		return err
	}

	if acc := out.Accompanying; acc != nil && !gs.Over {
		if gs.Characters[p].Deck.PushTop(acc) {
			d.log(log.NewAddToDeckEvent(gs.Clock(), p, acc.DisplayString(), "entangled with "+card.Card.Name))
		} else {
			d.log(log.NewFizzleEvent(gs.Clock(), p, acc.Card.Name, "deck is full"))
		}
	}
	return nil
}

// tickDamageOverTurn applies one turn of the character's affliction.
func (d *Duel) tickDamageOverTurn(p int) {
	gs := d.State
	c := gs.Characters[p]
	if c.DoT == nil {
		return
	}
	dmg := c.DoT.Tick(gs.Weather.Type)
	d.log(log.NewDamageOverTurnTickEvent(gs.Clock(), p, c.DoT.Spell, dmg, c.DoT.TurnsRemaining))
	d.changeHealth(p, -dmg, c.DoT.Spell)
	if c.DoT.Expired() {
		d.log(log.NewDamageOverTurnExpireEvent(gs.Clock(), p, c.DoT.Spell))
		c.DoT = nil
	}
}

// endRound advances the round counter and expires the weather.
func (d *Duel) endRound() {
	gs := d.State
	d.log(log.NewRoundEndEvent(gs.Clock()))
	gs.Round++
	if ended, ok := gs.Weather.Tick(gs.Round); ok {
		d.log(log.NewWeatherEndEvent(gs.Clock(), ended.String()))
	}
}

// checkHealth ends the duel if either character has fallen.
func (d *Duel) checkHealth() bool {
	gs := d.State
	if gs.Over {
		return true
	}
	mageDown := gs.Characters[Mage].Defeated()
	wizardDown := gs.Characters[Wizard].Defeated()
	switch {
	case mageDown && wizardDown:
		d.endGame(-1, "both characters fell")
	case mageDown:
		d.endGame(Wizard, "Mage's health reached 0")
	case wizardDown:
		d.endGame(Mage, "Wizard's health reached 0")
	}
	return gs.Over
}

// endGame records the result and moves to the Game Over state.
func (d *Duel) endGame(winner int, reason string) {
	gs := d.State
	gs.Over = true
	gs.Winner = winner
	gs.State = StateGameOver
	d.log(log.NewStateChangeEvent(gs.Clock()))
	if winner < 0 {
		gs.Result = "Draw: " + reason
		d.log(log.NewTieEvent(gs.Clock(), reason))
		return
	}
	gs.Result = fmt.Sprintf("%s wins: %s", log.CharacterName(winner), reason)
	d.log(log.NewWinEvent(gs.Clock(), winner, reason))
}

func (d *Duel) log(event log.GameEvent) {
	d.Logger.Log(event)
	// Notify controllers (ignore errors for notifications)
	for i := 0; i < 2; i++ {
		_ = d.Controllers[i].Notify(d.ctx, event)
	}
}
