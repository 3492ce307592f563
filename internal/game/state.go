package game

import (
	"github.com/google/uuid"

	"github.com/qduelist/qduel/internal/log"
	"github.com/qduelist/qduel/internal/quantum"
)

// GameState holds the complete state of a duel.
type GameState struct {
	ID         string
	Characters [2]*Character
	Turn       int // 1-based turn counter
	Round      int // increments after the Wizard's turn
	Active     int // character whose turn it is
	State      TurnState
	Weather    WeatherManager
	Rules      Rules
	Sampler    *quantum.Sampler

	// ID counter for card instances
	nextID int

	// Game result
	Winner int // 0, 1, or -1 (no winner yet / draw)
	Over   bool
	Result string
}

// NewGameState creates a fresh duel state.
func NewGameState(rules Rules, sampler *quantum.Sampler) *GameState {
	rules = rules.withDefaults()
	return &GameState{
		ID: uuid.NewString(),
		Characters: [2]*Character{
			NewCharacter(Mage, rules),
			NewCharacter(Wizard, rules),
		},
		Round:   1,
		Active:  Mage,
		State:   StateSetup,
		Rules:   rules,
		Sampler: sampler,
		Winner:  -1,
	}
}

// NextID generates a unique card instance ID.
func (gs *GameState) NextID() int {
	gs.nextID++
	return gs.nextID
}

// Opponent returns the index of the other character.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// ActiveCharacter returns the character whose turn it is.
func (gs *GameState) ActiveCharacter() *Character {
	return gs.Characters[gs.Active]
}

// Clock returns the position stamped on events.
func (gs *GameState) Clock() log.Clock {
	return log.Clock{Turn: gs.Turn, Round: gs.Round, State: gs.State.String()}
}

// CreateCardInstance creates a CardInstance from a Card definition, assigned to a character.
func (gs *GameState) CreateCardInstance(card *Card, owner int) *CardInstance {
	ci := &CardInstance{
		Card:  card,
		ID:    gs.NextID(),
		Owner: owner,
	}
	switch card.Kind {
	case CardSuperposition:
		ci.State = quantum.NewSuperposition(card.Labels...)
		if card.PreCollapsed != "" {
			_ = ci.State.Force(card.PreCollapsed)
		}
	case CardEntangled:
		ci.Pair = quantum.NewPair()
		ci.State = ci.Pair.Affliction
	}
	return ci
}

// BuildDeck fills a character's deck by weighted draws from pool.
func (gs *GameState) BuildDeck(player int, pool Pool) {
	c := gs.Characters[player]
	dist := pool.Weights()
	for !c.Deck.Full() {
		name := gs.Sampler.MustChoose(dist)
		c.Deck.Append(gs.CreateCardInstance(LookupCard(name), player))
	}
}

// LoadDeck fills a character's deck with cards in order, up to capacity.
func (gs *GameState) LoadDeck(player int, cards []*Card) {
	c := gs.Characters[player]
	for _, card := range cards {
		if !c.Deck.Append(gs.CreateCardInstance(card, player)) {
			return
		}
	}
}
