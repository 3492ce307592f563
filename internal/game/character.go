package game

import "github.com/qduelist/qduel/internal/log"

// Character is one duelist's entire state.
type Character struct {
	Index int
	Name  string

	HP    int
	MaxHP int

	Shield           bool
	DamageMultiplier int
	DoT              *DamageOverTurn

	TunnelingActive      bool
	TunnelingProbability float64

	Deck *Deck
	Hand *Hand
	// Played is the queue of cards waiting to resolve this turn.
	Played []*CardInstance
}

// NewCharacter creates a character at full starting health with empty piles.
func NewCharacter(index int, rules Rules) *Character {
	return &Character{
		Index:                index,
		Name:                 log.CharacterName(index),
		HP:                   rules.StartingHealth,
		MaxHP:                rules.MaxHealth,
		DamageMultiplier:     1,
		TunnelingProbability: rules.TunnelingProbability,
		Deck:                 NewDeck(rules.DeckSize),
		Hand:                 NewHand(rules.HandSize),
	}
}

// ReduceHealth subtracts n, clamped at 0.
func (c *Character) ReduceHealth(n int) (oldHP, newHP int) {
	oldHP = c.HP
	c.HP -= n
	if c.HP < 0 {
		c.HP = 0
	}
	return oldHP, c.HP
}

// IncreaseHealth adds n, clamped at MaxHP.
func (c *Character) IncreaseHealth(n int) (oldHP, newHP int) {
	oldHP = c.HP
	c.HP += n
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	return oldHP, c.HP
}

func (c *Character) Defeated() bool {
	return c.HP <= 0
}

// OutOfCards reports whether the character has nothing left to play.
func (c *Character) OutOfCards() bool {
	return c.Deck.Empty() && c.Hand.Len() == 0
}

// Refill draws from the deck until the hand is full or the deck is empty.
func (c *Character) Refill() []*CardInstance {
	var drawn []*CardInstance
	for !c.Hand.Full() {
		card := c.Deck.Draw()
		if card == nil {
			break
		}
		c.Hand.Add(card)
		drawn = append(drawn, card)
	}
	return drawn
}

// DamageOverTurn is a lingering elemental affliction.
type DamageOverTurn struct {
	Spell          string
	Element        Element
	Damage         int
	TurnsRemaining int
}

// WeatherMultiplier is applied to damage-over-turn ticks when the weather
// matches the affliction's element.
const WeatherMultiplier = 3

// Tick returns this turn's damage and consumes one turn.
func (d *DamageOverTurn) Tick(weather WeatherType) int {
	if d.TurnsRemaining <= 0 {
		return 0
	}
	d.TurnsRemaining--
	if weather != WeatherNone && d.Element.Affinity() == weather {
		return d.Damage * WeatherMultiplier
	}
	return d.Damage
}

func (d *DamageOverTurn) Expired() bool {
	return d.TurnsRemaining <= 0
}
