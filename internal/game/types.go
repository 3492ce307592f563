package game

import (
	"fmt"

	"github.com/qduelist/qduel/internal/quantum"
)

// --- Enums ---

// Character indices. The Mage always takes the first turn.
const (
	Mage   = 0
	Wizard = 1
)

type TurnState int

const (
	StateSetup TurnState = iota
	StateMageTurn
	StateWizardTurn
	StateGameOver
)

func (s TurnState) String() string {
	switch s {
	case StateMageTurn:
		return "Mage Turn"
	case StateWizardTurn:
		return "Wizard Turn"
	case StateGameOver:
		return "Game Over"
	default:
		return "Setup"
	}
}

// turnStateFor returns the turn state in which the given character acts.
func turnStateFor(player int) TurnState {
	if player == Mage {
		return StateMageTurn
	}
	return StateWizardTurn
}

type Element int

const (
	ElementNone Element = iota
	ElementEarth
	ElementWater
	ElementFire
	ElementWind
)

func (e Element) String() string {
	switch e {
	case ElementEarth:
		return "EARTH"
	case ElementWater:
		return "WATER"
	case ElementFire:
		return "FIRE"
	case ElementWind:
		return "WIND"
	default:
		return ""
	}
}

// Affinity returns the weather that amplifies this element.
func (e Element) Affinity() WeatherType {
	switch e {
	case ElementEarth:
		return WeatherEarth
	case ElementWater:
		return WeatherRain
	case ElementFire:
		return WeatherHeat
	case ElementWind:
		return WeatherWind
	default:
		return WeatherNone
	}
}

type WeatherType int

const (
	WeatherNone WeatherType = iota
	WeatherRain
	WeatherWind
	WeatherHeat
	WeatherEarth
)

func (w WeatherType) String() string {
	switch w {
	case WeatherRain:
		return "Rain"
	case WeatherWind:
		return "Wind Tornado"
	case WeatherHeat:
		return "Heatwave"
	case WeatherEarth:
		return "Earthquake"
	default:
		return "Clear"
	}
}

type CardKind int

const (
	CardDeterministic CardKind = iota // single fixed effect
	CardSuperposition                 // collapses among 2 or 4 outcomes
	CardEntangled                     // collapses together with a partner card
)

func (k CardKind) String() string {
	switch k {
	case CardSuperposition:
		return "Superposition"
	case CardEntangled:
		return "Entangled"
	default:
		return "Classical"
	}
}

type EffectKind int

const (
	EffectNone           EffectKind = iota
	EffectDamage                    // blocked by shields unless tunneled
	EffectSelfDamage                // backfire; ignores shields
	EffectHeal                      // restores health up to the cap
	EffectShield                    // absorbs the next attack
	EffectVulnerability             // multiplies the next damage taken
	EffectDamageOverTurn            // elemental affliction
	EffectWeather                   // replaces the global weather
	EffectSnap                      // removes half of a deck
	EffectTunneling                 // next attack may bypass a shield
	EffectPhaseBias                 // skews another card's distribution
)

func (k EffectKind) String() string {
	switch k {
	case EffectDamage:
		return "Damage"
	case EffectSelfDamage:
		return "Self Damage"
	case EffectHeal:
		return "Heal"
	case EffectShield:
		return "Shield"
	case EffectVulnerability:
		return "Vulnerability"
	case EffectDamageOverTurn:
		return "Damage Over Turn"
	case EffectWeather:
		return "Weather"
	case EffectSnap:
		return "Snap"
	case EffectTunneling:
		return "Tunneling"
	case EffectPhaseBias:
		return "Phase Bias"
	default:
		return "None"
	}
}

// --- Effects ---

// Effect is the tagged variant every card outcome resolves to.
type Effect struct {
	Kind     EffectKind
	Spell    string // spell name shown in the event log
	Amount   int    // damage, heal amount or damage multiplier
	Turns    int    // duration of a damage-over-turn effect
	Element  Element
	Weather  WeatherType
	OnCaster bool // applies to the caster instead of the target
}

// Describe returns a one-line summary used in prompts and logs.
func (e Effect) Describe() string {
	who := "opponent"
	if e.OnCaster {
		who = "caster"
	}
	switch e.Kind {
	case EffectDamage, EffectSelfDamage:
		return fmt.Sprintf("%s: %d damage to %s", e.Spell, e.Amount, who)
	case EffectHeal:
		return fmt.Sprintf("%s: heal %s for %d", e.Spell, who, e.Amount)
	case EffectShield:
		return fmt.Sprintf("%s: shield the %s", e.Spell, who)
	case EffectVulnerability:
		return fmt.Sprintf("%s: %s takes x%d on the next hit", e.Spell, who, e.Amount)
	case EffectDamageOverTurn:
		return fmt.Sprintf("%s: %d %s damage to %s for %d turns", e.Spell, e.Amount, e.Element, who, e.Turns)
	case EffectWeather:
		return fmt.Sprintf("%s: weather becomes %s", e.Spell, e.Weather)
	case EffectSnap:
		return fmt.Sprintf("%s: half of the %s's deck vanishes", e.Spell, who)
	case EffectTunneling:
		return fmt.Sprintf("%s: next attack may tunnel shields", e.Spell)
	case EffectPhaseBias:
		return fmt.Sprintf("%s: bias a superposition card in hand", e.Spell)
	default:
		return e.Spell
	}
}

// --- Card definition (static, from the registry) ---

type Card struct {
	Name        string
	Description string
	Kind        CardKind
	BaseDamage  int
	Biasable    bool // can be targeted by Phase Bias

	// Labels lists the outcomes in declaration order; Outcomes maps each
	// label to its effect. Classical cards use Effect instead.
	Labels   []string
	Outcomes map[string]Effect
	Effect   Effect

	// PreCollapsed fixes the label of weather variants that are dealt
	// already measured.
	PreCollapsed string
}

func (c *Card) String() string {
	return c.Name
}

// OutcomeFor returns the effect bound to a label.
func (c *Card) OutcomeFor(label string) (Effect, bool) {
	if c.Kind == CardDeterministic {
		return c.Effect, label == ""
	}
	e, ok := c.Outcomes[label]
	return e, ok
}

// --- CardInstance (runtime card in a deck or hand) ---

type CardInstance struct {
	Card  *Card
	ID    int // unique instance ID within a duel
	Owner int // character index (0 or 1) who owns this card

	// State is the card's own outcome register (nil for classical cards).
	State *quantum.Superposition
	// Pair is set on both halves of an entangled affliction/weather couple.
	Pair    *quantum.Pair
	partner *CardInstance
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return ci.DisplayString()
}

// DisplayString returns a human-readable description for the event log.
func (ci *CardInstance) DisplayString() string {
	if ci == nil {
		return "(empty)"
	}
	if ci.State == nil {
		return ci.Card.Name
	}
	if label, ok := ci.State.Collapsed(); ok {
		return fmt.Sprintf("%s |%s⟩", ci.Card.Name, label)
	}
	if fav, strength, ok := ci.State.Bias(); ok {
		return fmt.Sprintf("%s (%s, |%s⟩ %.0f%%)", ci.Card.Name, ci.State.State(), fav, strength*100)
	}
	return fmt.Sprintf("%s (%s)", ci.Card.Name, ci.State.State())
}

// Biasable reports whether Phase Bias may target this instance now.
func (ci *CardInstance) Biasable() bool {
	return ci.Card.Biasable && ci.State != nil && ci.State.State() == quantum.StateSuperposition
}

// Outcome is the result of activating a card.
type Outcome struct {
	Label  string // measured label ("" for classical cards)
	Fresh  bool   // true when this activation performed the measurement
	Effect Effect

	// Accompanying is the entangled partner produced by the activation.
	Accompanying *CardInstance
}

// --- Action types ---

type ActionType int

const (
	ActionPlayCard ActionType = iota
	ActionPass
)

func (a ActionType) String() string {
	switch a {
	case ActionPlayCard:
		return "Play Card"
	case ActionPass:
		return "Pass"
	default:
		return "Unknown"
	}
}

// Action represents a player action with all necessary details.
type Action struct {
	Type      ActionType
	Player    int
	Card      *CardInstance // card being played
	HandIndex int           // position of Card in the hand
	Desc      string        // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}
