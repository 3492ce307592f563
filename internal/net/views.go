package net

import (
	"github.com/qduelist/qduel/internal/game"
	"github.com/qduelist/qduel/internal/log"
)

// BuildStateView creates a StateView from the perspective of the given character.
func BuildStateView(state *game.GameState, player int) *StateView {
	me := player
	opp := 1 - me

	sv := &StateView{
		MatchID:    state.ID,
		Turn:       state.Turn,
		Round:      state.Round,
		State:      state.State.String(),
		IsYourTurn: state.Active == me && !state.Over,
		Weather:    WeatherView{Type: state.Weather.Type.String()},
	}
	if state.Weather.Active() {
		sv.Weather.StartRound = state.Weather.StartRound
		sv.Weather.Duration = state.Weather.Duration
	}

	sv.You = CharacterViewFor(state.Characters[me], true)
	sv.Opponent = CharacterViewFor(state.Characters[opp], false)
	return sv
}

// CharacterViewFor describes a character. Hands are only revealed to their owner.
func CharacterViewFor(c *game.Character, isOwner bool) CharacterView {
	cv := CharacterView{
		Name:             c.Name,
		HP:               c.HP,
		MaxHP:            c.MaxHP,
		Shield:           c.Shield,
		DamageMultiplier: c.DamageMultiplier,
		Tunneling:        c.TunnelingActive,
		HandCount:        c.Hand.Len(),
		DeckCount:        c.Deck.Len(),
	}
	if c.TunnelingActive {
		cv.TunnelingPercent = int(c.TunnelingProbability*100 + 0.5)
	}
	if c.DoT != nil {
		cv.Affliction = &AfflictionView{
			Spell:          c.DoT.Spell,
			Element:        c.DoT.Element.String(),
			Damage:         c.DoT.Damage,
			TurnsRemaining: c.DoT.TurnsRemaining,
		}
	}
	if isOwner {
		cv.Hand = CardViews(c.Hand.Cards)
	}
	return cv
}

// CardViewFor describes a card instance.
func CardViewFor(index int, ci *game.CardInstance) CardView {
	cv := CardView{
		Index:       index,
		Name:        ci.Card.Name,
		Description: ci.Card.Description,
		Kind:        ci.Card.Kind.String(),
	}
	if ci.State == nil {
		return cv
	}
	cv.Quantum = ci.State.State().String()
	cv.Labels = ci.State.Labels()
	if label, ok := ci.State.Collapsed(); ok {
		cv.Collapsed = label
	}
	if label, strength, ok := ci.State.Bias(); ok {
		cv.BiasLabel = label
		cv.BiasPercent = int(strength*100 + 0.5)
	}
	return cv
}

// CardViews numbers a list of cards.
func CardViews(cards []*game.CardInstance) []CardView {
	views := make([]CardView, 0, len(cards))
	for i, c := range cards {
		views = append(views, CardViewFor(i, c))
	}
	return views
}

// ActionViews numbers a list of actions.
func ActionViews(actions []game.Action) []ActionView {
	views := make([]ActionView, 0, len(actions))
	for i, a := range actions {
		views = append(views, ActionView{Index: i, Desc: a.String()})
	}
	return views
}

// OptionViews numbers a list of options.
func OptionViews(options []string) []OptionView {
	views := make([]OptionView, 0, len(options))
	for i, o := range options {
		views = append(views, OptionView{Index: i, Label: o})
	}
	return views
}

// EventViewFor converts a logged event for the wire.
func EventViewFor(event log.GameEvent) EventView {
	return EventView{
		Turn:    event.Turn,
		Round:   event.Round,
		State:   event.State,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}
