package game

// Activate measures the card and returns the effect it resolves to.
// Measuring an already collapsed card returns the memoized label.
// Activating one half of an entangled pair yields the other half as
// the accompanying card.
func (ci *CardInstance) Activate(gs *GameState) Outcome {
	if ci.State == nil {
		return Outcome{Fresh: true, Effect: ci.Card.Effect}
	}

	_, already := ci.State.Collapsed()
	var label string
	switch {
	case ci.Pair != nil && ci.State == ci.Pair.Affliction:
		label, _ = ci.Pair.CollapseAffliction(gs.Sampler)
	case ci.Pair != nil:
		label, _ = ci.Pair.CollapseWeather(gs.Sampler)
	default:
		label = ci.State.Collapse(gs.Sampler)
	}

	eff, _ := ci.Card.OutcomeFor(label)
	out := Outcome{Label: label, Fresh: !already, Effect: eff}
	if ci.Card.Kind == CardEntangled {
		if ci.partner == nil {
			ci.partner = &CardInstance{
				Card:    ElementalWeather(),
				ID:      gs.NextID(),
				Owner:   ci.Owner,
				Pair:    ci.Pair,
				State:   ci.Pair.Weather,
				partner: ci,
			}
		}
		out.Accompanying = ci.partner
	}
	return out
}

// Partner returns the entangled card created when this card was activated.
func (ci *CardInstance) Partner() *CardInstance {
	return ci.partner
}
