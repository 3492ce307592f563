package game

import (
	"fmt"

	"github.com/qduelist/qduel/internal/log"
	"github.com/qduelist/qduel/internal/quantum"
)

// applyEffect resolves one effect cast by caster. Every card outcome goes
// through here.
func (d *Duel) applyEffect(caster int, card *CardInstance, eff Effect) error {
	gs := d.State
	target := gs.Opponent(caster)
	if eff.OnCaster {
		target = caster
	}
	tc := gs.Characters[target]

	switch eff.Kind {
	case EffectDamage:
		d.dealDamage(caster, target, eff.Amount, eff.Spell)
	case EffectSelfDamage:
		d.changeHealth(target, -eff.Amount, eff.Spell)
	case EffectHeal:
		d.changeHealth(target, eff.Amount, eff.Spell)
	case EffectShield:
		tc.Shield = true
		d.log(log.NewShieldEvent(gs.Clock(), target, eff.Spell))
	case EffectVulnerability:
		tc.DamageMultiplier = eff.Amount
		d.log(log.NewVulnerableEvent(gs.Clock(), target, eff.Amount))
	case EffectDamageOverTurn:
		tc.DoT = &DamageOverTurn{
			Spell:          eff.Spell,
			Element:        eff.Element,
			Damage:         eff.Amount,
			TurnsRemaining: eff.Turns,
		}
		d.log(log.NewDamageOverTurnEvent(gs.Clock(), target, eff.Spell, eff.Amount, eff.Turns))
	case EffectWeather:
		prev := gs.Weather.Set(eff.Weather, gs.Round, gs.Rules.WeatherDuration)
		if prev != WeatherNone && prev != eff.Weather {
			d.log(log.NewWeatherEndEvent(gs.Clock(), prev.String()))
		}
		d.log(log.NewWeatherStartEvent(gs.Clock(), caster, eff.Weather.String(), gs.Rules.WeatherDuration))
	case EffectSnap:
		removed := tc.Deck.Snap(gs.Sampler)
		d.log(log.NewSnapEvent(gs.Clock(), target, removed, tc.Deck.Len()))
	case EffectTunneling:
		tc.TunnelingActive = true
		tc.TunnelingProbability = gs.Rules.TunnelingProbability
		d.log(log.NewTunnelingReadyEvent(gs.Clock(), target, tc.TunnelingProbability))
	case EffectPhaseBias:
		return d.applyPhaseBias(caster, card)
	case EffectNone:
	default:
		return fmt.Errorf("unknown effect kind %d", eff.Kind)
	}
	return nil
}

// dealDamage resolves an attack against a possibly shielded defender.
func (d *Duel) dealDamage(attacker, defender, amount int, spell string) {
	gs := d.State
	a := gs.Characters[attacker]
	t := gs.Characters[defender]
	total := amount * t.DamageMultiplier

	switch {
	case !t.Shield:
		d.changeHealth(defender, -total, spell)
	case a.TunnelingActive && quantum.Tunnel(gs.Sampler, a.TunnelingProbability):
		d.log(log.NewTunnelEvent(gs.Clock(), attacker))
		d.changeHealth(defender, -total, spell)
	default:
		if a.TunnelingActive {
			d.log(log.NewTunnelBlockedEvent(gs.Clock(), attacker))
		}
		t.Shield = false
		d.log(log.NewShieldBrokenEvent(gs.Clock(), defender))
	}

	t.DamageMultiplier = 1
	a.TunnelingActive = false
}

// changeHealth applies a signed health delta and checks for a result.
func (d *Duel) changeHealth(p, delta int, reason string) {
	gs := d.State
	c := gs.Characters[p]
	var oldHP, newHP int
	if delta < 0 {
		oldHP, newHP = c.ReduceHealth(-delta)
	} else {
		oldHP, newHP = c.IncreaseHealth(delta)
	}
	d.log(log.NewHPChangeEvent(gs.Clock(), p, oldHP, newHP, reason))
	d.checkHealth()
}

// applyPhaseBias lets the caster skew a superposition card in hand.
// Invalid choices fizzle.
func (d *Duel) applyPhaseBias(caster int, card *CardInstance) error {
	gs := d.State
	c := gs.Characters[caster]
	name := card.Card.Name

	candidates := c.Hand.BiasCandidates()
	if len(candidates) == 0 {
		d.log(log.NewFizzleEvent(gs.Clock(), caster, name, "no superposition card in hand"))
		return nil
	}

	picked, err := d.Controllers[caster].ChooseCards(d.ctx, gs, "Choose a card to bias", candidates, 1, 1)
	if err != nil {
		return err
	}
	if len(picked) == 0 || c.Hand.Index(picked[0]) < 0 || !picked[0].Biasable() {
		d.log(log.NewFizzleEvent(gs.Clock(), caster, name, "no valid target"))
		return nil
	}
	target := picked[0]

	labels := target.State.Labels()
	options := make([]string, len(labels))
	for i, l := range labels {
		eff, _ := target.Card.OutcomeFor(l)
		options[i] = fmt.Sprintf("|%s⟩ %s", l, eff.Describe())
	}
	idx, err := d.Controllers[caster].ChooseOption(d.ctx, gs, fmt.Sprintf("Favor which outcome of %s?", target.Card.Name), options)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(labels) {
		d.log(log.NewFizzleEvent(gs.Clock(), caster, name, "no outcome chosen"))
		return nil
	}

	if err := target.State.ApplyBias(labels[idx], gs.Rules.BiasStrength); err != nil {
		d.log(log.NewFizzleEvent(gs.Clock(), caster, name, err.Error()))
		return nil
	}
	d.log(log.NewPhaseBiasEvent(gs.Clock(), caster, target.Card.Name, labels[idx], gs.Rules.BiasStrength))
	return nil
}
