package game

import "github.com/qduelist/qduel/internal/quantum"

// Spell numbers.
const (
	MagicMissileDamage      = 10
	BackfireDamage          = 3
	LightningDamage         = 5
	HealAmount              = 3
	AfflictionDamage        = 2
	AfflictionTurns         = 3
	VulnerabilityMultiplier = 3
)

// Elemental affliction spells, keyed by the affliction register label.
var afflictionSpells = map[string]Effect{
	"00": {Kind: EffectDamageOverTurn, Spell: "Earth Spike", Amount: AfflictionDamage, Turns: AfflictionTurns, Element: ElementEarth},
	"01": {Kind: EffectDamageOverTurn, Spell: "Water Geyser", Amount: AfflictionDamage, Turns: AfflictionTurns, Element: ElementWater},
	"11": {Kind: EffectDamageOverTurn, Spell: "Fireball", Amount: AfflictionDamage, Turns: AfflictionTurns, Element: ElementFire},
	"10": {Kind: EffectDamageOverTurn, Spell: "Wind Slash", Amount: AfflictionDamage, Turns: AfflictionTurns, Element: ElementWind},
}

// Weather spells, keyed by the weather register label.
var weatherSpells = map[string]Effect{
	"00": {Kind: EffectWeather, Spell: "Earthquake", Weather: WeatherEarth},
	"01": {Kind: EffectWeather, Spell: "Heatwave", Weather: WeatherHeat},
	"11": {Kind: EffectWeather, Spell: "Wind Tornado", Weather: WeatherWind},
	"10": {Kind: EffectWeather, Spell: "Rain", Weather: WeatherRain},
}

func copyOutcomes(m map[string]Effect) map[string]Effect {
	out := make(map[string]Effect, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MagicMissive: a missile at the opponent, or a backfire on the caster.
func MagicMissive() *Card {
	return &Card{
		Name:        "Magic Missive",
		Description: "Launches a magic missile at the opponent, dealing 10 damage to them or 3 to you.",
		Kind:        CardSuperposition,
		BaseDamage:  MagicMissileDamage,
		Biasable:    true,
		Labels:      quantum.TwoState(),
		Outcomes: map[string]Effect{
			"0": {Kind: EffectDamage, Spell: "Magic Missile", Amount: MagicMissileDamage},
			"1": {Kind: EffectSelfDamage, Spell: "Magic Missile Backfire", Amount: BackfireDamage, OnCaster: true},
		},
	}
}

// ThanosSnapCard: half of a deck vanishes; whose deck is undetermined.
func ThanosSnapCard() *Card {
	return &Card{
		Name:        "Thanos Snap",
		Description: "Half the cards in your deck or half the cards in your opponent's deck vanish.",
		Kind:        CardSuperposition,
		Biasable:    true,
		Labels:      quantum.TwoState(),
		Outcomes: map[string]Effect{
			"0": {Kind: EffectSnap, Spell: "Thanos Snap", OnCaster: true},
			"1": {Kind: EffectSnap, Spell: "Thanos Snap"},
		},
	}
}

// CollapseBarrier: a barrier on the caster, or the caster becomes vulnerable.
func CollapseBarrier() *Card {
	return &Card{
		Name:        "Collapse Barrier",
		Description: "Create a barrier that protects the caster from the next spell or take 3x damage on the next spell.",
		Kind:        CardSuperposition,
		Biasable:    true,
		Labels:      quantum.TwoState(),
		Outcomes: map[string]Effect{
			"0": {Kind: EffectShield, Spell: "Barrier", OnCaster: true},
			"1": {Kind: EffectVulnerability, Spell: "Backlash Surge", Amount: VulnerabilityMultiplier, OnCaster: true},
		},
	}
}

// DuelistParadox: lightning on the opponent, or a heal on the caster.
func DuelistParadox() *Card {
	return &Card{
		Name:        "Duelist Paradox",
		Description: "Strike the opponent with lightning for 5, or heal yourself for 3.",
		Kind:        CardSuperposition,
		BaseDamage:  LightningDamage,
		Biasable:    true,
		Labels:      quantum.TwoState(),
		Outcomes: map[string]Effect{
			"0": {Kind: EffectDamage, Spell: "Lightning", Amount: LightningDamage},
			"1": {Kind: EffectHeal, Spell: "Heal", Amount: HealAmount, OnCaster: true},
		},
	}
}

// ElementalAffliction: afflicts the opponent with an elemental attack whose
// element is entangled with an Elemental Weather card handed to the caster.
func ElementalAffliction() *Card {
	return &Card{
		Name:        "Elemental Affliction",
		Description: "Afflict the opponent with a random elemental effect. The matching weather card is placed on top of your deck.",
		Kind:        CardEntangled,
		BaseDamage:  AfflictionDamage,
		Labels:      quantum.FourState(),
		Outcomes:    copyOutcomes(afflictionSpells),
	}
}

// ElementalWeather: changes the global weather to one of four elements.
func ElementalWeather() *Card {
	return &Card{
		Name:        "Elemental Weather",
		Description: "Change the weather to a random element for 3 rounds.",
		Kind:        CardSuperposition,
		Biasable:    true,
		Labels:      quantum.FourState(),
		Outcomes:    copyOutcomes(weatherSpells),
	}
}

func fixedWeather(name, description, label string) *Card {
	c := ElementalWeather()
	c.Name = name
	c.Description = description
	c.Biasable = false
	c.PreCollapsed = label
	return c
}

func Nature() *Card {
	return fixedWeather("Nature", "Nature's wrath shakes the ground.", "00")
}

func HeatwaveWeather() *Card {
	return fixedWeather("Heatwave Weather", "The air burns.", "01")
}

func RainWeather() *Card {
	return fixedWeather("Rain Weather", "Rain falls on the battlefield.", "10")
}

func WindyWeather() *Card {
	return fixedWeather("Windy Weather", "A tornado sweeps the battlefield.", "11")
}

// QuantumTunneling: the caster's next attack may bypass a shield.
func QuantumTunneling() *Card {
	return &Card{
		Name:        "Quantum Tunneling",
		Description: "Next offensive attack has a 70% chance to bypass shields.",
		Kind:        CardDeterministic,
		Effect:      Effect{Kind: EffectTunneling, Spell: "Quantum Tunneling", OnCaster: true},
	}
}

// PhaseBias: favors one outcome of a superposition card in the caster's hand.
func PhaseBias() *Card {
	return &Card{
		Name:        "Phase Bias",
		Description: "Apply phase bias to a superposition card to favor a specific collapse state.",
		Kind:        CardDeterministic,
		Effect:      Effect{Kind: EffectPhaseBias, Spell: "Phase Bias", OnCaster: true},
	}
}
