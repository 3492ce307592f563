package game

import (
	"fmt"
	"sort"
)

// CardRegistry maps card names to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"Magic Missive":        MagicMissive,
	"Thanos Snap":          ThanosSnapCard,
	"Collapse Barrier":     CollapseBarrier,
	"Duelist Paradox":      DuelistParadox,
	"Elemental Affliction": ElementalAffliction,
	"Elemental Weather":    ElementalWeather,
	"Quantum Tunneling":    QuantumTunneling,
	"Phase Bias":           PhaseBias,
	"Nature":               Nature,
	"Heatwave Weather":     HeatwaveWeather,
	"Rain Weather":         RainWeather,
	"Windy Weather":        WindyWeather,
}

// LookupCard looks up a card by name and returns a new instance.
// Panics if the card is not found.
func LookupCard(name string) *Card {
	ctor, ok := CardRegistry[name]
	if !ok {
		panic(fmt.Sprintf("card not found in registry: %q", name))
	}
	return ctor()
}

// CardNames returns every registered card name, sorted.
func CardNames() []string {
	names := make([]string, 0, len(CardRegistry))
	for name := range CardRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
