package game

import (
	"testing"

	"github.com/qduelist/qduel/internal/quantum"
)

func TestActivateMemoizesCollapse(t *testing.T) {
	gs := NewGameState(DefaultRules(), quantum.NewSampler(7))
	for _, name := range CardNames() {
		card := LookupCard(name)
		if card.Kind == CardDeterministic {
			continue
		}
		ci := gs.CreateCardInstance(card, Mage)
		first := ci.Activate(gs)
		if first.Label == "" {
			t.Fatalf("%s: expected a label", name)
		}
		if card.PreCollapsed == "" && !first.Fresh {
			t.Errorf("%s: first activation should measure", name)
		}
		for i := 0; i < 20; i++ {
			again := ci.Activate(gs)
			if again.Label != first.Label || again.Fresh {
				t.Fatalf("%s: activation %d returned %q (fresh=%v), want %q", name, i, again.Label, again.Fresh, first.Label)
			}
			if again.Accompanying != first.Accompanying {
				t.Fatalf("%s: accompanying card changed between activations", name)
			}
		}
	}
}

func TestEveryOutcomeHasAnEffect(t *testing.T) {
	for _, name := range CardNames() {
		card := LookupCard(name)
		if card.Kind == CardDeterministic {
			if card.Effect.Kind == EffectNone {
				t.Errorf("%s: classical card without effect", name)
			}
			continue
		}
		for _, label := range card.Labels {
			if eff, ok := card.OutcomeFor(label); !ok || eff.Kind == EffectNone {
				t.Errorf("%s: no effect for |%s⟩", name, label)
			}
		}
	}
}

func TestPreCollapsedWeatherCards(t *testing.T) {
	tests := []struct {
		ctor func() *Card
		want WeatherType
	}{
		{Nature, WeatherEarth},
		{HeatwaveWeather, WeatherHeat},
		{RainWeather, WeatherRain},
		{WindyWeather, WeatherWind},
	}
	gs := NewGameState(DefaultRules(), quantum.NewSampler(1))
	for _, tt := range tests {
		ci := gs.CreateCardInstance(tt.ctor(), Wizard)
		if ci.Biasable() {
			t.Errorf("%s: collapsed weather must not be biasable", ci.Card.Name)
		}
		out := ci.Activate(gs)
		if out.Effect.Kind != EffectWeather || out.Effect.Weather != tt.want {
			t.Errorf("%s: expected %s, got %+v", ci.Card.Name, tt.want, out.Effect)
		}
	}
}

func TestAfflictionMatchesWeatherAffinity(t *testing.T) {
	for aff, eff := range afflictionSpells {
		w, ok := quantum.WeatherFor(aff)
		if !ok {
			t.Fatalf("no weather for %s", aff)
		}
		if got := weatherSpells[w].Weather; got != eff.Element.Affinity() {
			t.Errorf("%s (%s) pairs with %s, want %s", eff.Spell, aff, got, eff.Element.Affinity())
		}
	}
}

func TestLookupCardPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic")
		}
	}()
	LookupCard("Quantum Cheese")
}

func TestMagicMissiveDistributionFollowsBias(t *testing.T) {
	gs := NewGameState(DefaultRules(), quantum.NewSampler(99))
	hits := 0
	const n = 4000
	for i := 0; i < n; i++ {
		ci := gs.CreateCardInstance(MagicMissive(), Mage)
		if err := ci.State.ApplyBias("0", 0.7); err != nil {
			t.Fatal(err)
		}
		if ci.Activate(gs).Label == "0" {
			hits++
		}
	}
	if frac := float64(hits) / n; frac < 0.66 || frac > 0.74 {
		t.Errorf("Expected ~70%% |0⟩, got %.3f", frac)
	}
}
