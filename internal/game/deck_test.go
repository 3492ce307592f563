package game

import (
	"testing"

	"github.com/qduelist/qduel/internal/quantum"
)

func newTestState() *GameState {
	return NewGameState(DefaultRules(), quantum.NewSampler(3))
}

func TestDeckDrawsFromFront(t *testing.T) {
	gs := newTestState()
	gs.LoadDeck(Mage, makeDeck(MagicMissive(), PhaseBias(), ThanosSnapCard()))
	deck := gs.Characters[Mage].Deck

	if got := deck.Draw().Card.Name; got != "Magic Missive" {
		t.Errorf("Expected Magic Missive first, got %s", got)
	}
	top := gs.CreateCardInstance(RainWeather(), Mage)
	if !deck.PushTop(top) {
		t.Fatal("PushTop failed on a deck with room")
	}
	if got := deck.Draw(); got != top {
		t.Errorf("Expected pushed card next, got %s", got)
	}
	deck.Draw()
	deck.Draw()
	if deck.Draw() != nil || !deck.Empty() {
		t.Error("Expected an empty deck")
	}
}

func TestDeckRespectsCapacity(t *testing.T) {
	gs := newTestState()
	gs.LoadDeck(Wizard, repeat(PhaseBias, 30))
	deck := gs.Characters[Wizard].Deck
	if deck.Len() != 20 {
		t.Fatalf("Expected 20 cards, got %d", deck.Len())
	}
	if deck.PushTop(gs.CreateCardInstance(PhaseBias(), Wizard)) {
		t.Error("PushTop should fail on a full deck")
	}
	if deck.Append(gs.CreateCardInstance(PhaseBias(), Wizard)) {
		t.Error("Append should fail on a full deck")
	}
}

func TestDeckSnapRemovesHalf(t *testing.T) {
	for _, size := range []int{0, 1, 7, 20} {
		gs := newTestState()
		gs.LoadDeck(Mage, repeat(PhaseBias, size))
		deck := gs.Characters[Mage].Deck
		removed := deck.Snap(gs.Sampler)
		if removed != size/2 || deck.Len() != size-size/2 {
			t.Errorf("size %d: removed %d, left %d", size, removed, deck.Len())
		}
	}
}

func TestBuildDeckUsesPoolWeights(t *testing.T) {
	gs := newTestState()
	pool := Pool{Name: "Test", Cards: []PoolEntry{
		{Name: "Magic Missive", Weight: 1},
		{Name: "Thanos Snap", Weight: 0},
	}}
	gs.BuildDeck(Mage, pool)
	deck := gs.Characters[Mage].Deck
	if deck.Len() != gs.Rules.DeckSize {
		t.Fatalf("Expected %d cards, got %d", gs.Rules.DeckSize, deck.Len())
	}
	for _, c := range deck.Cards {
		if c.Card.Name != "Magic Missive" {
			t.Fatalf("Zero-weight card dealt: %s", c.Card.Name)
		}
	}
}

func TestHandBiasCandidates(t *testing.T) {
	gs := newTestState()
	hand := gs.Characters[Mage].Hand
	open := gs.CreateCardInstance(MagicMissive(), Mage)
	collapsed := gs.CreateCardInstance(MagicMissive(), Mage)
	collapsed.State.Force("1")
	entangled := gs.CreateCardInstance(ElementalAffliction(), Mage)
	classical := gs.CreateCardInstance(QuantumTunneling(), Mage)
	for _, c := range []*CardInstance{open, collapsed, entangled, classical} {
		if !hand.Add(c) {
			t.Fatal("hand full too early")
		}
	}
	if hand.Add(gs.CreateCardInstance(PhaseBias(), Mage)) {
		t.Error("Expected the hand to hold 4 cards")
	}

	got := hand.BiasCandidates()
	if len(got) != 1 || got[0] != open {
		t.Errorf("Expected only the open superposition, got %v", got)
	}
	if hand.Index(classical) != 3 || hand.RemoveAt(0) != open || hand.Len() != 3 {
		t.Error("Index/RemoveAt mismatch")
	}
}

func TestCharacterHealthClamps(t *testing.T) {
	c := NewCharacter(Mage, DefaultRules())
	if old, now := c.ReduceHealth(150); old != 100 || now != 0 {
		t.Errorf("Reduce: %d → %d", old, now)
	}
	if !c.Defeated() {
		t.Error("Expected defeat at 0")
	}
	if old, now := c.IncreaseHealth(250); old != 0 || now != 100 {
		t.Errorf("Increase: %d → %d", old, now)
	}
}

func TestDamageOverTurnTick(t *testing.T) {
	dot := &DamageOverTurn{Spell: "Fireball", Element: ElementFire, Damage: 2, TurnsRemaining: 3}
	if got := dot.Tick(WeatherHeat); got != 6 {
		t.Errorf("Heatwave tick: expected 6, got %d", got)
	}
	if got := dot.Tick(WeatherRain); got != 2 {
		t.Errorf("Rain tick: expected 2, got %d", got)
	}
	if got := dot.Tick(WeatherNone); got != 2 {
		t.Errorf("Clear tick: expected 2, got %d", got)
	}
	if !dot.Expired() || dot.Tick(WeatherHeat) != 0 {
		t.Error("Expected the affliction to be spent")
	}
}

func TestWeatherManagerExpiry(t *testing.T) {
	var w WeatherManager
	if w.Active() {
		t.Fatal("Expected clear weather")
	}
	w.Set(WeatherRain, 1, 3)
	for round := 1; round <= 4; round++ {
		if w.IsOver(round) {
			t.Errorf("Rain should last through round %d", round)
		}
		if _, ended := w.Tick(round); ended {
			t.Errorf("Tick ended Rain in round %d", round)
		}
	}
	if !w.IsOver(5) {
		t.Error("Expected Rain to be over in round 5")
	}
	if prev := w.Set(WeatherHeat, 2, 3); prev != WeatherRain {
		t.Errorf("Expected Set to return Rain, got %s", prev)
	}
	ended, ok := w.Tick(6)
	if !ok || ended != WeatherHeat || w.Active() {
		t.Errorf("Expected Heatwave to end in round 6, got %s %v", ended, ok)
	}
}
