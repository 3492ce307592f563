package game

import (
	"errors"
	"testing"
)

func TestParsePoolsFillsDefaults(t *testing.T) {
	data := []byte(`
rules:
  hand_size: 5
pools:
  - name: Tiny
    cards:
      - { name: Magic Missive, weight: 2 }
      - { name: Phase Bias, weight: 1 }
`)
	pf, err := ParsePools(data)
	if err != nil {
		t.Fatal(err)
	}
	if pf.Rules.HandSize != 5 || pf.Rules.DeckSize != 20 || pf.Rules.StartingHealth != 100 {
		t.Errorf("Unexpected rules %+v", pf.Rules)
	}
	if len(pf.Pools) != 1 || len(pf.Pools[0].Weights()) != 2 {
		t.Errorf("Unexpected pools %+v", pf.Pools)
	}
}

func TestParsePoolsRejectsUnknownCard(t *testing.T) {
	data := []byte(`
pools:
  - name: Bad
    cards:
      - { name: Quantum Cheese, weight: 1 }
`)
	if _, err := ParsePools(data); !errors.Is(err, ErrUnknownCard) {
		t.Fatalf("Expected ErrUnknownCard, got %v", err)
	}
}

func TestParsePoolsRejectsZeroWeights(t *testing.T) {
	data := []byte(`
pools:
  - name: Empty
    cards:
      - { name: Phase Bias, weight: 0 }
`)
	if _, err := ParsePools(data); err == nil {
		t.Fatal("Expected an error for an unsampleable pool")
	}
}

func TestPoolByNumber(t *testing.T) {
	pool, rules, err := PoolByNumber("../../pools.yaml", 1)
	if err != nil {
		t.Fatal(err)
	}
	if pool.Name != "Standard" || rules.HandSize != 4 {
		t.Errorf("Unexpected pool %q rules %+v", pool.Name, rules)
	}
	if _, _, err := PoolByNumber("../../pools.yaml", 99); err == nil {
		t.Error("Expected an error for a missing pool")
	}
}

func TestDefaultPoolIsValid(t *testing.T) {
	if err := DefaultPool().Validate(); err != nil {
		t.Fatal(err)
	}
}
