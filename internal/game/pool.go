package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qduelist/qduel/internal/quantum"
)

var ErrUnknownCard = errors.New("unknown card")

// Rules holds the tunable numbers of a duel.
type Rules struct {
	StartingHealth       int     `yaml:"starting_health" json:"starting_health"`
	MaxHealth            int     `yaml:"max_health" json:"max_health"`
	DeckSize             int     `yaml:"deck_size" json:"deck_size"`
	HandSize             int     `yaml:"hand_size" json:"hand_size"`
	WeatherDuration      int     `yaml:"weather_duration" json:"weather_duration"`
	BiasStrength         float64 `yaml:"bias_strength" json:"bias_strength"`
	TunnelingProbability float64 `yaml:"tunneling_probability" json:"tunneling_probability"`
}

// DefaultRules returns the standard duel rules.
func DefaultRules() Rules {
	return Rules{
		StartingHealth:       100,
		MaxHealth:            100,
		DeckSize:             20,
		HandSize:             4,
		WeatherDuration:      3,
		BiasStrength:         0.7,
		TunnelingProbability: quantum.DefaultTunnelingProbability,
	}
}

// withDefaults fills unset fields from DefaultRules.
func (r Rules) withDefaults() Rules {
	def := DefaultRules()
	if r.StartingHealth <= 0 {
		r.StartingHealth = def.StartingHealth
	}
	if r.MaxHealth <= 0 {
		r.MaxHealth = def.MaxHealth
	}
	if r.StartingHealth > r.MaxHealth {
		r.StartingHealth = r.MaxHealth
	}
	if r.DeckSize <= 0 {
		r.DeckSize = def.DeckSize
	}
	if r.HandSize <= 0 {
		r.HandSize = def.HandSize
	}
	if r.WeatherDuration <= 0 {
		r.WeatherDuration = def.WeatherDuration
	}
	if r.BiasStrength <= 0 || r.BiasStrength >= 1 {
		r.BiasStrength = def.BiasStrength
	}
	if r.TunnelingProbability <= 0 {
		r.TunnelingProbability = def.TunnelingProbability
	}
	return r
}

// PoolFile represents the top-level YAML structure.
type PoolFile struct {
	Rules Rules  `yaml:"rules"`
	Pools []Pool `yaml:"pools"`
}

// Pool is a weighted list of cards that decks are dealt from.
type Pool struct {
	Name  string      `yaml:"name" json:"name"`
	Cards []PoolEntry `yaml:"cards" json:"cards"`
}

// PoolEntry is a card and its relative draw weight.
type PoolEntry struct {
	Name   string  `yaml:"name" json:"name"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// DefaultPool returns the standard card pool.
func DefaultPool() Pool {
	return Pool{
		Name: "Standard",
		Cards: []PoolEntry{
			{Name: "Duelist Paradox", Weight: 0.35},
			{Name: "Magic Missive", Weight: 0.25},
			{Name: "Thanos Snap", Weight: 0.25},
			{Name: "Collapse Barrier", Weight: 0.25},
			{Name: "Elemental Affliction", Weight: 0.25},
			{Name: "Phase Bias", Weight: 0.25},
			{Name: "Quantum Tunneling", Weight: 0.35},
		},
	}
}

// Validate checks that every card exists and the pool can be sampled.
func (p Pool) Validate() error {
	total := 0.0
	for _, e := range p.Cards {
		if _, ok := CardRegistry[e.Name]; !ok {
			return fmt.Errorf("pool %q: %w: %q", p.Name, ErrUnknownCard, e.Name)
		}
		if e.Weight < 0 {
			return fmt.Errorf("pool %q: negative weight for %q", p.Name, e.Name)
		}
		total += e.Weight
	}
	if total <= 0 {
		return fmt.Errorf("pool %q: %w", p.Name, quantum.ErrEmptyDistribution)
	}
	return nil
}

// Weights converts the pool to a sampler distribution.
func (p Pool) Weights() []quantum.Weighted {
	dist := make([]quantum.Weighted, len(p.Cards))
	for i, e := range p.Cards {
		dist[i] = quantum.Weighted{Label: e.Name, Weight: e.Weight}
	}
	return dist
}

// ParsePoolFile parses and validates a YAML pool file.
func ParsePoolFile(path string) (*PoolFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePools(data)
}

// ParsePools parses and validates YAML pool data.
func ParsePools(data []byte) (*PoolFile, error) {
	var pf PoolFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse pool YAML: %w", err)
	}
	for _, p := range pf.Pools {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	pf.Rules = pf.Rules.withDefaults()
	return &pf, nil
}

// PoolByNumber returns the Nth pool (1-indexed) and the file's rules.
func PoolByNumber(path string, n int) (Pool, Rules, error) {
	pf, err := ParsePoolFile(path)
	if err != nil {
		return Pool{}, Rules{}, err
	}
	if n < 1 || n > len(pf.Pools) {
		return Pool{}, Rules{}, fmt.Errorf("pool %d not found (have %d pools)", n, len(pf.Pools))
	}
	return pf.Pools[n-1], pf.Rules, nil
}
