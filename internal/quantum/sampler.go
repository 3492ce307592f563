package quantum

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// ErrEmptyDistribution is returned when there is nothing to sample from.
var ErrEmptyDistribution = errors.New("quantum: empty distribution")

// Weighted is one labelled outcome and its relative weight.
type Weighted struct {
	Label  string
	Weight float64
}

// Sampler draws classical outcomes. Every "measurement" in the game goes
// through a Sampler so that a duel can be replayed from its seed.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a sampler seeded with seed, or with the clock when seed is 0.
func NewSampler(seed uint64) *Sampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Choose picks one label with probability proportional to its weight.
// Non-positive weights never win.
func (s *Sampler) Choose(dist []Weighted) (string, error) {
	total := 0.0
	for _, w := range dist {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total <= 0 {
		return "", ErrEmptyDistribution
	}

	r := s.rng.Float64() * total
	last := ""
	for _, w := range dist {
		if w.Weight <= 0 {
			continue
		}
		last = w.Label
		if r < w.Weight {
			return w.Label, nil
		}
		r -= w.Weight
	}
	// Float rounding can leave r a hair above zero after the last bucket.
	return last, nil
}

// MustChoose is Choose for distributions built from static tables.
func (s *Sampler) MustChoose(dist []Weighted) string {
	label, err := s.Choose(dist)
	if err != nil {
		panic(fmt.Sprintf("choose from %v: %v", dist, err))
	}
	return label
}

// Chance reports true with probability p.
func (s *Sampler) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rng.Float64() < p
}

// Intn returns a uniform integer in [0, n).
func (s *Sampler) Intn(n int) int {
	return s.rng.Intn(n)
}

// Shuffle randomizes the order of n elements.
func (s *Sampler) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}
