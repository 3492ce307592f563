package quantum

import (
	"errors"
	"fmt"
)

// State is the measurement state of a card's outcome.
type State int

const (
	StateSuperposition State = iota
	StateCollapsed
	StateEntangled
)

func (s State) String() string {
	switch s {
	case StateSuperposition:
		return "SUPERPOSITION"
	case StateCollapsed:
		return "COLLAPSED"
	case StateEntangled:
		return "ENTANGLED"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrAlreadyCollapsed = errors.New("quantum: already collapsed")
	ErrUnknownLabel     = errors.New("quantum: unknown label")
	ErrInvalidStrength  = errors.New("quantum: bias strength must be in (0,1)")
	ErrEntangled        = errors.New("quantum: entangled states are measured through their pair")
)

// TwoState returns the labels of a single qubit.
func TwoState() []string { return []string{"0", "1"} }

// FourState returns the labels of a two-qubit register.
func FourState() []string { return []string{"00", "01", "10", "11"} }

// Superposition is an undetermined choice among a fixed set of labels.
// Once collapsed it always reports the same label.
type Superposition struct {
	labels    []string
	favored   string
	strength  float64
	state     State
	collapsed string
}

// NewSuperposition creates an unbiased superposition over labels.
func NewSuperposition(labels ...string) *Superposition {
	return &Superposition{
		labels: append([]string(nil), labels...),
		state:  StateSuperposition,
	}
}

// Labels returns the possible outcomes in declaration order.
func (q *Superposition) Labels() []string {
	return append([]string(nil), q.labels...)
}

// State returns the current measurement state.
func (q *Superposition) State() State {
	return q.state
}

// Collapsed returns the fixed label and whether the state has collapsed.
func (q *Superposition) Collapsed() (string, bool) {
	return q.collapsed, q.state == StateCollapsed
}

// Bias returns the favored label and its strength, if a bias is applied.
func (q *Superposition) Bias() (string, float64, bool) {
	return q.favored, q.strength, q.favored != ""
}

// Has reports whether label is one of the possible outcomes.
func (q *Superposition) Has(label string) bool {
	for _, l := range q.labels {
		if l == label {
			return true
		}
	}
	return false
}

// ApplyBias skews the distribution so that label is measured with
// probability strength. A later bias replaces an earlier one.
func (q *Superposition) ApplyBias(label string, strength float64) error {
	if q.state == StateCollapsed {
		return ErrAlreadyCollapsed
	}
	if q.state == StateEntangled {
		return ErrEntangled
	}
	if !q.Has(label) {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	if strength <= 0 || strength >= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidStrength, strength)
	}
	q.favored = label
	q.strength = strength
	return nil
}

// Distribution returns the weight of each label.
func (q *Superposition) Distribution() []Weighted {
	dist := make([]Weighted, 0, len(q.labels))
	if q.state == StateCollapsed {
		for _, l := range q.labels {
			w := 0.0
			if l == q.collapsed {
				w = 1
			}
			dist = append(dist, Weighted{Label: l, Weight: w})
		}
		return dist
	}

	n := float64(len(q.labels))
	for _, l := range q.labels {
		w := 1 / n
		if q.favored != "" {
			if l == q.favored {
				w = q.strength
			} else {
				w = (1 - q.strength) / (n - 1)
			}
		}
		dist = append(dist, Weighted{Label: l, Weight: w})
	}
	return dist
}

// Collapse measures the superposition. The first call samples, later
// calls return the memoized label.
func (q *Superposition) Collapse(s *Sampler) string {
	if q.state == StateCollapsed {
		return q.collapsed
	}
	q.collapsed = s.MustChoose(q.Distribution())
	q.state = StateCollapsed
	return q.collapsed
}

// Force collapses the superposition to label without sampling.
func (q *Superposition) Force(label string) error {
	if !q.Has(label) {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	if q.state == StateCollapsed {
		if q.collapsed == label {
			return nil
		}
		return ErrAlreadyCollapsed
	}
	if q.state == StateEntangled {
		return ErrEntangled
	}
	q.collapsed = label
	q.state = StateCollapsed
	return nil
}
