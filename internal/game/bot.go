package game

import (
	"context"

	"github.com/qduelist/qduel/internal/log"
	"github.com/qduelist/qduel/internal/quantum"
)

// RandomController plays uniformly random legal moves. It only passes
// when the hand is empty.
type RandomController struct {
	rng *quantum.Sampler
}

func NewRandomController(seed uint64) *RandomController {
	return &RandomController{rng: quantum.NewSampler(seed)}
}

func (rc *RandomController) ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error) {
	var plays []Action
	for _, a := range actions {
		if a.Type == ActionPlayCard {
			plays = append(plays, a)
		}
	}
	if len(plays) > 0 {
		return plays[rc.rng.Intn(len(plays))], nil
	}
	return actions[len(actions)-1], nil
}

func (rc *RandomController) ChooseCards(ctx context.Context, state *GameState, prompt string, candidates []*CardInstance, min, max int) ([]*CardInstance, error) {
	if min > len(candidates) {
		min = len(candidates)
	}
	picked := append([]*CardInstance(nil), candidates...)
	rc.rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	return picked[:min], nil
}

func (rc *RandomController) ChooseOption(ctx context.Context, state *GameState, prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, nil
	}
	return rc.rng.Intn(len(options)), nil
}

func (rc *RandomController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
