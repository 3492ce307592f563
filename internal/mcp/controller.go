package mcp

import (
	"context"

	"github.com/qduelist/qduel/internal/game"
	"github.com/qduelist/qduel/internal/log"
	qnet "github.com/qduelist/qduel/internal/net"
)

// MCPController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type MCPController struct {
	player     int
	session    *GameSession
	responseCh chan any
}

// NewMCPController creates a controller for the given character.
func NewMCPController(player int, session *GameSession) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan any),
	}
}

// ask publishes a decision and waits for the agent's answer.
func (c *MCPController) ask(ctx context.Context, pending *PendingDecision) (any, error) {
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-c.responseCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ChooseAction implements game.PlayerController.
func (c *MCPController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	resp, err := c.ask(ctx, &PendingDecision{
		Type:    DecisionChooseAction,
		Player:  c.player,
		State:   qnet.BuildStateView(state, c.player),
		Actions: qnet.ActionViews(actions),
	})
	if err != nil {
		return game.Action{}, err
	}
	ar := resp.(ActionResponse)

	if ar.Index < 0 || ar.Index >= len(actions) {
		return actions[len(actions)-1], nil
	}
	return actions[ar.Index], nil
}

// ChooseCards implements game.PlayerController.
func (c *MCPController) ChooseCards(ctx context.Context, state *game.GameState, prompt string, candidates []*game.CardInstance, min, max int) ([]*game.CardInstance, error) {
	resp, err := c.ask(ctx, &PendingDecision{
		Type:       DecisionChooseCards,
		Player:     c.player,
		State:      qnet.BuildStateView(state, c.player),
		Prompt:     prompt,
		Candidates: qnet.CardViews(candidates),
		Min:        min,
		Max:        max,
	})
	if err != nil {
		return nil, err
	}
	cr := resp.(CardsResponse)

	var result []*game.CardInstance
	for _, idx := range cr.Indices {
		if idx >= 0 && idx < len(candidates) {
			result = append(result, candidates[idx])
		}
	}
	return result, nil
}

// ChooseOption implements game.PlayerController.
func (c *MCPController) ChooseOption(ctx context.Context, state *game.GameState, prompt string, options []string) (int, error) {
	resp, err := c.ask(ctx, &PendingDecision{
		Type:    DecisionChooseOption,
		Player:  c.player,
		State:   qnet.BuildStateView(state, c.player),
		Prompt:  prompt,
		Options: qnet.OptionViews(options),
	})
	if err != nil {
		return -1, err
	}
	return resp.(OptionResponse).Index, nil
}

// Notify implements game.PlayerController.
// Only the agent's controller appends events to avoid duplicates.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	if c.player == c.session.agentPlayer {
		c.session.appendEvent(qnet.EventViewFor(event))
	}
	return nil
}
