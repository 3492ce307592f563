package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/qduelist/qduel/internal/game"
	"github.com/qduelist/qduel/internal/log"
)

// NetworkController implements game.PlayerController over a TCP connection.
type NetworkController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player int // which character this controller plays (0 or 1)
	mu     sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, player int) *NetworkController {
	return &NetworkController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
	}
}

// NewNetworkControllerWithDecoder reuses a decoder that already read the
// join handshake, so bytes it buffered are not lost.
func NewNetworkControllerWithDecoder(conn net.Conn, dec *json.Decoder, player int) *NetworkController {
	nc := NewNetworkController(conn, player)
	nc.dec = dec
	return nc
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv(ctx context.Context) (ClientMessage, error) {
	if err := ctx.Err(); err != nil {
		return ClientMessage{}, err
	}
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ChooseAction implements game.PlayerController.
func (nc *NetworkController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:    "choose_action",
		MatchID: state.ID,
		Actions: ActionViews(actions),
		State:   BuildStateView(state, nc.player),
	}
	if err := nc.send(msg); err != nil {
		return game.Action{}, fmt.Errorf("send choose_action: %w", err)
	}

	resp, err := nc.recv(ctx)
	if err != nil {
		return game.Action{}, fmt.Errorf("recv action: %w", err)
	}

	if resp.Index < 0 || resp.Index >= len(actions) {
		return actions[len(actions)-1], nil // fallback to passing
	}
	return actions[resp.Index], nil
}

// ChooseCards implements game.PlayerController.
func (nc *NetworkController) ChooseCards(ctx context.Context, state *game.GameState, prompt string, candidates []*game.CardInstance, min, max int) ([]*game.CardInstance, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:       "choose_cards",
		MatchID:    state.ID,
		Prompt:     prompt,
		Candidates: CardViews(candidates),
		Min:        min,
		Max:        max,
		State:      BuildStateView(state, nc.player),
	}
	if err := nc.send(msg); err != nil {
		return nil, fmt.Errorf("send choose_cards: %w", err)
	}

	resp, err := nc.recv(ctx)
	if err != nil {
		return nil, fmt.Errorf("recv cards: %w", err)
	}

	var result []*game.CardInstance
	for _, idx := range resp.Indices {
		if idx >= 0 && idx < len(candidates) && len(result) < max {
			result = append(result, candidates[idx])
		}
	}
	return result, nil
}

// ChooseOption implements game.PlayerController.
func (nc *NetworkController) ChooseOption(ctx context.Context, state *game.GameState, prompt string, options []string) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:    "choose_option",
		MatchID: state.ID,
		Prompt:  prompt,
		Options: OptionViews(options),
		State:   BuildStateView(state, nc.player),
	}
	if err := nc.send(msg); err != nil {
		return -1, fmt.Errorf("send choose_option: %w", err)
	}

	resp, err := nc.recv(ctx)
	if err != nil {
		return -1, fmt.Errorf("recv option: %w", err)
	}
	return resp.Index, nil
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(matchID string, winner int, result string) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: "game_over", MatchID: matchID, Winner: winner, Result: result})
}

// Notify implements game.PlayerController.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	ev := EventViewFor(event)
	return nc.send(ServerMessage{Type: "notify", Event: &ev})
}
