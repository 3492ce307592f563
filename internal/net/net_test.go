package net

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"

	"github.com/qduelist/qduel/internal/game"
)

// autoResponder answers every prompt with the first choice until game_over.
func autoResponder(conn net.Conn, done chan<- ServerMessage, notifies *int) {
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			close(done)
			return
		}
		switch msg.Type {
		case "notify":
			*notifies++
		case "choose_action":
			_ = enc.Encode(ClientMessage{Type: "action", Index: 0})
		case "choose_cards":
			_ = enc.Encode(ClientMessage{Type: "cards", Indices: []int{0}})
		case "choose_option":
			_ = enc.Encode(ClientMessage{Type: "option", Index: 0})
		case "game_over":
			done <- msg
			return
		}
	}
}

func TestNetworkControllerPlaysDuel(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	done := make(chan ServerMessage, 1)
	notifies := 0
	go autoResponder(clientConn, done, &notifies)

	ctrl := NewNetworkController(serverConn, game.Wizard)
	duel := game.NewDuel(game.DuelConfig{Seed: 5, MaxTurns: 60}, game.NewRandomController(11), ctrl)
	winner, err := duel.Run(context.Background())
	if err != nil {
		t.Fatalf("Duel error: %v", err)
	}
	if err := ctrl.SendGameOver(duel.State.ID, winner, duel.State.Result); err != nil {
		t.Fatalf("send game_over: %v", err)
	}

	msg, ok := <-done
	if !ok {
		t.Fatal("responder stopped before game_over")
	}
	if msg.Winner != winner || msg.MatchID != duel.State.ID {
		t.Errorf("Expected winner %d in match %s, got %d in %s", winner, duel.State.ID, msg.Winner, msg.MatchID)
	}
	if notifies == 0 {
		t.Error("Expected event notifications")
	}
}

func TestClientREPLAnswersPrompts(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()

	var out bytes.Buffer
	client := &Client{conn: clientConn, playerName: "Wizard", in: strings.NewReader("1\n2\n"), out: &out}
	replErr := make(chan error, 1)
	go func() { replErr <- client.RunREPL(context.Background()) }()

	enc := json.NewEncoder(serverConn)
	dec := json.NewDecoder(serverConn)

	_ = enc.Encode(ServerMessage{Type: "choose_action", Actions: []ActionView{{Index: 0, Desc: "Play Magic Missive"}, {Index: 1, Desc: "Pass"}}})
	var resp ClientMessage
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Type != "action" || resp.Index != 0 {
		t.Errorf("Expected action 0, got %+v", resp)
	}

	_ = enc.Encode(ServerMessage{Type: "choose_option", Prompt: "Favor which outcome?", Options: []OptionView{{0, "|0⟩"}, {1, "|1⟩"}}})
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Type != "option" || resp.Index != 1 {
		t.Errorf("Expected option 1, got %+v", resp)
	}

	_ = enc.Encode(ServerMessage{Type: "game_over", Winner: game.Wizard, Result: "Wizard wins: Mage's health reached 0"})
	if err := <-replErr; err != nil {
		t.Fatalf("REPL error: %v", err)
	}
	if !strings.Contains(out.String(), "GAME OVER") || !strings.Contains(out.String(), "Wizard wins") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}

func TestStateViewHidesOpponentHand(t *testing.T) {
	duel := game.NewDuel(game.DuelConfig{Seed: 3}, game.NewRandomController(1), game.NewRandomController(2))
	gs := duel.State
	for p := 0; p < 2; p++ {
		gs.Characters[p].Refill()
	}
	gs.Characters[game.Wizard].Shield = true

	sv := BuildStateView(gs, game.Mage)
	if len(sv.You.Hand) != gs.Rules.HandSize {
		t.Errorf("Expected %d cards in own hand, got %d", gs.Rules.HandSize, len(sv.You.Hand))
	}
	if sv.Opponent.Hand != nil || sv.Opponent.HandCount != gs.Rules.HandSize {
		t.Errorf("Opponent hand leaked: %+v", sv.Opponent)
	}
	if !sv.Opponent.Shield || sv.You.Shield {
		t.Error("Shield flags on the wrong side")
	}
	if sv.MatchID == "" || sv.MatchID != gs.ID {
		t.Errorf("Expected match id %q, got %q", gs.ID, sv.MatchID)
	}
	if sv.Weather.Type != "Clear" {
		t.Errorf("Expected clear weather, got %q", sv.Weather.Type)
	}
}
