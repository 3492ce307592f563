package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	qnet "github.com/qduelist/qduel/internal/net"

	"github.com/qduelist/qduel/internal/game"
	"github.com/qduelist/qduel/internal/log"

	stdnet "net"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionChooseCards  DecisionType = "choose_cards"
	DecisionChooseOption DecisionType = "choose_option"
	DecisionGameOver     DecisionType = "game_over"
)

// Opponent kinds for the character the agent does not play.
const (
	OpponentHuman = "human"
	OpponentBot   = "bot"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type       DecisionType      `json:"type"`
	Player     int               `json:"player"`
	State      *qnet.StateView   `json:"state"`
	Actions    []qnet.ActionView `json:"actions,omitempty"`
	Prompt     string            `json:"prompt,omitempty"`
	Candidates []qnet.CardView   `json:"candidates,omitempty"`
	Options    []qnet.OptionView `json:"options,omitempty"`
	Min        int               `json:"min,omitempty"`
	Max        int               `json:"max,omitempty"`
}

// Response types sent back from MCP tools to controllers.

type ActionResponse struct {
	Index int
}

type CardsResponse struct {
	Indices []int
}

type OptionResponse struct {
	Index int
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	MatchID  string           `json:"match_id,omitempty"`
	Events   []qnet.EventView `json:"events"`
	State    *qnet.StateView  `json:"state,omitempty"`
	Pending  *PendingView     `json:"pending,omitempty"`
	GameOver bool             `json:"game_over"`
	Winner   int              `json:"winner,omitempty"`
	Result   string           `json:"result,omitempty"`
	Port     string           `json:"port,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type       DecisionType      `json:"type"`
	ForPlayer  string            `json:"for_player"`
	Actions    []qnet.ActionView `json:"actions,omitempty"`
	Prompt     string            `json:"prompt,omitempty"`
	Candidates []qnet.CardView   `json:"candidates,omitempty"`
	Options    []qnet.OptionView `json:"options,omitempty"`
	Min        int               `json:"min,omitempty"`
	Max        int               `json:"max,omitempty"`
}

// SessionConfig describes a new game session.
type SessionConfig struct {
	PoolFile    string // empty for the built-in pool
	AgentPool   int    // 1-indexed
	BotPool     int    // 1-indexed, used when Opponent is OpponentBot
	AgentPlayer int    // game.Mage or game.Wizard
	Opponent    string // OpponentHuman or OpponentBot
	Port        string // TCP port for a human opponent
	Seed        uint64
	Logger      *zap.Logger
}

// GameSession holds the state of a single MCP game session.
type GameSession struct {
	duel        *game.Duel
	agentCtrl   *MCPController
	humanCtrl   *qnet.NetworkController // nil against the bot
	agentPlayer int
	logger      *zap.Logger

	listener  stdnet.Listener
	humanConn stdnet.Conn

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []qnet.EventView
	gameOver bool
	winner   int
	result   string
}

// NewGameSession creates a new game session. Against a human it starts a
// TCP listener and waits for `qduel join`; against the bot it starts at once.
func NewGameSession(cfg SessionConfig) (*GameSession, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AgentPlayer != game.Mage && cfg.AgentPlayer != game.Wizard {
		return nil, fmt.Errorf("invalid agent character %d", cfg.AgentPlayer)
	}

	sess := &GameSession{
		agentPlayer: cfg.AgentPlayer,
		pendingCh:   make(chan *PendingDecision, 1),
		winner:      -1,
		logger:      logger,
	}
	sess.agentCtrl = NewMCPController(cfg.AgentPlayer, sess)
	opponentPlayer := 1 - cfg.AgentPlayer

	var opponentCtrl game.PlayerController
	opponentPool := cfg.BotPool
	switch cfg.Opponent {
	case OpponentBot, "":
		opponentCtrl = game.NewRandomController(cfg.Seed + 1)
		if opponentPool == 0 {
			opponentPool = 1
		}
	case OpponentHuman:
		ln, err := stdnet.Listen("tcp", ":"+cfg.Port)
		if err != nil {
			return nil, fmt.Errorf("listen on port %s: %w", cfg.Port, err)
		}
		logger.Info("waiting for human opponent", zap.String("port", cfg.Port))

		// Accept one connection (blocks until the human runs `qduel join`)
		conn, err := ln.Accept()
		if err != nil {
			ln.Close()
			return nil, fmt.Errorf("accept: %w", err)
		}

		// Read join message to get the human's pool choice
		dec := json.NewDecoder(conn)
		var joinMsg qnet.ClientMessage
		if err := dec.Decode(&joinMsg); err != nil {
			conn.Close()
			ln.Close()
			return nil, fmt.Errorf("read join message: %w", err)
		}
		opponentPool = joinMsg.PoolNumber
		if opponentPool == 0 {
			opponentPool = 1
		}
		sess.listener = ln
		sess.humanConn = conn
		sess.humanCtrl = qnet.NewNetworkControllerWithDecoder(conn, dec, opponentPlayer)
		opponentCtrl = sess.humanCtrl
	default:
		return nil, fmt.Errorf("unknown opponent %q", cfg.Opponent)
	}

	agentPool, otherPool, rules, err := qnet.LoadPools(cfg.PoolFile, cfg.AgentPool, opponentPool)
	if err != nil {
		sess.closeHuman()
		return nil, err
	}

	duelCfg := game.DuelConfig{
		Rules:  rules,
		Logger: log.NewZapLogger(logger.Named("duel")),
		Seed:   cfg.Seed,
	}
	var mageCtrl, wizardCtrl game.PlayerController
	if cfg.AgentPlayer == game.Mage {
		duelCfg.MagePool, duelCfg.WizardPool = &agentPool, &otherPool
		mageCtrl, wizardCtrl = sess.agentCtrl, opponentCtrl
	} else {
		duelCfg.MagePool, duelCfg.WizardPool = &otherPool, &agentPool
		mageCtrl, wizardCtrl = opponentCtrl, sess.agentCtrl
	}

	sess.duel = game.NewDuel(duelCfg, mageCtrl, wizardCtrl)
	logger.Info("match started",
		zap.String("match_id", sess.duel.State.ID),
		zap.String("agent", log.CharacterName(cfg.AgentPlayer)),
		zap.String("opponent", cfg.Opponent))

	// Start the duel in a goroutine
	go sess.run()

	return sess, nil
}

func (s *GameSession) run() {
	winner, err := s.duel.Run(context.Background())
	result := s.duel.State.Result
	if err != nil {
		result = fmt.Sprintf("error: %v", err)
		s.logger.Error("duel failed", zap.Error(err))
	}
	if result == "" {
		result = fmt.Sprintf("Game over. Winner: %s", log.CharacterName(winner))
	}

	if s.humanCtrl != nil {
		_ = s.humanCtrl.SendGameOver(s.duel.State.ID, winner, result)
	}
	s.closeHuman()

	s.mu.Lock()
	s.gameOver = true
	s.winner = winner
	s.result = result
	s.mu.Unlock()

	s.logger.Info("match finished",
		zap.String("match_id", s.duel.State.ID),
		zap.Int("winner", winner),
		zap.String("result", result))

	// Notify the agent via the pending channel
	s.pendingCh <- &PendingDecision{
		Type:   DecisionGameOver,
		Player: winner,
		State:  qnet.BuildStateView(s.duel.State, s.agentPlayer),
	}
}

func (s *GameSession) closeHuman() {
	if s.humanConn != nil {
		s.humanConn.Close()
	}
	if s.listener != nil {
		s.listener.Close()
	}
}

// MatchID returns the duel's unique identifier.
func (s *GameSession) MatchID() string {
	return s.duel.State.ID
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev qnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []qnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []qnet.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the game engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending

	resp := &ToolResponse{
		MatchID: s.MatchID(),
		Events:  s.drainEvents(),
		State:   pending.State,
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		return resp, nil
	}

	resp.Pending = &PendingView{
		Type:       pending.Type,
		ForPlayer:  s.playerLabel(pending.Player),
		Actions:    pending.Actions,
		Prompt:     pending.Prompt,
		Candidates: pending.Candidates,
		Options:    pending.Options,
		Min:        pending.Min,
		Max:        pending.Max,
	}
	return resp, nil
}

// playerLabel returns "agent" or "opponent" for the given character index.
func (s *GameSession) playerLabel(player int) string {
	if player == s.agentPlayer {
		return "agent"
	}
	return "opponent"
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
