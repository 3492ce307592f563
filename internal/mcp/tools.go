package mcp

import (
	"context"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	qnet "github.com/qduelist/qduel/internal/net"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// poolFile is the path to the pools YAML file, set by main.
var poolFile string

// port is the TCP port for a human opponent, set by main.
var port string

// logger receives operational logs. stdout belongs to the MCP transport.
var logger = zap.NewNop()

// SetPoolFile sets the path to the pools YAML file.
func SetPoolFile(path string) {
	poolFile = path
}

// SetPort sets the TCP port for a human opponent.
func SetPort(p string) {
	port = p
}

// SetLogger sets the operational logger.
func SetLogger(l *zap.Logger) {
	logger = l
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(takeActionTool(), handleTakeAction)
	s.AddTool(selectCardsTool(), handleSelectCards)
	s.AddTool(chooseOptionTool(), handleChooseOption)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Mage vs Wizard quantum card duel. Returns the initial game state and first pending decision. "+
			"Against a human opponent, the human connects via `qduel join --addr localhost:<port> --pool N` in a separate terminal "+
			"and this call blocks until they connect. Against the bot the duel starts immediately."),
		mcp.WithNumber("agent_pool", mcp.Required(), mcp.Description("Card pool number for the agent (1-indexed from pools.yaml)")),
		mcp.WithNumber("agent_character", mcp.Required(), mcp.Description("Which character the agent plays: 0 = Mage (moves first), 1 = Wizard")),
		mcp.WithString("opponent", mcp.Description("Opponent kind: 'bot' (default) or 'human'"), mcp.Enum(OpponentBot, OpponentHuman)),
		mcp.WithNumber("seed", mcp.Description("Optional RNG seed for a reproducible duel (0 for random)")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list: play a card from hand or pass. Use this when the pending decision type is 'choose_action'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func selectCardsTool() mcp.Tool {
	return mcp.NewTool("select_cards",
		mcp.WithDescription("Select cards from the pending candidates list (e.g. the Phase Bias target). Use this when the pending decision type is 'choose_cards'."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based indices of cards to select (e.g. '0 2'), or empty string for no selection")),
	)
}

func chooseOptionTool() mcp.Tool {
	return mcp.NewTool("choose_option",
		mcp.WithDescription("Pick one of the pending options (e.g. which outcome Phase Bias should favor). Use this when the pending decision type is 'choose_option'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the option")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	agentPool := request.GetInt("agent_pool", 0)
	agentCharacter := request.GetInt("agent_character", 0)
	opponent := request.GetString("opponent", OpponentBot)
	seed := request.GetInt("seed", 0)

	if agentPool < 1 {
		return mcp.NewToolResultError("agent_pool must be >= 1"), nil
	}
	if agentCharacter != 0 && agentCharacter != 1 {
		return mcp.NewToolResultError("agent_character must be 0 or 1"), nil
	}
	if opponent != OpponentBot && opponent != OpponentHuman {
		return mcp.NewToolResultErrorf("opponent must be %q or %q", OpponentBot, OpponentHuman), nil
	}
	if seed < 0 {
		return mcp.NewToolResultError("seed must be >= 0"), nil
	}

	sess, err := NewGameSession(SessionConfig{
		PoolFile:    poolFile,
		AgentPool:   agentPool,
		BotPool:     1,
		AgentPlayer: agentCharacter,
		Opponent:    opponent,
		Port:        port,
		Seed:        uint64(seed),
		Logger:      logger,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	activeSession = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	if opponent == OpponentHuman {
		resp.Port = port
	}
	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// agentPending returns the session's pending decision if it is the agent's
// turn to answer want, or a tool error.
func agentPending(want DecisionType) (*GameSession, *PendingDecision, *mcp.CallToolResult) {
	if activeSession == nil {
		return nil, nil, mcp.NewToolResultError("No game is running. Use start_game first.")
	}
	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return nil, nil, mcp.NewToolResultError("No pending decision.")
	}
	if pending.Player != sess.agentPlayer {
		return nil, nil, mcp.NewToolResultError("Waiting for the opponent to respond.")
	}
	if pending.Type != want {
		return nil, nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", pending.Type, want)
	}
	return sess, pending, nil
}

// respond hands the answer to the duel and waits for the next decision.
func respond(ctx context.Context, sess *GameSession, answer any) (*mcp.CallToolResult, error) {
	sess.agentCtrl.responseCh <- answer

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}

	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := agentPending(DecisionChooseAction)
	if errResult != nil {
		return errResult, nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Actions)-1), nil
	}

	return respond(ctx, sess, ActionResponse{Index: index})
}

func handleSelectCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := agentPending(DecisionChooseCards)
	if errResult != nil {
		return errResult, nil
	}

	indicesStr := request.GetString("indices", "")
	var indices []int
	if strings.TrimSpace(indicesStr) != "" {
		parts := strings.Fields(indicesStr)
		for _, p := range parts {
			idx, err := strconv.Atoi(p)
			if err != nil {
				return mcp.NewToolResultErrorf("Invalid index '%s': must be an integer.", p), nil
			}
			if idx < 0 || idx >= len(pending.Candidates) {
				return mcp.NewToolResultErrorf("Index %d out of range. Must be 0-%d.", idx, len(pending.Candidates)-1), nil
			}
			indices = append(indices, idx)
		}
	}

	if len(indices) < pending.Min {
		return mcp.NewToolResultErrorf("Must select at least %d card(s), got %d.", pending.Min, len(indices)), nil
	}
	if len(indices) > pending.Max {
		return mcp.NewToolResultErrorf("Must select at most %d card(s), got %d.", pending.Max, len(indices)), nil
	}

	return respond(ctx, sess, CardsResponse{Indices: indices})
}

func handleChooseOption(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := agentPending(DecisionChooseOption)
	if errResult != nil {
		return errResult, nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Options) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Options)-1), nil
	}

	return respond(ctx, sess, OptionResponse{Index: index})
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	events := sess.drainEvents()

	sess.mu.Lock()
	gameOver := sess.gameOver
	winner := sess.winner
	result := sess.result
	sess.mu.Unlock()

	resp := &ToolResponse{
		MatchID:  sess.MatchID(),
		Events:   events,
		GameOver: gameOver,
		Winner:   winner,
		Result:   result,
	}

	if sess.currentPending != nil {
		resp.State = sess.currentPending.State
		if !gameOver {
			resp.Pending = &PendingView{
				Type:       sess.currentPending.Type,
				ForPlayer:  sess.playerLabel(sess.currentPending.Player),
				Actions:    sess.currentPending.Actions,
				Prompt:     sess.currentPending.Prompt,
				Candidates: sess.currentPending.Candidates,
				Options:    sess.currentPending.Options,
				Min:        sess.currentPending.Min,
				Max:        sess.currentPending.Max,
			}
		}
	}
	if resp.State == nil {
		resp.State = qnet.BuildStateView(sess.duel.State, sess.agentPlayer)
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}
