package net

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id,omitempty"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_action"
	Actions []ActionView `json:"actions,omitempty"`
	State   *StateView   `json:"state,omitempty"`

	// For "choose_cards" and "choose_option"
	Prompt     string       `json:"prompt,omitempty"`
	Candidates []CardView   `json:"candidates,omitempty"`
	Options    []OptionView `json:"options,omitempty"`
	Min        int          `json:"min,omitempty"`
	Max        int          `json:"max,omitempty"`

	// For "game_over" (-1 is a draw)
	Winner int    `json:"winner"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Round   int    `json:"round"`
	State   string `json:"state"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Desc  string `json:"desc"`
}

// CardView describes a card in hand or a selection candidate.
type CardView struct {
	Index       int      `json:"index"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Kind        string   `json:"kind"`
	Quantum     string   `json:"quantum,omitempty"` // SUPERPOSITION, COLLAPSED or ENTANGLED
	Labels      []string `json:"labels,omitempty"`
	Collapsed   string   `json:"collapsed,omitempty"`
	BiasLabel   string   `json:"bias_label,omitempty"`
	BiasPercent int      `json:"bias_percent,omitempty"`
}

// OptionView is a numbered labelled option.
type OptionView struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// StateView is the game state from one character's perspective.
type StateView struct {
	MatchID    string        `json:"match_id"`
	You        CharacterView `json:"you"`
	Opponent   CharacterView `json:"opponent"`
	Turn       int           `json:"turn"`
	Round      int           `json:"round"`
	State      string        `json:"state"`
	Weather    WeatherView   `json:"weather"`
	IsYourTurn bool          `json:"is_your_turn"`
}

// CharacterView shows one duelist.
type CharacterView struct {
	Name             string          `json:"name"`
	HP               int             `json:"hp"`
	MaxHP            int             `json:"max_hp"`
	Shield           bool            `json:"shield,omitempty"`
	DamageMultiplier int             `json:"damage_multiplier"`
	Tunneling        bool            `json:"tunneling,omitempty"`
	TunnelingPercent int             `json:"tunneling_percent,omitempty"`
	Affliction       *AfflictionView `json:"affliction,omitempty"`
	HandCount        int             `json:"hand_count"`
	Hand             []CardView      `json:"hand,omitempty"` // only for "you"
	DeckCount        int             `json:"deck_count"`
}

// AfflictionView describes a damage-over-turn effect.
type AfflictionView struct {
	Spell          string `json:"spell"`
	Element        string `json:"element"`
	Damage         int    `json:"damage"`
	TurnsRemaining int    `json:"turns_remaining"`
}

// WeatherView describes the global weather.
type WeatherView struct {
	Type       string `json:"type"`
	StartRound int    `json:"start_round,omitempty"`
	Duration   int    `json:"duration,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "action" and "option"
	Index int `json:"index,omitempty"`

	// For "cards"
	Indices []int `json:"indices,omitempty"`

	// For "join" (initial handshake)
	PoolNumber int `json:"pool_number,omitempty"`
}
