package protocol

import "sagrada/internal/engine"

// Message types: Server → Client
const (
	MsgLobbyUpdate    = "lobby_update"
	MsgGameState      = "game_state"
	MsgPlayerState    = "player_state"
	MsgToolCardPrompt = "tool_card_prompt"
	MsgTurnTimer      = "turn_timer"
	MsgError          = "error"
	MsgEvent          = "event"
)

// Message types: Client → Server
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgStartGame = "start_game"
	// In-game actions use the same names as engine ActionType
	MsgChoosePattern  = string(engine.ActionChoosePattern)
	MsgPlaceDie       = string(engine.ActionPlaceDie)
	MsgUseToolCard    = string(engine.ActionUseToolCard)
	MsgToolCardInput  = string(engine.ActionToolCardInput)
	MsgCancelToolCard = string(engine.ActionCancelToolCard)
	MsgEndTurn        = string(engine.ActionEndTurn)
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID     string        `json:"game_id"`
	Players    []LobbyPlayer `json:"players"`
	MaxPlayers int           `json:"max_players"`
	Started    bool          `json:"started"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

// JoinMsg is sent by a player to join the game.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// ActionMsg carries the parameters of an in-game action. Which fields
// matter depends on the envelope type.
type ActionMsg struct {
	Index     int                  `json:"index"`
	At        engine.Coordinates   `json:"at"`
	Sacrifice engine.Index         `json:"sacrifice"`
	Input     engine.ToolCardInput `json:"input"`
}

// TurnTimer tells clients when the open turn expires.
type TurnTimer struct {
	Player    string `json:"player"`
	ExpiresAt int64  `json:"expires_at"` // unix millis
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
	// Reason names the placement rule that failed, when one did.
	Reason string `json:"reason,omitempty"`
}
