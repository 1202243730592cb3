package engine

// ActionType identifies player actions sent to Game.Apply.
type ActionType string

const (
	ActionChoosePattern  ActionType = "choose_pattern"
	ActionPlaceDie       ActionType = "place_die"
	ActionUseToolCard    ActionType = "use_tool_card"
	ActionToolCardInput  ActionType = "tool_card_input"
	ActionCancelToolCard ActionType = "cancel_tool_card"
	ActionEndTurn        ActionType = "end_turn"
)

// Action is a player's action input.
type Action struct {
	Type ActionType `json:"type"`
	// Params depend on Type:
	// choose_pattern: Index (pattern offer)
	// place_die: Index (draft pool), At
	// use_tool_card: Index (tool card slot), Sacrifice (solo only)
	// tool_card_input: Input
	Index     int           `json:"index,omitempty"`
	At        Coordinates   `json:"at"`
	Sacrifice Index         `json:"sacrifice"`
	Input     ToolCardInput `json:"input"`
}

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventGameStart         EventType = "game_start"
	EventPatternChosen     EventType = "pattern_chosen"
	EventRoundStart        EventType = "round_start"
	EventRoundEnd          EventType = "round_end"
	EventTurnStart         EventType = "turn_start"
	EventTurnEnd           EventType = "turn_end"
	EventDiePlaced         EventType = "die_placed"
	EventToolCardActivated EventType = "tool_card_activated"
	EventToolCardApplied   EventType = "tool_card_applied"
	EventToolCardCancelled EventType = "tool_card_cancelled"
	EventTokensSpent       EventType = "tokens_spent"
	EventDieSacrificed     EventType = "die_sacrificed"
	EventGameOver          EventType = "game_over"
	EventPhaseChange       EventType = "phase_change"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type   EventType   `json:"type"`
	Player string      `json:"player,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}
