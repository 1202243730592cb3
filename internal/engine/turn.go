package engine

// ToolCardStep tracks progress through a multi-step tool card.
type ToolCardStep int

const (
	StepAwaitingFirstInput ToolCardStep = iota
	StepAwaitingSecondInput
)

var stepNames = map[ToolCardStep]string{
	StepAwaitingFirstInput:  "AwaitingFirstInput",
	StepAwaitingSecondInput: "AwaitingSecondInput",
}

func (s ToolCardStep) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return "Unknown"
}

// PendingAction is an activated tool card that still needs input.
type PendingAction struct {
	Card ToolCardID   `json:"card"`
	Step ToolCardStep `json:"step"`
	// Paid is set once the card's cost has been charged.
	Paid bool `json:"paid"`
	// SacrificeDie is held out of the draft pool while a solo player's
	// card is unpaid.
	SacrificeDie *Die `json:"-"`
}

// Turn is the mutable record of one player's turn. A fresh Turn is built by
// the TurnManager for every turn and dropped when the turn ends.
type Turn struct {
	Player              string `json:"player"`
	SecondTurnAvailable bool   `json:"second_turn_available"`
	AlreadyPlacedDie    bool   `json:"already_placed_die"`
	AlreadyUsedToolCard bool   `json:"already_used_tool_card"`

	ForcedSelection Index `json:"forced_selection"`
	Sacrifice       Index `json:"sacrifice"`

	SelectedToolCard *ToolCard     `json:"selected_tool_card,omitempty"`
	Pending          *PendingAction `json:"pending,omitempty"`
}

func newTurn(player string, secondTurnAvailable bool) *Turn {
	return &Turn{Player: player, SecondTurnAvailable: secondTurnAvailable}
}

// IsDone reports whether the player has nothing left to do this turn.
func (t *Turn) IsDone() bool {
	return t.AlreadyPlacedDie && t.AlreadyUsedToolCard && t.Pending == nil
}

func (t *Turn) clearToolCard() {
	t.SelectedToolCard = nil
	t.Pending = nil
	t.Sacrifice = NoIndex
}
