package engine

// GamePhase represents the current phase of the game state machine.
type GamePhase int

const (
	PhaseLobby         GamePhase = iota // waiting for players
	PhasePatternChoice                  // players choosing their window pattern
	PhasePlayerTurn                     // active player drafting / using tool cards
	PhaseGameOver                       // game finished
)

var phaseNames = map[GamePhase]string{
	PhaseLobby:         "Lobby",
	PhasePatternChoice: "PatternChoice",
	PhasePlayerTurn:    "PlayerTurn",
	PhaseGameOver:      "GameOver",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}
