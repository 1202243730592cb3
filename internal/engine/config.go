package engine

import "math/rand/v2"

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Patterns         []Pattern // pattern catalogue
	PatternChoices   int       // patterns offered to each player
	ToolCards        int       // tool cards in play
	PublicObjectives int       // public objectives in play (one fewer in solo)
	TotalRounds      int
	// Rand drives every shuffle and roll. Nil uses the global source.
	Rand *rand.Rand
}

func DefaultConfig() GameConfig {
	return GameConfig{
		Patterns:         BasePatterns(),
		PatternChoices:   2,
		ToolCards:        3,
		PublicObjectives: 3,
		TotalRounds:      TotalRounds,
	}
}

// MaxPlayers is the largest supported table.
const MaxPlayers = 4
