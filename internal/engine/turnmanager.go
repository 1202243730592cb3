package engine

import "fmt"

// TurnManager decides whose turn it is. Each round visits the players
// forward and then backward; a player in the skip list loses their turn in
// the backward pass. The player order rotates by one between rounds.
type TurnManager struct {
	round       int
	totalRounds int
	players     []string
	skip        map[string]bool
	order       []string
	position    int
	finished    bool
	current     *Turn
}

// NewTurnManager starts round one with the first player's turn.
func NewTurnManager(players []string, totalRounds int) (*TurnManager, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if totalRounds < 1 {
		return nil, fmt.Errorf("total rounds must be positive, got %d", totalRounds)
	}
	seen := map[string]bool{}
	for _, p := range players {
		if seen[p] {
			return nil, fmt.Errorf("duplicate player %q", p)
		}
		seen[p] = true
	}
	tm := &TurnManager{
		round:       1,
		totalRounds: totalRounds,
		players:     append([]string(nil), players...),
		skip:        map[string]bool{},
	}
	tm.buildOrder()
	tm.current = newTurn(tm.order[0], tm.IsSecondTurnAvailable())
	return tm, nil
}

func (tm *TurnManager) buildOrder() {
	n := len(tm.players)
	tm.order = make([]string, 0, 2*n)
	tm.order = append(tm.order, tm.players...)
	for i := n - 1; i >= 0; i-- {
		tm.order = append(tm.order, tm.players[i])
	}
	tm.position = 0
}

// Round returns the current round, starting at 1.
func (tm *TurnManager) Round() int {
	return tm.round
}

// TotalRounds is the number of rounds the game lasts.
func (tm *TurnManager) TotalRounds() int {
	return tm.totalRounds
}

// Players returns the player order of the current round.
func (tm *TurnManager) Players() []string {
	return append([]string(nil), tm.players...)
}

// CurrentTurn returns the open turn.
func (tm *TurnManager) CurrentTurn() *Turn {
	return tm.current
}

// IsSecondTurnAvailable reports whether the round is still in its forward pass.
func (tm *TurnManager) IsSecondTurnAvailable() bool {
	return tm.position < len(tm.players)
}

func (tm *TurnManager) IsGameFinished() bool {
	return tm.finished
}

// ConsumeSecondTurn removes player's upcoming backward-pass turn.
func (tm *TurnManager) ConsumeSecondTurn(player string) error {
	if !tm.IsSecondTurnAvailable() {
		return ErrSecondTurnUnavailable
	}
	found := false
	for _, p := range tm.players {
		if p == player {
			found = true
			break
		}
	}
	if !found {
		return ErrPlayerNotFound
	}
	tm.skip[player] = true
	return nil
}

// UpdateTurn ends the open turn and opens the next one. It reports whether a
// new round started. Once the last round is exhausted it returns ErrGameFinished.
func (tm *TurnManager) UpdateTurn() (bool, error) {
	if tm.finished {
		return false, ErrGameFinished
	}
	tm.position++
	for tm.position < len(tm.order) && tm.position >= len(tm.players) && tm.skip[tm.order[tm.position]] {
		tm.position++
	}

	newRound := false
	if tm.position >= len(tm.order) {
		if tm.round >= tm.totalRounds {
			tm.finished = true
			tm.current = nil
			return false, ErrGameFinished
		}
		tm.round++
		tm.skip = map[string]bool{}
		rotated := make([]string, 0, len(tm.players))
		rotated = append(rotated, tm.players[1:]...)
		tm.players = append(rotated, tm.players[0])
		tm.buildOrder()
		newRound = true
	}
	tm.current = newTurn(tm.order[tm.position], tm.IsSecondTurnAvailable())
	return newRound, nil
}
