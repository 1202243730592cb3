package engine

import "fmt"

// TotalRounds is the length of a game.
const TotalRounds = 10

// RoundTrack keeps the dice left over at the end of each round.
type RoundTrack struct {
	rounds [TotalRounds][]Die
}

func NewRoundTrack() *RoundTrack {
	return &RoundTrack{}
}

func checkRound(round int) error {
	if round < 1 || round > TotalRounds {
		return fmt.Errorf("%w: round %d", ErrBadIndex, round)
	}
	return nil
}

// AddAllForRound stores leftovers for a round (1-based).
func (t *RoundTrack) AddAllForRound(round int, dice []Die) error {
	if err := checkRound(round); err != nil {
		return err
	}
	t.rounds[round-1] = append(t.rounds[round-1], dice...)
	return nil
}

// Leftovers returns a copy of the dice stored for a round.
func (t *RoundTrack) Leftovers(round int) ([]Die, error) {
	if err := checkRound(round); err != nil {
		return nil, err
	}
	out := make([]Die, len(t.rounds[round-1]))
	copy(out, t.rounds[round-1])
	return out, nil
}

// DieAt returns the die at a position of a round.
func (t *RoundTrack) DieAt(round, i int) (Die, error) {
	if err := checkRound(round); err != nil {
		return Die{}, err
	}
	if i < 0 || i >= len(t.rounds[round-1]) {
		return Die{}, fmt.Errorf("%w: round %d has no die %d", ErrBadIndex, round, i)
	}
	return t.rounds[round-1][i], nil
}

func (t *RoundTrack) find(d Die) (int, int, bool) {
	for r, dice := range t.rounds {
		for i, x := range dice {
			if x == d {
				return r, i, true
			}
		}
	}
	return 0, 0, false
}

// Contains reports whether an equal die is on the track.
func (t *RoundTrack) Contains(d Die) bool {
	_, _, ok := t.find(d)
	return ok
}

// Swap replaces the first tracked die equal to leftover with candidate and
// returns the removed die. Nothing changes unless leftover is tracked and
// candidate is not.
func (t *RoundTrack) Swap(leftover, candidate Die) (Die, bool) {
	r, i, ok := t.find(leftover)
	if !ok {
		return Die{}, false
	}
	return t.SwapAt(r+1, i, candidate)
}

// SwapAt replaces the die at position i of a round with candidate and returns
// the removed die. Nothing changes if the position is empty or candidate is
// already tracked.
func (t *RoundTrack) SwapAt(round, i int, candidate Die) (Die, bool) {
	if checkRound(round) != nil || i < 0 || i >= len(t.rounds[round-1]) {
		return Die{}, false
	}
	if t.Contains(candidate) {
		return Die{}, false
	}
	removed := t.rounds[round-1][i]
	t.rounds[round-1][i] = candidate
	return removed, true
}

// Sum adds the values of every tracked die.
func (t *RoundTrack) Sum() int {
	sum := 0
	for _, dice := range t.rounds {
		for _, d := range dice {
			sum += d.Value
		}
	}
	return sum
}

// Colours returns the set of colours present on the track.
func (t *RoundTrack) Colours() map[Colour]bool {
	out := map[Colour]bool{}
	for _, dice := range t.rounds {
		for _, d := range dice {
			out[d.Colour] = true
		}
	}
	return out
}

func (t *RoundTrack) IsEmpty() bool {
	for _, dice := range t.rounds {
		if len(dice) > 0 {
			return false
		}
	}
	return true
}

// Rounds returns a copy of every round's leftovers.
func (t *RoundTrack) Rounds() [][]Die {
	out := make([][]Die, TotalRounds)
	for r, dice := range t.rounds {
		out[r] = make([]Die, len(dice))
		copy(out[r], dice)
	}
	return out
}
