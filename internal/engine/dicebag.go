package engine

import (
	"fmt"
	"math/rand/v2"
)

// DicePerColour is the number of dice of each colour in a full bag.
const DicePerColour = 18

// DiceBag holds every die not currently in play.
type DiceBag struct {
	dice []Die
	rng  *rand.Rand
}

// NewDiceBag creates a full bag of 90 dice with random faces.
// A nil rng uses the global source.
func NewDiceBag(rng *rand.Rand) *DiceBag {
	b := &DiceBag{rng: rng}
	for _, c := range AllColours() {
		for i := 0; i < DicePerColour; i++ {
			b.dice = append(b.dice, Die{Colour: c}.Roll(rng))
		}
	}
	return b
}

func (b *DiceBag) intN(n int) int {
	if b.rng == nil {
		return rand.IntN(n)
	}
	return b.rng.IntN(n)
}

// Draft withdraws n dice uniformly at random without replacement.
func (b *DiceBag) Draft(n int) ([]Die, error) {
	if n < 0 || n > len(b.dice) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughDice, n, len(b.dice))
	}
	drawn := make([]Die, 0, n)
	for i := 0; i < n; i++ {
		j := b.intN(len(b.dice))
		drawn = append(drawn, b.dice[j])
		last := len(b.dice) - 1
		b.dice[j] = b.dice[last]
		b.dice = b.dice[:last]
	}
	return drawn, nil
}

// PushBack returns a die to the bag.
func (b *DiceBag) PushBack(d Die) {
	b.dice = append(b.dice, d)
}

// Len returns the number of dice remaining.
func (b *DiceBag) Len() int {
	return len(b.dice)
}

// Rand exposes the bag's random source for rerolls.
func (b *DiceBag) Rand() *rand.Rand {
	return b.rng
}
