package engine

import "fmt"

// DraftPool holds the dice available in the current round, in presentation order.
type DraftPool struct {
	dice   []Die
	forced Index
}

// NewDraftPool creates a pool holding dice.
func NewDraftPool(dice []Die) *DraftPool {
	p := &DraftPool{}
	p.SetDice(dice)
	return p
}

func (p *DraftPool) checkIndex(i int) error {
	if i < 0 || i >= len(p.dice) {
		return fmt.Errorf("%w: draft pool index %d (size %d)", ErrBadIndex, i, len(p.dice))
	}
	return nil
}

// Select returns the die at i without removing it.
func (p *DraftPool) Select(i int) (Die, error) {
	if err := p.checkIndex(i); err != nil {
		return Die{}, err
	}
	return p.dice[i], nil
}

// Draft removes and returns the die at i. A forced selection on a later
// die is shifted so that it still marks the same die.
func (p *DraftPool) Draft(i int) (Die, error) {
	if err := p.checkIndex(i); err != nil {
		return Die{}, err
	}
	d := p.dice[i]
	p.dice = append(p.dice[:i:i], p.dice[i+1:]...)
	if f, ok := p.forced.Get(); ok {
		switch {
		case f == i:
			p.forced = NoIndex
		case f > i:
			p.forced = At(f - 1)
		}
	}
	return d, nil
}

// Replace swaps the die at i for d and returns the previous die.
func (p *DraftPool) Replace(i int, d Die) (Die, error) {
	if err := p.checkIndex(i); err != nil {
		return Die{}, err
	}
	old := p.dice[i]
	p.dice[i] = d
	return old, nil
}

// SetDice rebuilds the pool and clears any forced selection.
func (p *DraftPool) SetDice(dice []Die) {
	p.dice = make([]Die, len(dice))
	copy(p.dice, dice)
	p.forced = NoIndex
}

// Dice returns a copy of the pool contents.
func (p *DraftPool) Dice() []Die {
	out := make([]Die, len(p.dice))
	copy(out, p.dice)
	return out
}

func (p *DraftPool) Len() int {
	return len(p.dice)
}

// ForcedSelection returns the die the player must place next, if any.
func (p *DraftPool) ForcedSelection() Index {
	return p.forced
}

// SetForcedSelection marks a die that must be placed next.
func (p *DraftPool) SetForcedSelection(i Index) error {
	if v, ok := i.Get(); ok {
		if err := p.checkIndex(v); err != nil {
			return err
		}
	}
	p.forced = i
	return nil
}

func (p *DraftPool) ResetForcedSelection() {
	p.forced = NoIndex
}

// Insert puts d at position i, shifting later dice right.
func (p *DraftPool) Insert(i int, d Die) error {
	if i < 0 || i > len(p.dice) {
		return fmt.Errorf("%w: draft pool insert at %d (size %d)", ErrBadIndex, i, len(p.dice))
	}
	p.dice = append(p.dice[:i:i], append([]Die{d}, p.dice[i:]...)...)
	if f, ok := p.forced.Get(); ok && f >= i {
		p.forced = At(f + 1)
	}
	return nil
}
