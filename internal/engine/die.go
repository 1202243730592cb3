package engine

import (
	"fmt"
	"math/rand/v2"
)

// Colour is one of the five dice colours. ColourNone marks an unrestricted cell.
type Colour int

const (
	ColourNone   Colour = 0
	ColourRed    Colour = 1
	ColourYellow Colour = 2
	ColourGreen  Colour = 3
	ColourBlue   Colour = 4
	ColourPurple Colour = 5
)

var colourNames = map[Colour]string{
	ColourNone:   "None",
	ColourRed:    "Red",
	ColourYellow: "Yellow",
	ColourGreen:  "Green",
	ColourBlue:   "Blue",
	ColourPurple: "Purple",
}

func (c Colour) String() string {
	if s, ok := colourNames[c]; ok {
		return s
	}
	return "Unknown"
}

// AllColours returns the five dice colours in order.
func AllColours() []Colour {
	return []Colour{ColourRed, ColourYellow, ColourGreen, ColourBlue, ColourPurple}
}

const (
	MinDieValue = 1
	MaxDieValue = 6
)

// Die is an immutable coloured die. Transformations return a new Die.
type Die struct {
	Colour Colour `json:"colour"`
	Value  int    `json:"value"`
}

// NewDie validates colour and value.
func NewDie(colour Colour, value int) (Die, error) {
	if colour < ColourRed || colour > ColourPurple {
		return Die{}, fmt.Errorf("%w: colour %d", ErrInvalidDie, colour)
	}
	if value < MinDieValue || value > MaxDieValue {
		return Die{}, fmt.Errorf("%w: value %d", ErrInvalidDie, value)
	}
	return Die{Colour: colour, Value: value}, nil
}

// MustDie is like NewDie but panics on error. Intended for fixtures.
func MustDie(colour Colour, value int) Die {
	d, err := NewDie(colour, value)
	if err != nil {
		panic(err)
	}
	return d
}

// Roll returns a die of the same colour with a random face.
// A nil rng uses the global source.
func (d Die) Roll(rng *rand.Rand) Die {
	if rng == nil {
		return Die{Colour: d.Colour, Value: rand.IntN(MaxDieValue) + 1}
	}
	return Die{Colour: d.Colour, Value: rng.IntN(MaxDieValue) + 1}
}

// Flip turns the die to its opposite face.
func (d Die) Flip() Die {
	return Die{Colour: d.Colour, Value: 7 - d.Value}
}

// Increase returns the die with its value raised by one.
func (d Die) Increase() (Die, error) {
	if d.Value >= MaxDieValue {
		return d, ErrValueOutOfRange
	}
	return Die{Colour: d.Colour, Value: d.Value + 1}, nil
}

// Decrease returns the die with its value lowered by one.
func (d Die) Decrease() (Die, error) {
	if d.Value <= MinDieValue {
		return d, ErrValueOutOfRange
	}
	return Die{Colour: d.Colour, Value: d.Value - 1}, nil
}

// WithValue returns the die showing value.
func (d Die) WithValue(value int) (Die, error) {
	if value < MinDieValue || value > MaxDieValue {
		return d, ErrValueOutOfRange
	}
	return Die{Colour: d.Colour, Value: value}, nil
}

func (d Die) String() string {
	return fmt.Sprintf("%s %d", d.Colour, d.Value)
}
