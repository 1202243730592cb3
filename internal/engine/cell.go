package engine

import "fmt"

// Coordinates address a cell in a pattern.
type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Cell is one slot of a pattern. A zero restriction leaves that axis open.
type Cell struct {
	ValueRestriction  int    `json:"value_restriction,omitempty"`
	ColourRestriction Colour `json:"colour_restriction,omitempty"`
	Die               *Die   `json:"die,omitempty"`
}

// ValueCell returns an empty cell restricted to value.
func ValueCell(value int) Cell {
	return Cell{ValueRestriction: value}
}

// ColourCell returns an empty cell restricted to colour.
func ColourCell(colour Colour) Cell {
	return Cell{ColourRestriction: colour}
}

func (c Cell) HasDie() bool {
	return c.Die != nil
}

// Accepts reports whether d satisfies the cell's own restrictions on the
// axes checked by restriction.
func (c Cell) Accepts(d Die, restriction Restriction) bool {
	if restriction.checksColour() && c.ColourRestriction != ColourNone && c.ColourRestriction != d.Colour {
		return false
	}
	if restriction.checksValue() && c.ValueRestriction != 0 && c.ValueRestriction != d.Value {
		return false
	}
	return true
}

// Restriction selects which placement rules a move must respect.
type Restriction int

const (
	// RestrictionDefault enforces every rule.
	RestrictionDefault Restriction = iota
	// RestrictionOnlyColour ignores value: neighbours and cell restrictions
	// are checked on colour only.
	RestrictionOnlyColour
	// RestrictionOnlyValue ignores colour.
	RestrictionOnlyValue
	// RestrictionNotAdjacent requires the destination to have no neighbours.
	RestrictionNotAdjacent
)

var restrictionNames = map[Restriction]string{
	RestrictionDefault:     "Default",
	RestrictionOnlyColour:  "OnlyColour",
	RestrictionOnlyValue:   "OnlyValue",
	RestrictionNotAdjacent: "NotAdjacent",
}

func (r Restriction) String() string {
	if s, ok := restrictionNames[r]; ok {
		return s
	}
	return "Unknown"
}

func (r Restriction) checksColour() bool { return r != RestrictionOnlyValue }
func (r Restriction) checksValue() bool  { return r != RestrictionOnlyColour }
