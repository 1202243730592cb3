package engine

import (
	"encoding/json"
	"fmt"
)

const (
	PatternRows = 4
	PatternCols = 5

	MinDifficulty = 3
	MaxDifficulty = 6
)

// Pattern is a player's 4x5 window. It is a value: every operation that
// changes it returns the new pattern and leaves the receiver untouched.
type Pattern struct {
	Name       string
	Difficulty int
	cells      [PatternRows][PatternCols]Cell
}

// NewPattern builds a pattern from a 4x5 grid of cells.
func NewPattern(name string, difficulty int, grid [][]Cell) (Pattern, error) {
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return Pattern{}, fmt.Errorf("pattern %q: difficulty %d out of range", name, difficulty)
	}
	if len(grid) != PatternRows {
		return Pattern{}, fmt.Errorf("pattern %q: want %d rows, got %d", name, PatternRows, len(grid))
	}
	p := Pattern{Name: name, Difficulty: difficulty}
	for r, row := range grid {
		if len(row) != PatternCols {
			return Pattern{}, fmt.Errorf("pattern %q: row %d has %d cells", name, r, len(row))
		}
		for c, cell := range row {
			if cell.ValueRestriction < 0 || cell.ValueRestriction > MaxDieValue {
				return Pattern{}, fmt.Errorf("pattern %q: bad value restriction at (%d,%d)", name, r, c)
			}
			p.cells[r][c] = cell
		}
	}
	return p, nil
}

// InBounds reports whether at addresses a cell of the grid.
func InBounds(at Coordinates) bool {
	return at.Row >= 0 && at.Row < PatternRows && at.Col >= 0 && at.Col < PatternCols
}

func badIndex(at Coordinates) error {
	return fmt.Errorf("%w: coordinates %s outside %dx%d grid", ErrBadIndex, at, PatternRows, PatternCols)
}

// Cell returns the cell at the given coordinates.
func (p Pattern) Cell(at Coordinates) (Cell, error) {
	if !InBounds(at) {
		return Cell{}, badIndex(at)
	}
	return p.cells[at.Row][at.Col], nil
}

// DieAt returns the die at the given coordinates, if any.
func (p Pattern) DieAt(at Coordinates) (Die, bool) {
	if !InBounds(at) || p.cells[at.Row][at.Col].Die == nil {
		return Die{}, false
	}
	return *p.cells[at.Row][at.Col].Die, true
}

// IsEmpty reports whether no die has been placed.
func (p Pattern) IsEmpty() bool {
	return p.DiceCount() == 0
}

func (p Pattern) DiceCount() int {
	n := 0
	for r := range p.cells {
		for c := range p.cells[r] {
			if p.cells[r][c].Die != nil {
				n++
			}
		}
	}
	return n
}

// EmptyCells counts cells without a die.
func (p Pattern) EmptyCells() int {
	return PatternRows*PatternCols - p.DiceCount()
}

// Row returns a copy of row r.
func (p Pattern) Row(r int) []Cell {
	out := make([]Cell, PatternCols)
	copy(out, p.cells[r][:])
	return out
}

// Column returns a copy of column c.
func (p Pattern) Column(c int) []Cell {
	out := make([]Cell, PatternRows)
	for r := 0; r < PatternRows; r++ {
		out[r] = p.cells[r][c]
	}
	return out
}

// PlacedDie pairs a die with its position.
type PlacedDie struct {
	Die Die         `json:"die"`
	At  Coordinates `json:"at"`
}

// Dice lists placed dice in row-major order.
func (p Pattern) Dice() []PlacedDie {
	var out []PlacedDie
	for r := range p.cells {
		for c := range p.cells[r] {
			if d := p.cells[r][c].Die; d != nil {
				out = append(out, PlacedDie{Die: *d, At: Coordinates{Row: r, Col: c}})
			}
		}
	}
	return out
}

func isEdge(at Coordinates) bool {
	return at.Row == 0 || at.Row == PatternRows-1 || at.Col == 0 || at.Col == PatternCols-1
}

// neighbours returns in-bounds coordinates around at; diagonal includes the four corners.
func neighbours(at Coordinates, diagonal bool) []Coordinates {
	var out []Coordinates
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if !diagonal && dr != 0 && dc != 0 {
				continue
			}
			n := Coordinates{Row: at.Row + dr, Col: at.Col + dc}
			if InBounds(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

func (p Pattern) hasNeighbour(at Coordinates) bool {
	for _, n := range neighbours(at, true) {
		if p.cells[n.Row][n.Col].Die != nil {
			return true
		}
	}
	return false
}

// CanPlace runs the placement rules without changing the pattern.
func (p Pattern) CanPlace(d Die, at Coordinates, restriction Restriction) error {
	if !InBounds(at) {
		return badIndex(at)
	}
	cell := p.cells[at.Row][at.Col]
	if cell.Die != nil {
		return &PlacementError{Kind: PlacementCellOccupied, At: at}
	}

	if p.IsEmpty() && !isEdge(at) {
		return &PlacementError{Kind: PlacementFirstDiePosition, At: at}
	}

	if restriction == RestrictionNotAdjacent {
		if p.hasNeighbour(at) {
			return &PlacementError{Kind: PlacementHasNeighbour, At: at}
		}
	} else if !p.IsEmpty() && !p.hasNeighbour(at) {
		return &PlacementError{Kind: PlacementNotAdjacent, At: at}
	}

	for _, n := range neighbours(at, false) {
		other := p.cells[n.Row][n.Col].Die
		if other == nil {
			continue
		}
		if restriction.checksColour() && other.Colour == d.Colour {
			return &PlacementError{Kind: PlacementOrthogonalConflict, At: at}
		}
		if restriction.checksValue() && other.Value == d.Value {
			return &PlacementError{Kind: PlacementOrthogonalConflict, At: at}
		}
	}

	if !cell.Accepts(d, restriction) {
		return &PlacementError{Kind: PlacementCellRestriction, At: at}
	}
	return nil
}

// PlaceDie returns a copy of the pattern with d placed at the coordinates.
func (p Pattern) PlaceDie(d Die, at Coordinates, restriction Restriction) (Pattern, error) {
	if err := p.CanPlace(d, at, restriction); err != nil {
		return p, err
	}
	placed := d
	p.cells[at.Row][at.Col].Die = &placed
	return p, nil
}

// RemoveDie returns a copy of the pattern with the cell cleared, together
// with the die it held (nil for an empty cell).
func (p Pattern) RemoveDie(at Coordinates) (Pattern, *Die, error) {
	if !InBounds(at) {
		return p, nil, badIndex(at)
	}
	d := p.cells[at.Row][at.Col].Die
	p.cells[at.Row][at.Col].Die = nil
	return p, d, nil
}

// MoveDie moves one die between cells.
func (p Pattern) MoveDie(from, to Coordinates, restriction Restriction) (Pattern, error) {
	return p.MoveDice([]Coordinates{from}, []Coordinates{to}, restriction)
}

// MoveDice moves dice pairwise from sources to destinations. Each die moves
// at most once. Either every move succeeds or the original pattern is
// returned with the error.
func (p Pattern) MoveDice(from, to []Coordinates, restriction Restriction) (Pattern, error) {
	if len(from) != len(to) {
		return p, fmt.Errorf("%w: %d sources for %d destinations", ErrInvalidAction, len(from), len(to))
	}
	if len(from) == 0 {
		return p, fmt.Errorf("%w: nothing to move", ErrInvalidAction)
	}
	for i := range from {
		for j := 0; j < i; j++ {
			if from[i] == from[j] || from[i] == to[j] {
				return p, fmt.Errorf("%w: die at %s moved twice", ErrInvalidAction, from[i])
			}
		}
	}
	next := p
	for i := range from {
		removed, d, err := next.RemoveDie(from[i])
		if err != nil {
			return p, err
		}
		if d == nil {
			return p, fmt.Errorf("%w: no die at %s", ErrInvalidAction, from[i])
		}
		placed, err := removed.PlaceDie(*d, to[i], restriction)
		if err != nil {
			return p, err
		}
		next = placed
	}
	return next, nil
}

type patternJSON struct {
	Name       string                           `json:"name"`
	Difficulty int                              `json:"difficulty"`
	Cells      [PatternRows][PatternCols]Cell `json:"cells"`
}

func (p Pattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(patternJSON{Name: p.Name, Difficulty: p.Difficulty, Cells: p.cells})
}

func (p *Pattern) UnmarshalJSON(data []byte) error {
	var pj patternJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	p.Name = pj.Name
	p.Difficulty = pj.Difficulty
	p.cells = pj.Cells
	return nil
}
