package engine_test

import (
	"errors"
	"testing"

	"sagrada/internal/engine"
)

func openPattern(t *testing.T) engine.Pattern {
	t.Helper()
	p, err := engine.ParsePattern("Open", 3, ".....", ".....", ".....", ".....")
	if err != nil {
		t.Fatalf("parse pattern: %v", err)
	}
	return p
}

func at(r, c int) engine.Coordinates {
	return engine.Coordinates{Row: r, Col: c}
}

func place(t *testing.T, p engine.Pattern, d engine.Die, c engine.Coordinates) engine.Pattern {
	t.Helper()
	next, err := p.PlaceDie(d, c, engine.RestrictionDefault)
	if err != nil {
		t.Fatalf("place %s at %s: %v", d, c, err)
	}
	return next
}

func TestFirstDieMustBeOnEdge(t *testing.T) {
	d := engine.MustDie(engine.ColourRed, 3)
	for r := 0; r < engine.PatternRows; r++ {
		for c := 0; c < engine.PatternCols; c++ {
			_, err := openPattern(t).PlaceDie(d, at(r, c), engine.RestrictionDefault)
			edge := r == 0 || r == engine.PatternRows-1 || c == 0 || c == engine.PatternCols-1
			if edge && err != nil {
				t.Errorf("edge %s: unexpected error %v", at(r, c), err)
			}
			if !edge && !engine.IsPlacementKind(err, engine.PlacementFirstDiePosition) {
				t.Errorf("interior %s: got %v, want first die error", at(r, c), err)
			}
		}
	}
}

func TestAdjacencyRule(t *testing.T) {
	p := place(t, openPattern(t), engine.MustDie(engine.ColourRed, 3), at(0, 0))

	_, err := p.PlaceDie(engine.MustDie(engine.ColourBlue, 5), at(3, 4), engine.RestrictionDefault)
	if !engine.IsPlacementKind(err, engine.PlacementNotAdjacent) {
		t.Fatalf("(3,4): got %v, want not adjacent", err)
	}
	if _, err := p.PlaceDie(engine.MustDie(engine.ColourBlue, 5), at(0, 1), engine.RestrictionDefault); err != nil {
		t.Errorf("(0,1): %v", err)
	}
	if _, err := p.PlaceDie(engine.MustDie(engine.ColourBlue, 5), at(1, 1), engine.RestrictionDefault); err != nil {
		t.Errorf("(1,1): %v", err)
	}
}

func TestOrthogonalConflictMatrix(t *testing.T) {
	p := place(t, openPattern(t), engine.MustDie(engine.ColourRed, 3), at(0, 0))

	tests := []struct {
		name        string
		die         engine.Die
		restriction engine.Restriction
		ok          bool
	}{
		{"same colour default", engine.MustDie(engine.ColourRed, 4), engine.RestrictionDefault, false},
		{"same colour only colour", engine.MustDie(engine.ColourRed, 4), engine.RestrictionOnlyColour, false},
		{"same colour only value", engine.MustDie(engine.ColourRed, 4), engine.RestrictionOnlyValue, true},
		{"same value default", engine.MustDie(engine.ColourBlue, 3), engine.RestrictionDefault, false},
		{"same value only colour", engine.MustDie(engine.ColourBlue, 3), engine.RestrictionOnlyColour, true},
		{"same value only value", engine.MustDie(engine.ColourBlue, 3), engine.RestrictionOnlyValue, false},
		{"different default", engine.MustDie(engine.ColourBlue, 4), engine.RestrictionDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.PlaceDie(tt.die, at(0, 1), tt.restriction)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !engine.IsPlacementKind(err, engine.PlacementOrthogonalConflict) {
				t.Fatalf("got %v, want orthogonal conflict", err)
			}
		})
	}

	// Diagonal neighbours may share colour and value.
	if _, err := p.PlaceDie(engine.MustDie(engine.ColourRed, 3), at(1, 1), engine.RestrictionDefault); err != nil {
		t.Errorf("diagonal placement: %v", err)
	}
}

func TestCellRestriction(t *testing.T) {
	p, err := engine.ParsePattern("Restricted", 4, "5R...", ".....", ".....", ".....")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	_, err = p.PlaceDie(engine.MustDie(engine.ColourBlue, 3), at(0, 0), engine.RestrictionDefault)
	if !engine.IsPlacementKind(err, engine.PlacementCellRestriction) {
		t.Errorf("value cell: got %v", err)
	}
	if _, err := p.PlaceDie(engine.MustDie(engine.ColourBlue, 3), at(0, 0), engine.RestrictionOnlyColour); err != nil {
		t.Errorf("value cell ignoring value: %v", err)
	}
	_, err = p.PlaceDie(engine.MustDie(engine.ColourBlue, 2), at(0, 1), engine.RestrictionDefault)
	if !engine.IsPlacementKind(err, engine.PlacementCellRestriction) {
		t.Errorf("colour cell: got %v", err)
	}
	if _, err := p.PlaceDie(engine.MustDie(engine.ColourBlue, 2), at(0, 1), engine.RestrictionOnlyValue); err != nil {
		t.Errorf("colour cell ignoring colour: %v", err)
	}
	if _, err := p.PlaceDie(engine.MustDie(engine.ColourRed, 2), at(0, 1), engine.RestrictionDefault); err != nil {
		t.Errorf("matching colour: %v", err)
	}
}

func TestNotAdjacentRestriction(t *testing.T) {
	p := place(t, openPattern(t), engine.MustDie(engine.ColourRed, 3), at(0, 0))

	_, err := p.PlaceDie(engine.MustDie(engine.ColourBlue, 5), at(1, 1), engine.RestrictionNotAdjacent)
	if !engine.IsPlacementKind(err, engine.PlacementHasNeighbour) {
		t.Fatalf("(1,1): got %v, want has neighbour", err)
	}
	next, err := p.PlaceDie(engine.MustDie(engine.ColourBlue, 5), at(3, 4), engine.RestrictionNotAdjacent)
	if err != nil {
		t.Fatalf("(3,4): %v", err)
	}
	if next.DiceCount() != 2 {
		t.Errorf("dice count = %d, want 2", next.DiceCount())
	}
}

func TestPlaceDieIsFunctional(t *testing.T) {
	p := openPattern(t)
	next := place(t, p, engine.MustDie(engine.ColourRed, 3), at(0, 0))
	if !p.IsEmpty() {
		t.Error("original pattern was modified")
	}
	if next.DiceCount() != 1 {
		t.Errorf("new pattern dice = %d, want 1", next.DiceCount())
	}
}

func TestPlaceDieFailureLeavesPatternUnchanged(t *testing.T) {
	p := place(t, openPattern(t), engine.MustDie(engine.ColourRed, 3), at(0, 0))
	before := p.Dice()

	got, err := p.PlaceDie(engine.MustDie(engine.ColourRed, 5), at(0, 1), engine.RestrictionDefault)
	if err == nil {
		t.Fatal("expected error")
	}
	after := got.Dice()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("pattern changed: %v -> %v", before, after)
	}
}

func TestPlaceDieOccupiedAndBadIndex(t *testing.T) {
	p := place(t, openPattern(t), engine.MustDie(engine.ColourRed, 3), at(0, 0))

	_, err := p.PlaceDie(engine.MustDie(engine.ColourBlue, 5), at(0, 0), engine.RestrictionDefault)
	if !engine.IsPlacementKind(err, engine.PlacementCellOccupied) {
		t.Errorf("occupied: got %v", err)
	}
	_, err = p.PlaceDie(engine.MustDie(engine.ColourBlue, 5), at(4, 0), engine.RestrictionDefault)
	if !errors.Is(err, engine.ErrBadIndex) {
		t.Errorf("out of bounds: got %v", err)
	}
	var pe *engine.PlacementError
	if errors.As(err, &pe) {
		t.Errorf("bad index must not be a placement error")
	}
}

func TestRemoveDie(t *testing.T) {
	p := place(t, openPattern(t), engine.MustDie(engine.ColourRed, 3), at(0, 0))

	next, d, err := p.RemoveDie(at(0, 0))
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if d == nil || *d != engine.MustDie(engine.ColourRed, 3) {
		t.Fatalf("removed %v", d)
	}
	if !next.IsEmpty() || p.IsEmpty() {
		t.Error("remove must return a new pattern and keep the original")
	}
	if _, d, _ := next.RemoveDie(at(1, 1)); d != nil {
		t.Errorf("empty cell returned %v", d)
	}
}

func TestMoveDiceRollsBackOnFailure(t *testing.T) {
	p := openPattern(t)
	p = place(t, p, engine.MustDie(engine.ColourRed, 1), at(0, 0))
	p = place(t, p, engine.MustDie(engine.ColourBlue, 2), at(0, 1))
	p = place(t, p, engine.MustDie(engine.ColourGreen, 3), at(0, 2))

	// First move is legal, second lands on the cell the first one filled.
	_, err := p.MoveDice(
		[]engine.Coordinates{at(0, 0), at(0, 2)},
		[]engine.Coordinates{at(1, 0), at(1, 0)},
		engine.RestrictionDefault,
	)
	if !engine.IsPlacementKind(err, engine.PlacementCellOccupied) {
		t.Fatalf("got %v, want cell occupied", err)
	}
	if d, ok := p.DieAt(at(0, 0)); !ok || d.Colour != engine.ColourRed {
		t.Errorf("red die moved: %v %v", d, ok)
	}

	moved, err := p.MoveDie(at(0, 0), at(1, 0), engine.RestrictionDefault)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, ok := moved.DieAt(at(0, 0)); ok {
		t.Error("source still occupied")
	}
	if d, ok := moved.DieAt(at(1, 0)); !ok || d.Colour != engine.ColourRed {
		t.Errorf("destination = %v %v", d, ok)
	}
}

func TestMoveDiceRejectsSameDieTwice(t *testing.T) {
	p := openPattern(t)
	p = place(t, p, engine.MustDie(engine.ColourRed, 1), at(0, 0))
	p = place(t, p, engine.MustDie(engine.ColourBlue, 2), at(0, 1))

	tests := []struct {
		name     string
		from, to []engine.Coordinates
	}{
		{"chained", []engine.Coordinates{at(0, 0), at(1, 0)}, []engine.Coordinates{at(1, 0), at(1, 1)}},
		{"repeated source", []engine.Coordinates{at(0, 0), at(0, 0)}, []engine.Coordinates{at(1, 0), at(1, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.MoveDice(tt.from, tt.to, engine.RestrictionDefault)
			if !errors.Is(err, engine.ErrInvalidAction) {
				t.Fatalf("got %v, want ErrInvalidAction", err)
			}
			if d, ok := got.DieAt(at(0, 0)); !ok || d.Colour != engine.ColourRed {
				t.Errorf("red die moved: %v %v", d, ok)
			}
		})
	}
}

func TestMoveDiceSizeMismatch(t *testing.T) {
	p := place(t, openPattern(t), engine.MustDie(engine.ColourRed, 1), at(0, 0))
	_, err := p.MoveDice([]engine.Coordinates{at(0, 0)}, nil, engine.RestrictionDefault)
	if !errors.Is(err, engine.ErrInvalidAction) {
		t.Errorf("got %v", err)
	}
}

func TestNewPatternValidation(t *testing.T) {
	if _, err := engine.ParsePattern("Easy", 2, ".....", ".....", ".....", "....."); err == nil {
		t.Error("difficulty 2 accepted")
	}
	if _, err := engine.ParsePattern("Short", 3, ".....", ".....", "....."); err == nil {
		t.Error("three rows accepted")
	}
	if _, err := engine.ParsePattern("Bad", 3, "....X", ".....", ".....", "....."); err == nil {
		t.Error("unknown cell accepted")
	}
}

func TestBasePatterns(t *testing.T) {
	patterns := engine.BasePatterns()
	if len(patterns) < 2*engine.MaxPlayers {
		t.Fatalf("got %d patterns, need at least %d", len(patterns), 2*engine.MaxPlayers)
	}
	seen := map[string]bool{}
	for _, p := range patterns {
		if seen[p.Name] {
			t.Errorf("duplicate pattern %q", p.Name)
		}
		seen[p.Name] = true
		if !p.IsEmpty() {
			t.Errorf("pattern %q starts with dice", p.Name)
		}
	}
}
