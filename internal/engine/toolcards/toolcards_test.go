package toolcards_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"sagrada/internal/engine"
	"sagrada/internal/engine/toolcards"
)

func at(r, c int) engine.Coordinates {
	return engine.Coordinates{Row: r, Col: c}
}

func window(t *testing.T, rows ...string) engine.Pattern {
	t.Helper()
	if len(rows) == 0 {
		rows = []string{".....", ".....", ".....", "....."}
	}
	p, err := engine.ParsePattern("Test", 4, rows...)
	if err != nil {
		t.Fatalf("parse pattern: %v", err)
	}
	return p
}

func place(t *testing.T, p engine.Pattern, d engine.Die, c engine.Coordinates) engine.Pattern {
	t.Helper()
	next, err := p.PlaceDie(d, c, engine.RestrictionDefault)
	if err != nil {
		t.Fatalf("place %s at %s: %v", d, c, err)
	}
	return next
}

// newGame returns a two player game on A's first turn with the given pool
// and tool cards in play. Both players start with empty windows.
func newGame(t *testing.T, pool []engine.Die, cards ...engine.ToolCardID) *engine.Game {
	t.Helper()
	players := []*engine.Player{engine.NewPlayer("A", "Alice"), engine.NewPlayer("B", "Bob")}
	cfg := engine.DefaultConfig()
	cfg.Rand = rand.New(rand.NewPCG(7, 11))
	g, err := engine.NewGame(players, cfg, toolcards.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.StartGame(); err != nil {
		t.Fatal(err)
	}
	for _, p := range players {
		if _, err := g.Apply(p.ID, engine.Action{Type: engine.ActionChoosePattern}); err != nil {
			t.Fatal(err)
		}
		p.Pattern = window(t)
		p.Tokens = 4
	}
	g.Pool.SetDice(pool)
	g.ToolCards = nil
	for _, id := range cards {
		g.ToolCards = append(g.ToolCards, engine.NewToolCard(id))
	}
	return g
}

func pool() []engine.Die {
	return []engine.Die{
		engine.MustDie(engine.ColourRed, 3),
		engine.MustDie(engine.ColourBlue, 6),
		engine.MustDie(engine.ColourGreen, 1),
		engine.MustDie(engine.ColourPurple, 2),
		engine.MustDie(engine.ColourYellow, 5),
	}
}

// useWith activates the only card in play and feeds it one input.
func useWith(g *engine.Game, player string, in engine.ToolCardInput) error {
	if _, err := g.Apply(player, engine.Action{Type: engine.ActionUseToolCard}); err != nil {
		return err
	}
	_, err := g.Apply(player, engine.Action{Type: engine.ActionToolCardInput, Input: in})
	return err
}

func moves(pairs ...engine.Coordinates) engine.ToolCardInput {
	var in engine.ToolCardInput
	for i := 0; i+1 < len(pairs); i += 2 {
		in.From = append(in.From, pairs[i])
		in.To = append(in.To, pairs[i+1])
	}
	return in
}

func requirementsNotMet(t *testing.T, g *engine.Game, player string) {
	t.Helper()
	if _, err := g.Apply(player, engine.Action{Type: engine.ActionUseToolCard}); !errors.Is(err, engine.ErrRequirementsNotMet) {
		t.Fatalf("expected ErrRequirementsNotMet, got %v", err)
	}
}

func TestRegistryHoldsEveryCard(t *testing.T) {
	r := toolcards.NewRegistry()
	ids := r.IDs()
	if len(ids) != 12 {
		t.Fatalf("registered %d cards", len(ids))
	}
	for _, id := range engine.AllToolCards() {
		b, err := r.Get(id)
		if err != nil {
			t.Errorf("%s: %v", id, err)
			continue
		}
		if b.ID() != id {
			t.Errorf("%s registered under %s", b.ID(), id)
		}
	}
}

func TestGrozingPliers(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		increase bool
		want     int
		err      error
	}{
		{"increase 3", 0, true, 4, nil},
		{"decrease 3", 0, false, 2, nil},
		{"6 does not wrap", 1, true, 0, engine.ErrValueOutOfRange},
		{"1 does not wrap", 2, false, 0, engine.ErrValueOutOfRange},
		{"missing die", 9, true, 0, engine.ErrBadIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, pool(), engine.ToolGrozingPliers)
			err := useWith(g, "A", engine.ToolCardInput{DieIndex: tt.index, Increase: tt.increase})
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("got %v, want %v", err, tt.err)
				}
				if g.CurrentTurn().Pending == nil {
					t.Error("failed input closed the card")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			d, _ := g.Pool.Select(tt.index)
			if d.Value != tt.want {
				t.Errorf("value = %d, want %d", d.Value, tt.want)
			}
			if !g.CurrentTurn().ForcedSelection.Is(tt.index) {
				t.Error("adjusted die is not forced")
			}
		})
	}
}

func TestGrindingStoneFlipsDie(t *testing.T) {
	for i, want := range []int{4, 1, 6, 5, 2} {
		g := newGame(t, pool(), engine.ToolGrindingStone)
		if err := useWith(g, "A", engine.ToolCardInput{DieIndex: i}); err != nil {
			t.Fatal(err)
		}
		if d, _ := g.Pool.Select(i); d.Value != want {
			t.Errorf("die %d flipped to %d, want %d", i, d.Value, want)
		}
	}
}

func TestFluxBrushRerollsDie(t *testing.T) {
	g := newGame(t, pool(), engine.ToolFluxBrush)
	if err := useWith(g, "A", engine.ToolCardInput{DieIndex: 3}); err != nil {
		t.Fatal(err)
	}
	d, _ := g.Pool.Select(3)
	if d.Colour != engine.ColourPurple || d.Value < 1 || d.Value > 6 {
		t.Errorf("rerolled die = %s", d)
	}
	if !g.CurrentTurn().ForcedSelection.Is(3) {
		t.Error("rerolled die is not forced")
	}
}

func TestEglomiseBrushIgnoresColour(t *testing.T) {
	g := newGame(t, pool(), engine.ToolEglomiseBrush)
	a := g.GetPlayer("A")
	a.Pattern = place(t, window(t, "R....", ".....", ".....", "....."), engine.MustDie(engine.ColourBlue, 3), at(0, 1))

	if err := useWith(g, "A", moves(at(0, 1), at(0, 0))); err != nil {
		t.Fatal(err)
	}
	if d, ok := a.Pattern.DieAt(at(0, 0)); !ok || d.Colour != engine.ColourBlue {
		t.Errorf("die at (0,0) = %v, %v", d, ok)
	}
	turn := g.CurrentTurn()
	if turn.Player != "A" || !turn.AlreadyUsedToolCard || turn.AlreadyPlacedDie {
		t.Errorf("turn after move: %+v", turn)
	}
}

func TestEglomiseBrushKeepsValueRestriction(t *testing.T) {
	g := newGame(t, pool(), engine.ToolEglomiseBrush)
	a := g.GetPlayer("A")
	a.Pattern = place(t, window(t, "4....", ".....", ".....", "....."), engine.MustDie(engine.ColourBlue, 3), at(0, 1))

	err := useWith(g, "A", moves(at(0, 1), at(0, 0)))
	if !engine.IsPlacementKind(err, engine.PlacementCellRestriction) {
		t.Fatalf("got %v", err)
	}
	if _, ok := a.Pattern.DieAt(at(0, 1)); !ok {
		t.Error("failed move changed the window")
	}
}

func TestCopperFoilBurnisherIgnoresValue(t *testing.T) {
	g := newGame(t, pool(), engine.ToolCopperFoilBurnisher)
	a := g.GetPlayer("A")
	a.Pattern = place(t, window(t, "4....", ".....", ".....", "....."), engine.MustDie(engine.ColourBlue, 3), at(0, 1))
	if err := useWith(g, "A", moves(at(0, 1), at(0, 0))); err != nil {
		t.Fatal(err)
	}

	g = newGame(t, pool(), engine.ToolCopperFoilBurnisher)
	a = g.GetPlayer("A")
	a.Pattern = place(t, window(t, "R....", ".....", ".....", "....."), engine.MustDie(engine.ColourBlue, 3), at(0, 1))
	if err := useWith(g, "A", moves(at(0, 1), at(0, 0))); !engine.IsPlacementKind(err, engine.PlacementCellRestriction) {
		t.Errorf("colour restriction ignored: %v", err)
	}
}

func TestLathekinMovesTwoDice(t *testing.T) {
	g := newGame(t, pool(), engine.ToolLathekin)
	a := g.GetPlayer("A")
	requirementsNotMet(t, g, "A")

	p := place(t, window(t), engine.MustDie(engine.ColourRed, 1), at(0, 0))
	a.Pattern = place(t, p, engine.MustDie(engine.ColourBlue, 2), at(0, 1))

	if _, err := g.Apply("A", engine.Action{Type: engine.ActionUseToolCard}); err != nil {
		t.Fatal(err)
	}
	_, err := g.Apply("A", engine.Action{Type: engine.ActionToolCardInput, Input: moves(at(0, 0), at(1, 1))})
	if !errors.Is(err, engine.ErrInvalidAction) {
		t.Fatalf("single move: %v", err)
	}
	_, err = g.Apply("A", engine.Action{Type: engine.ActionToolCardInput, Input: moves(at(0, 0), at(1, 1), at(0, 1), at(1, 0))})
	if err != nil {
		t.Fatal(err)
	}
	if d, ok := a.Pattern.DieAt(at(1, 1)); !ok || d.Colour != engine.ColourRed {
		t.Errorf("(1,1) = %v, %v", d, ok)
	}
	if d, ok := a.Pattern.DieAt(at(1, 0)); !ok || d.Colour != engine.ColourBlue {
		t.Errorf("(1,0) = %v, %v", d, ok)
	}
	if a.Pattern.DiceCount() != 2 {
		t.Errorf("window holds %d dice", a.Pattern.DiceCount())
	}
}

func TestLathekinRejectsOneDieMovedTwice(t *testing.T) {
	g := newGame(t, pool(), engine.ToolLathekin)
	a := g.GetPlayer("A")
	p := place(t, window(t), engine.MustDie(engine.ColourRed, 1), at(0, 0))
	a.Pattern = place(t, p, engine.MustDie(engine.ColourBlue, 2), at(0, 1))

	err := useWith(g, "A", moves(at(0, 0), at(1, 0), at(1, 0), at(1, 1)))
	if !errors.Is(err, engine.ErrInvalidAction) {
		t.Fatalf("got %v, want ErrInvalidAction", err)
	}
	if d, ok := a.Pattern.DieAt(at(0, 0)); !ok || d.Colour != engine.ColourRed {
		t.Errorf("(0,0) = %v, %v", d, ok)
	}
	if turn := g.CurrentTurn(); turn.Pending == nil {
		t.Error("card no longer pending after rejected input")
	}
}

func TestLensCutterSwapsWithRoundTrack(t *testing.T) {
	g := newGame(t, pool(), engine.ToolLensCutter)
	requirementsNotMet(t, g, "A")

	tracked := engine.MustDie(engine.ColourGreen, 5)
	if err := g.Track.AddAllForRound(1, []engine.Die{tracked}); err != nil {
		t.Fatal(err)
	}
	if err := useWith(g, "A", engine.ToolCardInput{DieIndex: 0, Round: 1, RoundIndex: 0}); err != nil {
		t.Fatal(err)
	}
	if d, _ := g.Pool.Select(0); d != tracked {
		t.Errorf("pool[0] = %s", d)
	}
	left, _ := g.Track.Leftovers(1)
	if len(left) != 1 || left[0] != engine.MustDie(engine.ColourRed, 3) {
		t.Errorf("round 1 = %v", left)
	}
}

func TestLensCutterSwapsChosenRound(t *testing.T) {
	g := newGame(t, pool(), engine.ToolLensCutter)
	green := engine.MustDie(engine.ColourGreen, 5)
	_ = g.Track.AddAllForRound(1, []engine.Die{green})
	_ = g.Track.AddAllForRound(3, []engine.Die{green})

	if err := useWith(g, "A", engine.ToolCardInput{DieIndex: 0, Round: 3, RoundIndex: 0}); err != nil {
		t.Fatal(err)
	}
	r1, _ := g.Track.Leftovers(1)
	r3, _ := g.Track.Leftovers(3)
	if len(r1) != 1 || r1[0] != green {
		t.Errorf("round 1 = %v", r1)
	}
	if len(r3) != 1 || r3[0] != engine.MustDie(engine.ColourRed, 3) {
		t.Errorf("round 3 = %v", r3)
	}
	if d, _ := g.Pool.Select(0); d != green {
		t.Errorf("pool[0] = %s", d)
	}
}

func TestLensCutterRejectsMissingTrackDie(t *testing.T) {
	g := newGame(t, pool(), engine.ToolLensCutter)
	_ = g.Track.AddAllForRound(1, []engine.Die{engine.MustDie(engine.ColourGreen, 5)})
	if err := useWith(g, "A", engine.ToolCardInput{DieIndex: 0, Round: 2}); !errors.Is(err, engine.ErrBadIndex) {
		t.Errorf("got %v", err)
	}
	if d, _ := g.Pool.Select(0); d != engine.MustDie(engine.ColourRed, 3) {
		t.Error("failed swap changed the pool")
	}
}

func TestGlazingHammerOnlyInSecondPass(t *testing.T) {
	g := newGame(t, pool(), engine.ToolGlazingHammer)
	requirementsNotMet(t, g, "A")

	for _, p := range []string{"A", "B"} {
		if _, err := g.Apply(p, engine.Action{Type: engine.ActionEndTurn}); err != nil {
			t.Fatal(err)
		}
	}
	if turn := g.CurrentTurn(); turn.Player != "B" || turn.SecondTurnAvailable {
		t.Fatalf("expected B's second pass turn, got %+v", turn)
	}
	before := g.Pool.Dice()
	if err := useWith(g, "B", engine.ToolCardInput{}); err != nil {
		t.Fatal(err)
	}
	after := g.Pool.Dice()
	if len(after) != len(before) {
		t.Fatalf("pool size changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i].Colour != before[i].Colour {
			t.Errorf("die %d changed colour", i)
		}
	}
	if g.CurrentTurn().ForcedSelection.IsSet() {
		t.Error("reroll left a forced selection")
	}
}

func TestRunningPliersTakesSecondTurnNow(t *testing.T) {
	g := newGame(t, pool(), engine.ToolRunningPliers)
	requirementsNotMet(t, g, "A")

	if _, err := g.Apply("A", engine.Action{Type: engine.ActionPlaceDie, Index: 0, At: at(0, 0)}); err != nil {
		t.Fatal(err)
	}
	if err := useWith(g, "A", engine.ToolCardInput{}); err != nil {
		t.Fatal(err)
	}
	turn := g.CurrentTurn()
	if turn.Player != "A" || turn.AlreadyPlacedDie || !turn.AlreadyUsedToolCard {
		t.Fatalf("turn after running pliers: %+v", turn)
	}
	if _, err := g.Apply("A", engine.Action{Type: engine.ActionPlaceDie, Index: 0, At: at(0, 1)}); err != nil {
		t.Fatal(err)
	}
	if g.GetPlayer("A").Pattern.DiceCount() != 2 {
		t.Error("second die not placed")
	}
	if g.CurrentTurn().Player != "B" {
		t.Fatal("turn did not pass to B")
	}

	for i := 0; i < 2; i++ {
		if _, err := g.Apply("B", engine.Action{Type: engine.ActionEndTurn}); err != nil {
			t.Fatal(err)
		}
	}
	if g.Turns.Round() != 2 || g.CurrentTurn().Player != "B" {
		t.Errorf("A's skipped turn was played: round %d, player %s", g.Turns.Round(), g.CurrentTurn().Player)
	}
}

func TestCorkBackedStraightedge(t *testing.T) {
	g := newGame(t, pool(), engine.ToolCorkBackedStraightedge)
	a := g.GetPlayer("A")
	a.Pattern = place(t, window(t), engine.MustDie(engine.ColourGreen, 4), at(0, 0))

	if _, err := g.Apply("A", engine.Action{Type: engine.ActionUseToolCard}); err != nil {
		t.Fatal(err)
	}
	_, err := g.Apply("A", engine.Action{Type: engine.ActionToolCardInput, Input: engine.ToolCardInput{DieIndex: 0, To: []engine.Coordinates{at(1, 1)}}})
	if !engine.IsPlacementKind(err, engine.PlacementHasNeighbour) {
		t.Fatalf("adjacent destination: %v", err)
	}
	_, err = g.Apply("A", engine.Action{Type: engine.ActionToolCardInput, Input: engine.ToolCardInput{DieIndex: 0, To: []engine.Coordinates{at(2, 2)}}})
	if err != nil {
		t.Fatal(err)
	}
	if d, ok := a.Pattern.DieAt(at(2, 2)); !ok || d != engine.MustDie(engine.ColourRed, 3) {
		t.Errorf("(2,2) = %v, %v", d, ok)
	}
	if g.Pool.Len() != 4 {
		t.Errorf("pool len %d", g.Pool.Len())
	}
	if g.CurrentTurn().Player != "B" {
		t.Error("placing with the card should finish the turn")
	}
}

func TestFluxRemoverRejectsBadValue(t *testing.T) {
	g := newGame(t, pool(), engine.ToolFluxRemover)
	if err := useWith(g, "A", engine.ToolCardInput{DieIndex: 1}); err != nil {
		t.Fatal(err)
	}
	_, err := g.Apply("A", engine.Action{Type: engine.ActionToolCardInput, Input: engine.ToolCardInput{Value: 7, To: []engine.Coordinates{at(0, 0)}}})
	if !errors.Is(err, engine.ErrValueOutOfRange) {
		t.Fatalf("value 7: %v", err)
	}
	turn := g.CurrentTurn()
	if turn.Pending == nil || turn.Pending.Step != engine.StepAwaitingSecondInput || !turn.ForcedSelection.Is(1) {
		t.Errorf("second step lost: %+v", turn)
	}
}

func TestTapWheel(t *testing.T) {
	g := newGame(t, pool(), engine.ToolTapWheel)
	a := g.GetPlayer("A")
	p := place(t, window(t), engine.MustDie(engine.ColourRed, 1), at(0, 0))
	a.Pattern = place(t, p, engine.MustDie(engine.ColourBlue, 2), at(0, 1))
	requirementsNotMet(t, g, "A")

	_ = g.Track.AddAllForRound(1, []engine.Die{engine.MustDie(engine.ColourRed, 6)})
	if _, err := g.Apply("A", engine.Action{Type: engine.ActionUseToolCard}); err != nil {
		t.Fatal(err)
	}
	bad := []engine.ToolCardInput{
		{},
		moves(at(0, 1), at(1, 1)),
		moves(at(0, 0), at(1, 1), at(0, 1), at(1, 0)),
		moves(at(2, 2), at(1, 1)),
	}
	for i, in := range bad {
		if _, err := g.Apply("A", engine.Action{Type: engine.ActionToolCardInput, Input: in}); !errors.Is(err, engine.ErrInvalidAction) {
			t.Errorf("bad input %d: %v", i, err)
		}
	}
	if _, err := g.Apply("A", engine.Action{Type: engine.ActionToolCardInput, Input: moves(at(0, 0), at(1, 1))}); err != nil {
		t.Fatal(err)
	}
	if d, ok := a.Pattern.DieAt(at(1, 1)); !ok || d.Colour != engine.ColourRed {
		t.Errorf("(1,1) = %v, %v", d, ok)
	}
}
