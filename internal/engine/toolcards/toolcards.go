// Package toolcards implements the tool card behaviours.
package toolcards

import (
	"fmt"

	"sagrada/internal/engine"
)

// NewRegistry returns a registry holding every tool card behaviour.
func NewRegistry() *engine.ToolCardRegistry {
	r := engine.NewToolCardRegistry()
	r.Register(GrozingPliers{})
	r.Register(EglomiseBrush{})
	r.Register(CopperFoilBurnisher{})
	r.Register(Lathekin{})
	r.Register(LensCutter{})
	r.Register(FluxBrush{})
	r.Register(GlazingHammer{})
	r.Register(RunningPliers{})
	r.Register(CorkBackedStraightedge{})
	r.Register(GrindingStone{})
	r.Register(FluxRemover{})
	r.Register(TapWheel{})
	return r
}

func failure(err error) (engine.ToolCardResponse, error) {
	return engine.ResponseFailure, err
}

func actingPlayer(g *engine.Game, turn *engine.Turn) (*engine.Player, error) {
	p := g.GetPlayer(turn.Player)
	if p == nil {
		return nil, engine.ErrPlayerNotFound
	}
	return p, nil
}

func checkMoves(in engine.ToolCardInput, min, max int) error {
	if len(in.From) != len(in.To) {
		return fmt.Errorf("%w: %d sources for %d destinations", engine.ErrInvalidAction, len(in.From), len(in.To))
	}
	if len(in.From) < min || len(in.From) > max {
		return fmt.Errorf("%w: expected %d to %d moves, got %d", engine.ErrInvalidAction, min, max, len(in.From))
	}
	return nil
}

func canDraft(g *engine.Game, turn *engine.Turn) bool {
	return !turn.AlreadyPlacedDie && g.Pool.Len() > 0
}

func placedDice(g *engine.Game, turn *engine.Turn) int {
	p := g.GetPlayer(turn.Player)
	if p == nil {
		return 0
	}
	return p.Pattern.DiceCount()
}

// moveDice is shared by the cards that rearrange the player's window.
func moveDice(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput, restriction engine.Restriction) (engine.ToolCardResponse, error) {
	p, err := actingPlayer(g, turn)
	if err != nil {
		return failure(err)
	}
	next, err := p.Pattern.MoveDice(in.From, in.To, restriction)
	if err != nil {
		return failure(err)
	}
	p.Pattern = next
	return engine.ResponseSuccess, nil
}

// adjustDie replaces pool die i and forces the player to place it next.
func adjustDie(g *engine.Game, turn *engine.Turn, i int, change func(engine.Die) (engine.Die, error)) (engine.ToolCardResponse, error) {
	d, err := g.Pool.Select(i)
	if err != nil {
		return failure(err)
	}
	nd, err := change(d)
	if err != nil {
		return failure(err)
	}
	if _, err := g.Pool.Replace(i, nd); err != nil {
		return failure(err)
	}
	if err := g.ForceSelection(turn, i); err != nil {
		return failure(err)
	}
	return engine.ResponseSuccess, nil
}
