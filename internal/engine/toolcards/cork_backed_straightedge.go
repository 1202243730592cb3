package toolcards

import (
	"fmt"

	"sagrada/internal/engine"
)

// CorkBackedStraightedge places a drafted die in a cell with no neighbours.
type CorkBackedStraightedge struct{}

func (CorkBackedStraightedge) ID() engine.ToolCardID { return engine.ToolCorkBackedStraightedge }

func (CorkBackedStraightedge) RequirementsSatisfied(g *engine.Game, turn *engine.Turn) bool {
	return canDraft(g, turn)
}

func (c CorkBackedStraightedge) AskParameters(g *engine.Game, turn *engine.Turn, p engine.Prompter) {
	p.Prompt(turn.Player, engine.ParameterRequest{
		Card:    c.ID(),
		Step:    turn.Pending.Step,
		Params:  []engine.ParameterKind{engine.ParamDieIndex, engine.ParamDestination},
		Message: "Choose a die and a cell not adjacent to any other die",
	})
}

func (CorkBackedStraightedge) Apply(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	if len(in.To) != 1 {
		return failure(fmt.Errorf("%w: one destination required", engine.ErrInvalidAction))
	}
	if f, ok := turn.ForcedSelection.Get(); ok && f != in.DieIndex {
		return failure(fmt.Errorf("%w: die %d", engine.ErrForcedSelection, f))
	}
	p, err := actingPlayer(g, turn)
	if err != nil {
		return failure(err)
	}
	d, err := g.Pool.Select(in.DieIndex)
	if err != nil {
		return failure(err)
	}
	next, err := p.Pattern.PlaceDie(d, in.To[0], engine.RestrictionNotAdjacent)
	if err != nil {
		return failure(err)
	}
	if _, err := g.Pool.Draft(in.DieIndex); err != nil {
		return failure(err)
	}
	p.Pattern = next
	turn.AlreadyPlacedDie = true
	g.ReleaseSelection(turn)
	return engine.ResponseSuccess, nil
}
