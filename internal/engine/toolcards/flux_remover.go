package toolcards

import (
	"fmt"

	"sagrada/internal/engine"
)

// FluxRemover returns a drafted die to the bag and draws a replacement.
// The player then picks the new die's value and places it. The first step
// pays for the card; the second finishes it.
type FluxRemover struct{}

func (FluxRemover) ID() engine.ToolCardID { return engine.ToolFluxRemover }

func (FluxRemover) RequirementsSatisfied(g *engine.Game, turn *engine.Turn) bool {
	return canDraft(g, turn)
}

func (c FluxRemover) AskParameters(g *engine.Game, turn *engine.Turn, p engine.Prompter) {
	req := engine.ParameterRequest{Card: c.ID(), Step: turn.Pending.Step}
	switch turn.Pending.Step {
	case engine.StepAwaitingFirstInput:
		req.Params = []engine.ParameterKind{engine.ParamDieIndex}
		req.Message = "Choose a die to return to the bag"
	default:
		req.Params = []engine.ParameterKind{engine.ParamValue, engine.ParamDestination}
		req.Message = "Choose a value for the drawn die and where to place it"
		if i, ok := turn.ForcedSelection.Get(); ok {
			if d, err := g.Pool.Select(i); err == nil {
				req.Message = fmt.Sprintf("Choose a value for the drawn %s die and where to place it", d.Colour)
			}
		}
	}
	p.Prompt(turn.Player, req)
}

func (c FluxRemover) Apply(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	if turn.Pending.Step == engine.StepAwaitingFirstInput {
		return c.swapWithBag(g, turn, in)
	}
	return c.place(g, turn, in)
}

func (FluxRemover) swapWithBag(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	d, err := g.Pool.Select(in.DieIndex)
	if err != nil {
		return failure(err)
	}
	g.Bag.PushBack(d)
	drawn, err := g.Bag.Draft(1)
	if err != nil {
		return failure(err)
	}
	if _, err := g.Pool.Replace(in.DieIndex, drawn[0]); err != nil {
		return failure(err)
	}
	if err := g.ForceSelection(turn, in.DieIndex); err != nil {
		return failure(err)
	}
	turn.Pending.Step = engine.StepAwaitingSecondInput
	return engine.ResponseConsume, nil
}

func (FluxRemover) place(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	i, ok := turn.ForcedSelection.Get()
	if !ok {
		return failure(fmt.Errorf("%w: no drawn die", engine.ErrInvalidAction))
	}
	if len(in.To) != 1 {
		return failure(fmt.Errorf("%w: one destination required", engine.ErrInvalidAction))
	}
	p, err := actingPlayer(g, turn)
	if err != nil {
		return failure(err)
	}
	d, err := g.Pool.Select(i)
	if err != nil {
		return failure(err)
	}
	d, err = d.WithValue(in.Value)
	if err != nil {
		return failure(err)
	}
	next, err := p.Pattern.PlaceDie(d, in.To[0], engine.RestrictionDefault)
	if err != nil {
		return failure(err)
	}
	if _, err := g.Pool.Draft(i); err != nil {
		return failure(err)
	}
	p.Pattern = next
	turn.AlreadyPlacedDie = true
	g.ReleaseSelection(turn)
	return engine.ResponseUse, nil
}
