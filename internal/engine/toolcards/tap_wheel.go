package toolcards

import (
	"fmt"

	"sagrada/internal/engine"
)

// TapWheel moves up to two placed dice of one colour that also appears on
// the round track.
type TapWheel struct{}

func (TapWheel) ID() engine.ToolCardID { return engine.ToolTapWheel }

func (TapWheel) RequirementsSatisfied(g *engine.Game, turn *engine.Turn) bool {
	return !g.Track.IsEmpty() && placedDice(g, turn) >= 1
}

func (c TapWheel) AskParameters(g *engine.Game, turn *engine.Turn, p engine.Prompter) {
	p.Prompt(turn.Player, engine.ParameterRequest{
		Card:     c.ID(),
		Step:     turn.Pending.Step,
		Params:   []engine.ParameterKind{engine.ParamMoves},
		MinMoves: 1,
		MaxMoves: 2,
		Message:  "Move up to two dice of a colour shown on the round track",
	})
}

func (TapWheel) Apply(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	if err := checkMoves(in, 1, 2); err != nil {
		return failure(err)
	}
	p, err := actingPlayer(g, turn)
	if err != nil {
		return failure(err)
	}
	colours := g.Track.Colours()
	var colour engine.Colour
	for _, from := range in.From {
		d, ok := p.Pattern.DieAt(from)
		if !ok {
			return failure(fmt.Errorf("%w: no die at %s", engine.ErrInvalidAction, from))
		}
		if colour == engine.ColourNone {
			colour = d.Colour
		}
		if d.Colour != colour {
			return failure(fmt.Errorf("%w: moved dice must share a colour", engine.ErrInvalidAction))
		}
	}
	if !colours[colour] {
		return failure(fmt.Errorf("%w: no %s die on the round track", engine.ErrInvalidAction, colour))
	}
	return moveDice(g, turn, in, engine.RestrictionDefault)
}
