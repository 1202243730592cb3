package toolcards

import (
	"fmt"

	"sagrada/internal/engine"
)

// LensCutter swaps a drafted die with a die on the round track.
type LensCutter struct{}

func (LensCutter) ID() engine.ToolCardID { return engine.ToolLensCutter }

func (LensCutter) RequirementsSatisfied(g *engine.Game, turn *engine.Turn) bool {
	return canDraft(g, turn) && !g.Track.IsEmpty()
}

func (c LensCutter) AskParameters(g *engine.Game, turn *engine.Turn, p engine.Prompter) {
	p.Prompt(turn.Player, engine.ParameterRequest{
		Card:    c.ID(),
		Step:    turn.Pending.Step,
		Params:  []engine.ParameterKind{engine.ParamDieIndex, engine.ParamRoundTrackDie},
		Message: "Choose a draft pool die and a round track die to swap",
	})
}

func (LensCutter) Apply(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	poolDie, err := g.Pool.Select(in.DieIndex)
	if err != nil {
		return failure(err)
	}
	trackDie, err := g.Track.DieAt(in.Round, in.RoundIndex)
	if err != nil {
		return failure(err)
	}
	if _, ok := g.Track.SwapAt(in.Round, in.RoundIndex, poolDie); !ok {
		return failure(fmt.Errorf("%w: %s is already on the round track", engine.ErrInvalidAction, poolDie))
	}
	if _, err := g.Pool.Replace(in.DieIndex, trackDie); err != nil {
		return failure(err)
	}
	return engine.ResponseSuccess, nil
}
