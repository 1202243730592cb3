package toolcards

import "sagrada/internal/engine"

// EglomiseBrush moves one placed die ignoring colour restrictions.
type EglomiseBrush struct{}

func (EglomiseBrush) ID() engine.ToolCardID { return engine.ToolEglomiseBrush }

func (EglomiseBrush) RequirementsSatisfied(g *engine.Game, turn *engine.Turn) bool {
	return placedDice(g, turn) >= 1
}

func (c EglomiseBrush) AskParameters(g *engine.Game, turn *engine.Turn, p engine.Prompter) {
	p.Prompt(turn.Player, engine.ParameterRequest{
		Card:     c.ID(),
		Step:     turn.Pending.Step,
		Params:   []engine.ParameterKind{engine.ParamMoves},
		MinMoves: 1,
		MaxMoves: 1,
		Message:  "Move a die in your window ignoring colour restrictions",
	})
}

func (EglomiseBrush) Apply(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	if err := checkMoves(in, 1, 1); err != nil {
		return failure(err)
	}
	return moveDice(g, turn, in, engine.RestrictionOnlyValue)
}
