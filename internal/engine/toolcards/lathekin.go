package toolcards

import "sagrada/internal/engine"

// Lathekin moves exactly two placed dice obeying every placement rule.
type Lathekin struct{}

func (Lathekin) ID() engine.ToolCardID { return engine.ToolLathekin }

func (Lathekin) RequirementsSatisfied(g *engine.Game, turn *engine.Turn) bool {
	return placedDice(g, turn) >= 2
}

func (c Lathekin) AskParameters(g *engine.Game, turn *engine.Turn, p engine.Prompter) {
	p.Prompt(turn.Player, engine.ParameterRequest{
		Card:     c.ID(),
		Step:     turn.Pending.Step,
		Params:   []engine.ParameterKind{engine.ParamMoves},
		MinMoves: 2,
		MaxMoves: 2,
		Message:  "Move exactly two dice in your window",
	})
}

func (Lathekin) Apply(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	if err := checkMoves(in, 2, 2); err != nil {
		return failure(err)
	}
	return moveDice(g, turn, in, engine.RestrictionDefault)
}
