package toolcards

import "sagrada/internal/engine"

// GrindingStone flips a drafted die to its opposite face.
type GrindingStone struct{}

func (GrindingStone) ID() engine.ToolCardID { return engine.ToolGrindingStone }

func (GrindingStone) RequirementsSatisfied(g *engine.Game, turn *engine.Turn) bool {
	return canDraft(g, turn)
}

func (c GrindingStone) AskParameters(g *engine.Game, turn *engine.Turn, p engine.Prompter) {
	p.Prompt(turn.Player, engine.ParameterRequest{
		Card:    c.ID(),
		Step:    turn.Pending.Step,
		Params:  []engine.ParameterKind{engine.ParamDieIndex},
		Message: "Choose a die to flip",
	})
}

func (GrindingStone) Apply(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	return adjustDie(g, turn, in.DieIndex, func(d engine.Die) (engine.Die, error) {
		return d.Flip(), nil
	})
}
