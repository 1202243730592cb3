package toolcards

import "sagrada/internal/engine"

// GrozingPliers raises or lowers a drafted die by one. 6 does not wrap to 1.
type GrozingPliers struct{}

func (GrozingPliers) ID() engine.ToolCardID { return engine.ToolGrozingPliers }

func (GrozingPliers) RequirementsSatisfied(g *engine.Game, turn *engine.Turn) bool {
	return canDraft(g, turn)
}

func (c GrozingPliers) AskParameters(g *engine.Game, turn *engine.Turn, p engine.Prompter) {
	p.Prompt(turn.Player, engine.ParameterRequest{
		Card:    c.ID(),
		Step:    turn.Pending.Step,
		Params:  []engine.ParameterKind{engine.ParamDieIndex, engine.ParamIncrease},
		Message: "Choose a die and whether to increase or decrease it",
	})
}

func (GrozingPliers) Apply(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	return adjustDie(g, turn, in.DieIndex, func(d engine.Die) (engine.Die, error) {
		if in.Increase {
			return d.Increase()
		}
		return d.Decrease()
	})
}
