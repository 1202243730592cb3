package toolcards

import "sagrada/internal/engine"

// FluxBrush re-rolls a drafted die, which must then be placed if possible.
type FluxBrush struct{}

func (FluxBrush) ID() engine.ToolCardID { return engine.ToolFluxBrush }

func (FluxBrush) RequirementsSatisfied(g *engine.Game, turn *engine.Turn) bool {
	return canDraft(g, turn)
}

func (c FluxBrush) AskParameters(g *engine.Game, turn *engine.Turn, p engine.Prompter) {
	p.Prompt(turn.Player, engine.ParameterRequest{
		Card:    c.ID(),
		Step:    turn.Pending.Step,
		Params:  []engine.ParameterKind{engine.ParamDieIndex},
		Message: "Choose a die to re-roll",
	})
}

func (FluxBrush) Apply(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	return adjustDie(g, turn, in.DieIndex, func(d engine.Die) (engine.Die, error) {
		return d.Roll(g.Bag.Rand()), nil
	})
}
