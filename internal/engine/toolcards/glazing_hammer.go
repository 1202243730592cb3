package toolcards

import "sagrada/internal/engine"

// GlazingHammer re-rolls the whole draft pool. Only during a second turn,
// before drafting.
type GlazingHammer struct{}

func (GlazingHammer) ID() engine.ToolCardID { return engine.ToolGlazingHammer }

func (GlazingHammer) RequirementsSatisfied(g *engine.Game, turn *engine.Turn) bool {
	return !turn.SecondTurnAvailable && canDraft(g, turn)
}

func (c GlazingHammer) AskParameters(g *engine.Game, turn *engine.Turn, p engine.Prompter) {
	p.Prompt(turn.Player, engine.ParameterRequest{
		Card:    c.ID(),
		Step:    turn.Pending.Step,
		Message: "Confirm to re-roll every die in the draft pool",
	})
}

func (GlazingHammer) Apply(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	dice := g.Pool.Dice()
	for i, d := range dice {
		dice[i] = d.Roll(g.Bag.Rand())
	}
	g.Pool.SetDice(dice)
	g.ReleaseSelection(turn)
	return engine.ResponseSuccess, nil
}
