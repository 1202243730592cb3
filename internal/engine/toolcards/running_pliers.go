package toolcards

import "sagrada/internal/engine"

// RunningPliers lets the player draft a second die right after the first
// one, giving up their turn in the backward pass.
type RunningPliers struct{}

func (RunningPliers) ID() engine.ToolCardID { return engine.ToolRunningPliers }

func (RunningPliers) RequirementsSatisfied(g *engine.Game, turn *engine.Turn) bool {
	return turn.SecondTurnAvailable && turn.AlreadyPlacedDie && g.Pool.Len() > 0
}

func (c RunningPliers) AskParameters(g *engine.Game, turn *engine.Turn, p engine.Prompter) {
	p.Prompt(turn.Player, engine.ParameterRequest{
		Card:    c.ID(),
		Step:    turn.Pending.Step,
		Message: "Confirm to draft another die now and skip your next turn",
	})
}

func (RunningPliers) Apply(g *engine.Game, turn *engine.Turn, in engine.ToolCardInput) (engine.ToolCardResponse, error) {
	if err := g.Turns.ConsumeSecondTurn(turn.Player); err != nil {
		return failure(err)
	}
	turn.AlreadyPlacedDie = false
	return engine.ResponseSuccess, nil
}
