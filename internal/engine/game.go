package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Game holds the entire game state.
type Game struct {
	Players    []*Player         `json:"players"`
	Config     GameConfig        `json:"-"`
	Registry   *ToolCardRegistry `json:"-"`
	ToolCards  []ToolCard        `json:"tool_cards"`
	Objectives []PublicObjective `json:"objectives"`

	Bag   *DiceBag     `json:"-"`
	Pool  *DraftPool   `json:"-"`
	Track *RoundTrack  `json:"-"`
	Turns *TurnManager `json:"-"`

	Phase GamePhase `json:"phase"`

	// Prompter receives tool card parameter requests. Nil discards them.
	Prompter Prompter `json:"-"`

	Scores []ScoreEntry `json:"scores,omitempty"`
}

// NewGame creates a new game with given players and config.
func NewGame(players []*Player, config GameConfig, registry *ToolCardRegistry) (*Game, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if len(players) > MaxPlayers {
		return nil, fmt.Errorf("at most %d players, got %d", MaxPlayers, len(players))
	}
	if registry == nil {
		return nil, fmt.Errorf("tool card registry is required")
	}
	if config.TotalRounds < 1 || config.TotalRounds > TotalRounds {
		return nil, fmt.Errorf("total rounds must be between 1 and %d, got %d", TotalRounds, config.TotalRounds)
	}
	if need := len(players) * config.PatternChoices; config.PatternChoices < 1 || need > len(config.Patterns) {
		return nil, fmt.Errorf("need %d patterns to offer, catalogue has %d", need, len(config.Patterns))
	}
	return &Game{
		Players:  players,
		Config:   config,
		Registry: registry,
		Bag:      NewDiceBag(config.Rand),
		Pool:     NewDraftPool(nil),
		Track:    NewRoundTrack(),
		Phase:    PhaseLobby,
	}, nil
}

// IsSolo reports whether a single player is at the table.
func (g *Game) IsSolo() bool {
	return len(g.Players) == 1
}

func (g *Game) shuffle(n int, swap func(i, j int)) {
	if g.Config.Rand == nil {
		rand.Shuffle(n, swap)
		return
	}
	g.Config.Rand.Shuffle(n, swap)
}

func (g *Game) prompter() Prompter {
	if g.Prompter == nil {
		return nopPrompter{}
	}
	return g.Prompter
}

// StartGame deals objectives, pattern offers and tool cards.
func (g *Game) StartGame() ([]Event, error) {
	if g.Phase != PhaseLobby {
		return nil, ErrWrongPhase
	}

	colours := AllColours()
	g.shuffle(len(colours), func(i, j int) { colours[i], colours[j] = colours[j], colours[i] })
	if g.IsSolo() {
		g.Players[0].PrivateColours = colours[:2:2]
	} else {
		for i, p := range g.Players {
			p.PrivateColours = []Colour{colours[i]}
		}
	}

	patterns := append([]Pattern(nil), g.Config.Patterns...)
	g.shuffle(len(patterns), func(i, j int) { patterns[i], patterns[j] = patterns[j], patterns[i] })
	for i, p := range g.Players {
		k := g.Config.PatternChoices
		p.PatternChoices = append([]Pattern(nil), patterns[i*k:(i+1)*k]...)
	}

	ids := g.Registry.IDs()
	g.shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if n := g.Config.ToolCards; n < len(ids) {
		ids = ids[:n]
	}
	g.ToolCards = make([]ToolCard, len(ids))
	for i, id := range ids {
		g.ToolCards[i] = NewToolCard(id)
	}

	objectives := AllObjectives()
	g.shuffle(len(objectives), func(i, j int) { objectives[i], objectives[j] = objectives[j], objectives[i] })
	n := g.Config.PublicObjectives
	if g.IsSolo() && n > 1 {
		n--
	}
	if n > len(objectives) {
		n = len(objectives)
	}
	g.Objectives = objectives[:n]

	g.Phase = PhasePatternChoice

	names := make([]string, len(g.ToolCards))
	for i, c := range g.ToolCards {
		names[i] = c.Name
	}
	return []Event{
		{Type: EventGameStart, Data: map[string]interface{}{
			"players":    len(g.Players),
			"tool_cards": names,
			"objectives": objectiveStrings(g.Objectives),
		}},
		{Type: EventPhaseChange, Data: map[string]interface{}{
			"phase": PhasePatternChoice.String(),
		}},
	}, nil
}

// Apply is the single entry point for player actions.
func (g *Game) Apply(playerID string, action Action) ([]Event, error) {
	switch action.Type {
	case ActionChoosePattern:
		return g.applyChoosePattern(playerID, action)
	case ActionPlaceDie:
		return g.applyPlaceDie(playerID, action)
	case ActionUseToolCard:
		return g.applyUseToolCard(playerID, action)
	case ActionToolCardInput:
		return g.applyToolCardInput(playerID, action)
	case ActionCancelToolCard:
		return g.applyCancelToolCard(playerID)
	case ActionEndTurn:
		return g.applyEndTurn(playerID)
	default:
		return nil, ErrInvalidAction
	}
}

func (g *Game) applyChoosePattern(playerID string, action Action) ([]Event, error) {
	if g.Phase != PhasePatternChoice {
		return nil, ErrWrongPhase
	}
	p := g.GetPlayer(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	if err := p.ChoosePattern(action.Index); err != nil {
		return nil, err
	}
	events := []Event{
		{Type: EventPatternChosen, Player: playerID, Data: map[string]interface{}{
			"pattern": p.Pattern.Name, "tokens": p.Tokens,
		}},
	}

	for _, other := range g.Players {
		if !other.HasPattern {
			return events, nil
		}
	}

	ids := make([]string, len(g.Players))
	for i, other := range g.Players {
		ids[i] = other.ID
	}
	tm, err := NewTurnManager(ids, g.Config.TotalRounds)
	if err != nil {
		return nil, err
	}
	g.Turns = tm
	g.Phase = PhasePlayerTurn
	events = append(events, Event{
		Type: EventPhaseChange,
		Data: map[string]interface{}{"phase": PhasePlayerTurn.String()},
	})
	roundEvents, err := g.startRound()
	if err != nil {
		return nil, err
	}
	events = append(events, roundEvents...)
	return append(events, g.turnStartEvent()), nil
}

// DiceForRound is the number of dice drafted into the pool each round.
func (g *Game) DiceForRound() int {
	if g.IsSolo() {
		return 4
	}
	return 2*len(g.Players) + 1
}

func (g *Game) startRound() ([]Event, error) {
	dice, err := g.Bag.Draft(g.DiceForRound())
	if err != nil {
		return nil, fmt.Errorf("start round %d: %w", g.Turns.Round(), err)
	}
	g.Pool.SetDice(dice)
	return []Event{
		{Type: EventRoundStart, Data: map[string]interface{}{
			"round": g.Turns.Round(), "dice": dice,
		}},
	}, nil
}

func (g *Game) endRound(round int) []Event {
	leftovers := g.Pool.Dice()
	// round never exceeds TotalRounds: NewGame bounds Config.TotalRounds.
	_ = g.Track.AddAllForRound(round, leftovers)
	g.Pool.SetDice(nil)
	return []Event{
		{Type: EventRoundEnd, Data: map[string]interface{}{
			"round": round, "leftovers": leftovers,
		}},
	}
}

func (g *Game) endGame(events []Event) []Event {
	g.Phase = PhaseGameOver
	g.Scores = g.CalculateScores()
	events = append(events, Event{
		Type: EventGameOver,
		Data: map[string]interface{}{"scores": g.Scores},
	})
	events = append(events, Event{
		Type: EventPhaseChange,
		Data: map[string]interface{}{"phase": PhaseGameOver.String()},
	})
	return events
}

func (g *Game) turnStartEvent() Event {
	turn := g.Turns.CurrentTurn()
	return Event{Type: EventTurnStart, Player: turn.Player, Data: map[string]interface{}{
		"round":                 g.Turns.Round(),
		"second_turn_available": turn.SecondTurnAvailable,
	}}
}

// CurrentTurn returns the open turn, or nil outside play.
func (g *Game) CurrentTurn() *Turn {
	if g.Phase != PhasePlayerTurn || g.Turns == nil {
		return nil
	}
	return g.Turns.CurrentTurn()
}

func (g *Game) currentTurn(playerID string) (*Turn, error) {
	turn := g.CurrentTurn()
	if turn == nil {
		return nil, ErrWrongPhase
	}
	if turn.Player != playerID {
		return nil, ErrNotYourTurn
	}
	return turn, nil
}

// ForceSelection requires the player's next placement to use pool die i.
func (g *Game) ForceSelection(turn *Turn, i int) error {
	if err := g.Pool.SetForcedSelection(At(i)); err != nil {
		return err
	}
	turn.ForcedSelection = At(i)
	return nil
}

// ReleaseSelection clears any forced selection.
func (g *Game) ReleaseSelection(turn *Turn) {
	g.Pool.ResetForcedSelection()
	turn.ForcedSelection = NoIndex
}

func (g *Game) applyPlaceDie(playerID string, action Action) ([]Event, error) {
	turn, err := g.currentTurn(playerID)
	if err != nil {
		return nil, err
	}
	if turn.Pending != nil {
		return nil, ErrToolCardPending
	}
	if turn.AlreadyPlacedDie {
		return nil, ErrAlreadyPlaced
	}
	if f, ok := turn.ForcedSelection.Get(); ok && f != action.Index {
		return nil, fmt.Errorf("%w: die %d", ErrForcedSelection, f)
	}
	p := g.GetPlayer(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	die, err := g.Pool.Select(action.Index)
	if err != nil {
		return nil, err
	}
	next, err := p.Pattern.PlaceDie(die, action.At, RestrictionDefault)
	if err != nil {
		return nil, err
	}
	if _, err := g.Pool.Draft(action.Index); err != nil {
		return nil, err
	}
	p.Pattern = next
	turn.AlreadyPlacedDie = true
	g.ReleaseSelection(turn)

	events := []Event{
		{Type: EventDiePlaced, Player: playerID, Data: map[string]interface{}{
			"die": die, "at": action.At,
		}},
	}
	if turn.IsDone() {
		events = append(events, g.advance()...)
	}
	return events, nil
}

func (g *Game) applyUseToolCard(playerID string, action Action) ([]Event, error) {
	turn, err := g.currentTurn(playerID)
	if err != nil {
		return nil, err
	}
	if turn.Pending != nil {
		return nil, ErrToolCardPending
	}
	if turn.AlreadyUsedToolCard {
		return nil, ErrAlreadyUsedToolCard
	}
	if action.Index < 0 || action.Index >= len(g.ToolCards) {
		return nil, fmt.Errorf("%w: tool card slot %d", ErrBadIndex, action.Index)
	}
	card := &g.ToolCards[action.Index]
	behaviour, err := g.Registry.Get(card.ID)
	if err != nil {
		return nil, err
	}
	if !behaviour.RequirementsSatisfied(g, turn) {
		return nil, fmt.Errorf("%w: %s", ErrRequirementsNotMet, card.Name)
	}
	p := g.GetPlayer(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	pending := &PendingAction{Card: card.ID, Step: StepAwaitingFirstInput}
	if g.IsSolo() {
		if card.Used {
			return nil, fmt.Errorf("%w: %s was already used", ErrRequirementsNotMet, card.Name)
		}
		idx, ok := action.Sacrifice.Get()
		if !ok {
			return nil, &ResourceError{Sacrifice: true}
		}
		d, err := g.Pool.Select(idx)
		if err != nil {
			return nil, err
		}
		if d.Colour != card.Colour {
			return nil, &ResourceError{Sacrifice: true}
		}
		if turn.ForcedSelection.Is(idx) {
			return nil, fmt.Errorf("%w: die %d", ErrForcedSelection, idx)
		}
		if _, err := g.Pool.Draft(idx); err != nil {
			return nil, err
		}
		turn.ForcedSelection = g.Pool.ForcedSelection()
		turn.Sacrifice = At(idx)
		pending.SacrificeDie = &d
	} else if p.Tokens < card.Cost() {
		return nil, &ResourceError{Need: card.Cost(), Have: p.Tokens}
	}

	turn.SelectedToolCard = card
	turn.Pending = pending
	behaviour.AskParameters(g, turn, g.prompter())

	return []Event{
		{Type: EventToolCardActivated, Player: playerID, Data: map[string]interface{}{
			"card": card.Name, "cost": card.Cost(),
		}},
	}, nil
}

func (g *Game) applyToolCardInput(playerID string, action Action) ([]Event, error) {
	turn, err := g.currentTurn(playerID)
	if err != nil {
		return nil, err
	}
	if turn.Pending == nil || turn.SelectedToolCard == nil {
		return nil, ErrNoToolCardPending
	}
	card := turn.SelectedToolCard
	behaviour, err := g.Registry.Get(card.ID)
	if err != nil {
		return nil, err
	}

	resp, err := behaviour.Apply(g, turn, action.Input)
	if err != nil || resp == ResponseFailure {
		if err == nil {
			err = fmt.Errorf("%w: %s rejected the input", ErrInvalidAction, card.Name)
		}
		behaviour.AskParameters(g, turn, g.prompter())
		return nil, err
	}

	events := []Event{
		{Type: EventToolCardApplied, Player: playerID, Data: map[string]interface{}{
			"card": card.Name, "response": resp.String(),
		}},
	}
	if resp.ConsumesResources() {
		events = append(events, g.charge(turn)...)
	}
	if resp.ConsumesTurn() {
		turn.AlreadyUsedToolCard = true
		turn.clearToolCard()
	} else {
		behaviour.AskParameters(g, turn, g.prompter())
	}
	if turn.IsDone() {
		events = append(events, g.advance()...)
	}
	return events, nil
}

// charge takes the cost of the selected card from the acting player.
func (g *Game) charge(turn *Turn) []Event {
	card, pending := turn.SelectedToolCard, turn.Pending
	if pending.Paid {
		return nil
	}
	pending.Paid = true

	if g.IsSolo() {
		d := pending.SacrificeDie
		pending.SacrificeDie = nil
		turn.Sacrifice = NoIndex
		card.Used = true
		return []Event{
			{Type: EventDieSacrificed, Player: turn.Player, Data: map[string]interface{}{
				"card": card.Name, "die": d,
			}},
		}
	}

	cost := card.Cost()
	p := g.GetPlayer(turn.Player)
	p.Tokens -= cost
	card.Used = true
	return []Event{
		{Type: EventTokensSpent, Player: turn.Player, Data: map[string]interface{}{
			"card": card.Name, "cost": cost, "remaining": p.Tokens,
		}},
	}
}

// closePending abandons the selected card. An unpaid card gives back the
// sacrificed die; a paid one still counts as this turn's tool card.
func (g *Game) closePending(turn *Turn) {
	pending := turn.Pending
	if pending == nil {
		return
	}
	if pending.Paid {
		turn.AlreadyUsedToolCard = true
		g.ReleaseSelection(turn)
	} else if pending.SacrificeDie != nil {
		idx := turn.Sacrifice.Value()
		if idx < 0 || idx > g.Pool.Len() {
			idx = g.Pool.Len()
		}
		_ = g.Pool.Insert(idx, *pending.SacrificeDie)
		turn.ForcedSelection = g.Pool.ForcedSelection()
	}
	turn.clearToolCard()
}

func (g *Game) applyCancelToolCard(playerID string) ([]Event, error) {
	turn, err := g.currentTurn(playerID)
	if err != nil {
		return nil, err
	}
	if turn.Pending == nil {
		return nil, ErrNoToolCardPending
	}
	name := turn.SelectedToolCard.Name
	paid := turn.Pending.Paid
	g.closePending(turn)
	events := []Event{
		{Type: EventToolCardCancelled, Player: playerID, Data: map[string]interface{}{
			"card": name, "paid": paid,
		}},
	}
	if turn.IsDone() {
		events = append(events, g.advance()...)
	}
	return events, nil
}

func (g *Game) applyEndTurn(playerID string) ([]Event, error) {
	if _, err := g.currentTurn(playerID); err != nil {
		return nil, err
	}
	return g.advance(), nil
}

// ForceEndTurn ends the open turn whoever holds it. The session layer calls
// it when a turn times out.
func (g *Game) ForceEndTurn() ([]Event, error) {
	if g.CurrentTurn() == nil {
		return nil, ErrWrongPhase
	}
	return g.advance(), nil
}

// advance closes the open turn and opens the next one, ending the round or
// the game when the traversal is exhausted.
func (g *Game) advance() []Event {
	turn := g.Turns.CurrentTurn()
	g.closePending(turn)
	g.ReleaseSelection(turn)

	round := g.Turns.Round()
	events := []Event{
		{Type: EventTurnEnd, Player: turn.Player, Data: map[string]interface{}{"round": round}},
	}

	newRound, err := g.Turns.UpdateTurn()
	if errors.Is(err, ErrGameFinished) {
		events = append(events, g.endRound(round)...)
		return g.endGame(events)
	}
	if newRound {
		events = append(events, g.endRound(round)...)
		roundEvents, err := g.startRound()
		if err != nil {
			return g.endGame(events)
		}
		events = append(events, roundEvents...)
	}
	return append(events, g.turnStartEvent())
}

// GetPlayer finds a player by ID.
func (g *Game) GetPlayer(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func objectiveStrings(objectives []PublicObjective) []string {
	s := make([]string, len(objectives))
	for i, o := range objectives {
		s[i] = o.String()
	}
	return s
}
