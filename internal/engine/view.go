package engine

// PublicViewData is the game state visible to everyone.
type PublicViewData struct {
	Phase       string             `json:"phase"`
	Round       int                `json:"round"`
	TotalRounds int                `json:"total_rounds"`
	Players     []PublicPlayerData `json:"players"`
	CurrentTurn string             `json:"current_turn,omitempty"`
	SecondPass  bool               `json:"second_pass"`
	DraftPool   []Die              `json:"draft_pool"`
	Forced      Index              `json:"forced_selection"`
	RoundTrack  [][]Die            `json:"round_track"`
	ToolCards   []ToolCard         `json:"tool_cards"`
	Objectives  []string           `json:"objectives"`
	Scores      []ScoreEntry       `json:"scores,omitempty"`
	BagSize     int                `json:"bag_size"`
}

type PublicPlayerData struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Tokens     int     `json:"tokens"`
	HasPattern bool    `json:"has_pattern"`
	Pattern    Pattern `json:"pattern"`
}

func (g *Game) PublicView() PublicViewData {
	pv := PublicViewData{
		Phase:      g.Phase.String(),
		DraftPool:  g.Pool.Dice(),
		Forced:     g.Pool.ForcedSelection(),
		RoundTrack: g.Track.Rounds(),
		ToolCards:  g.ToolCards,
		Objectives: objectiveStrings(g.Objectives),
		Scores:     g.Scores,
		BagSize:    g.Bag.Len(),
	}
	if g.Turns != nil {
		pv.Round = g.Turns.Round()
		pv.TotalRounds = g.Turns.TotalRounds()
		pv.SecondPass = !g.Turns.IsSecondTurnAvailable()
	}
	if turn := g.CurrentTurn(); turn != nil {
		if p := g.GetPlayer(turn.Player); p != nil {
			pv.CurrentTurn = p.Name
		}
	}
	for _, p := range g.Players {
		pv.Players = append(pv.Players, PublicPlayerData{
			ID:         p.ID,
			Name:       p.Name,
			Tokens:     p.Tokens,
			HasPattern: p.HasPattern,
			Pattern:    p.Pattern,
		})
	}
	return pv
}

// PlayerViewData is the game state visible to a specific player.
type PlayerViewData struct {
	PublicViewData
	PrivateColours  []string  `json:"private_colours"`
	PatternChoices  []Pattern `json:"pattern_choices,omitempty"`
	IsMyTurn        bool      `json:"is_my_turn"`
	CanPlace        bool      `json:"can_place"`
	CanUseToolCard  bool      `json:"can_use_tool_card"`
	UsableToolCards []int     `json:"usable_tool_cards,omitempty"`
	Turn            *Turn     `json:"turn,omitempty"`
}

func (g *Game) ViewFor(playerID string) PlayerViewData {
	pv := PlayerViewData{
		PublicViewData: g.PublicView(),
	}

	p := g.GetPlayer(playerID)
	if p == nil {
		return pv
	}
	for _, c := range p.PrivateColours {
		pv.PrivateColours = append(pv.PrivateColours, c.String())
	}
	if g.Phase == PhasePatternChoice && !p.HasPattern {
		pv.PatternChoices = p.PatternChoices
	}

	turn := g.CurrentTurn()
	if turn == nil || turn.Player != playerID {
		return pv
	}
	pv.IsMyTurn = true
	pv.Turn = turn
	pv.CanPlace = !turn.AlreadyPlacedDie && turn.Pending == nil
	if turn.AlreadyUsedToolCard || turn.Pending != nil {
		return pv
	}
	for i, card := range g.ToolCards {
		b, err := g.Registry.Get(card.ID)
		if err != nil || !b.RequirementsSatisfied(g, turn) {
			continue
		}
		if g.IsSolo() && card.Used {
			continue
		}
		if !g.IsSolo() && p.Tokens < card.Cost() {
			continue
		}
		pv.UsableToolCards = append(pv.UsableToolCards, i)
	}
	pv.CanUseToolCard = len(pv.UsableToolCards) > 0
	return pv
}
