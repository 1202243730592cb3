package engine

// Player holds one player's state.
type Player struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Pattern Pattern `json:"pattern"`
	// HasPattern is false until the player picks one of PatternChoices.
	HasPattern     bool      `json:"has_pattern"`
	Tokens         int       `json:"tokens"`
	PrivateColours []Colour  `json:"-"`
	PatternChoices []Pattern `json:"-"`
}

func NewPlayer(id, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
	}
}

// ChoosePattern fixes the player's window and grants its favour tokens.
func (p *Player) ChoosePattern(i int) error {
	if p.HasPattern {
		return ErrInvalidAction
	}
	if i < 0 || i >= len(p.PatternChoices) {
		return ErrBadIndex
	}
	p.Pattern = p.PatternChoices[i]
	p.Tokens = p.Pattern.Difficulty
	p.HasPattern = true
	p.PatternChoices = nil
	return nil
}
