package engine

// PublicObjective is a public scoring card.
type PublicObjective int

const (
	ObjectiveRowColourVariety PublicObjective = iota + 1
	ObjectiveColumnColourVariety
	ObjectiveRowShadeVariety
	ObjectiveColumnShadeVariety
	ObjectiveLightShades
	ObjectiveMediumShades
	ObjectiveDeepShades
	ObjectiveShadeVariety
	ObjectiveColourVariety
	ObjectiveColourDiagonals
)

var objectiveNames = map[PublicObjective]string{
	ObjectiveRowColourVariety:    "Row Colour Variety",
	ObjectiveColumnColourVariety: "Column Colour Variety",
	ObjectiveRowShadeVariety:     "Row Shade Variety",
	ObjectiveColumnShadeVariety:  "Column Shade Variety",
	ObjectiveLightShades:         "Light Shades",
	ObjectiveMediumShades:        "Medium Shades",
	ObjectiveDeepShades:          "Deep Shades",
	ObjectiveShadeVariety:        "Shade Variety",
	ObjectiveColourVariety:       "Colour Variety",
	ObjectiveColourDiagonals:     "Colour Diagonals",
}

func (o PublicObjective) String() string {
	if s, ok := objectiveNames[o]; ok {
		return s
	}
	return "Unknown"
}

// AllObjectives returns every public objective in order.
func AllObjectives() []PublicObjective {
	var out []PublicObjective
	for o := ObjectiveRowColourVariety; o <= ObjectiveColourDiagonals; o++ {
		out = append(out, o)
	}
	return out
}

// Score evaluates the objective against a finished pattern.
func (o PublicObjective) Score(p Pattern) int {
	switch o {
	case ObjectiveRowColourVariety:
		return 6 * countLines(p, true, colourKey)
	case ObjectiveColumnColourVariety:
		return 5 * countLines(p, false, colourKey)
	case ObjectiveRowShadeVariety:
		return 5 * countLines(p, true, valueKey)
	case ObjectiveColumnShadeVariety:
		return 4 * countLines(p, false, valueKey)
	case ObjectiveLightShades:
		return 2 * countSets(p, valueKey, 1, 2)
	case ObjectiveMediumShades:
		return 2 * countSets(p, valueKey, 3, 4)
	case ObjectiveDeepShades:
		return 2 * countSets(p, valueKey, 5, 6)
	case ObjectiveShadeVariety:
		return 5 * countSets(p, valueKey, 1, 2, 3, 4, 5, 6)
	case ObjectiveColourVariety:
		return 4 * countSets(p, colourKey,
			int(ColourRed), int(ColourYellow), int(ColourGreen), int(ColourBlue), int(ColourPurple))
	case ObjectiveColourDiagonals:
		return countDiagonals(p)
	default:
		return 0
	}
}

func colourKey(d Die) int { return int(d.Colour) }
func valueKey(d Die) int  { return d.Value }

// countLines counts full rows (or columns) without a repeated key.
func countLines(p Pattern, rows bool, key func(Die) int) int {
	var lines [][]Cell
	if rows {
		for r := 0; r < PatternRows; r++ {
			lines = append(lines, p.Row(r))
		}
	} else {
		for c := 0; c < PatternCols; c++ {
			lines = append(lines, p.Column(c))
		}
	}
	n := 0
	for _, line := range lines {
		seen := map[int]bool{}
		ok := true
		for _, cell := range line {
			if cell.Die == nil || seen[key(*cell.Die)] {
				ok = false
				break
			}
			seen[key(*cell.Die)] = true
		}
		if ok {
			n++
		}
	}
	return n
}

// countSets counts complete sets holding one die of each wanted key.
func countSets(p Pattern, key func(Die) int, wanted ...int) int {
	counts := map[int]int{}
	for _, pd := range p.Dice() {
		counts[key(pd.Die)]++
	}
	sets := -1
	for _, w := range wanted {
		if sets == -1 || counts[w] < sets {
			sets = counts[w]
		}
	}
	if sets < 0 {
		return 0
	}
	return sets
}

// countDiagonals counts dice touching a same-coloured die diagonally.
func countDiagonals(p Pattern) int {
	n := 0
	for _, pd := range p.Dice() {
		for _, dr := range []int{-1, 1} {
			found := false
			for _, dc := range []int{-1, 1} {
				if d, ok := p.DieAt(Coordinates{Row: pd.At.Row + dr, Col: pd.At.Col + dc}); ok && d.Colour == pd.Die.Colour {
					found = true
					break
				}
			}
			if found {
				n++
				break
			}
		}
	}
	return n
}

// PrivateScore sums the values of dice of the given colour.
func PrivateScore(p Pattern, colour Colour) int {
	sum := 0
	for _, pd := range p.Dice() {
		if pd.Die.Colour == colour {
			sum += pd.Die.Value
		}
	}
	return sum
}

// ScoreEntry holds the scoring breakdown for one player.
type ScoreEntry struct {
	PlayerID     string `json:"player_id"`
	PlayerName   string `json:"player_name"`
	Public       int    `json:"public"`
	Private      int    `json:"private"`
	Tokens       int    `json:"tokens"`
	EmptyPenalty int    `json:"empty_penalty"`
	Total        int    `json:"total"`
	// Target is the round track sum a solo player has to beat.
	Target int `json:"target,omitempty"`
}

// CalculateScores computes final scores for all players.
func (g *Game) CalculateScores() []ScoreEntry {
	solo := g.IsSolo()
	entries := make([]ScoreEntry, len(g.Players))
	for i, p := range g.Players {
		e := ScoreEntry{PlayerID: p.ID, PlayerName: p.Name}
		for _, o := range g.Objectives {
			e.Public += o.Score(p.Pattern)
		}
		for _, c := range p.PrivateColours {
			if s := PrivateScore(p.Pattern, c); s > e.Private {
				e.Private = s
			}
		}
		if solo {
			e.EmptyPenalty = 3 * p.Pattern.EmptyCells()
			e.Target = g.Track.Sum()
		} else {
			e.Tokens = p.Tokens
			e.EmptyPenalty = p.Pattern.EmptyCells()
		}
		e.Total = e.Public + e.Private + e.Tokens - e.EmptyPenalty
		entries[i] = e
	}
	return entries
}
