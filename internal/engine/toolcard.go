package engine

import "fmt"

// ToolCardID identifies a tool card.
type ToolCardID int

const (
	ToolGrozingPliers          ToolCardID = 1
	ToolEglomiseBrush          ToolCardID = 2
	ToolCopperFoilBurnisher    ToolCardID = 3
	ToolLathekin               ToolCardID = 4
	ToolLensCutter             ToolCardID = 5
	ToolFluxBrush              ToolCardID = 6
	ToolGlazingHammer          ToolCardID = 7
	ToolRunningPliers          ToolCardID = 8
	ToolCorkBackedStraightedge ToolCardID = 9
	ToolGrindingStone          ToolCardID = 10
	ToolFluxRemover            ToolCardID = 11
	ToolTapWheel               ToolCardID = 12
)

var toolCardNames = map[ToolCardID]string{
	ToolGrozingPliers:          "Grozing Pliers",
	ToolEglomiseBrush:          "Eglomise Brush",
	ToolCopperFoilBurnisher:    "Copper Foil Burnisher",
	ToolLathekin:               "Lathekin",
	ToolLensCutter:             "Lens Cutter",
	ToolFluxBrush:              "Flux Brush",
	ToolGlazingHammer:          "Glazing Hammer",
	ToolRunningPliers:          "Running Pliers",
	ToolCorkBackedStraightedge: "Cork-backed Straightedge",
	ToolGrindingStone:          "Grinding Stone",
	ToolFluxRemover:            "Flux Remover",
	ToolTapWheel:               "Tap Wheel",
}

// Solo games pay for a card with a die of this colour.
var toolCardColours = map[ToolCardID]Colour{
	ToolGrozingPliers:          ColourPurple,
	ToolEglomiseBrush:          ColourBlue,
	ToolCopperFoilBurnisher:    ColourRed,
	ToolLathekin:               ColourYellow,
	ToolLensCutter:             ColourGreen,
	ToolFluxBrush:              ColourPurple,
	ToolGlazingHammer:          ColourBlue,
	ToolRunningPliers:          ColourRed,
	ToolCorkBackedStraightedge: ColourYellow,
	ToolGrindingStone:          ColourGreen,
	ToolFluxRemover:            ColourPurple,
	ToolTapWheel:               ColourBlue,
}

func (id ToolCardID) String() string {
	if s, ok := toolCardNames[id]; ok {
		return s
	}
	return "Unknown"
}

// AllToolCards returns every tool card id in order.
func AllToolCards() []ToolCardID {
	ids := make([]ToolCardID, 0, len(toolCardNames))
	for id := ToolGrozingPliers; id <= ToolTapWheel; id++ {
		ids = append(ids, id)
	}
	return ids
}

// ToolCard is a tool card in play.
type ToolCard struct {
	ID     ToolCardID `json:"id"`
	Name   string     `json:"name"`
	Colour Colour     `json:"colour"`
	// Used is set once any player has paid for the card.
	Used bool `json:"used"`
}

func NewToolCard(id ToolCardID) ToolCard {
	return ToolCard{ID: id, Name: id.String(), Colour: toolCardColours[id]}
}

// Cost is the number of favour tokens needed to activate the card.
func (c ToolCard) Cost() int {
	if c.Used {
		return 2
	}
	return 1
}

// ToolCardResponse tells the dispatcher what an Apply call consumed.
type ToolCardResponse int

const (
	// ResponseFailure consumes nothing; the input may be retried.
	ResponseFailure ToolCardResponse = iota
	// ResponseSuccess ends the card and charges its cost.
	ResponseSuccess
	// ResponseConsume charges the cost but waits for more input.
	ResponseConsume
	// ResponseUse ends a card whose cost was already charged.
	ResponseUse
)

var responseNames = map[ToolCardResponse]string{
	ResponseFailure: "Failure",
	ResponseSuccess: "Success",
	ResponseConsume: "Consume",
	ResponseUse:     "Use",
}

func (r ToolCardResponse) String() string {
	if s, ok := responseNames[r]; ok {
		return s
	}
	return "Unknown"
}

// ConsumesTurn reports whether the card's use this turn is over.
func (r ToolCardResponse) ConsumesTurn() bool {
	return r == ResponseSuccess || r == ResponseUse
}

// ConsumesResources reports whether the card's cost must be charged now.
func (r ToolCardResponse) ConsumesResources() bool {
	return r == ResponseSuccess || r == ResponseConsume
}

// ToolCardInput carries the parameters a player supplies to a tool card.
// Which fields matter depends on the card.
type ToolCardInput struct {
	DieIndex   int           `json:"die_index"`
	Increase   bool          `json:"increase,omitempty"`
	Value      int           `json:"value,omitempty"`
	From       []Coordinates `json:"from,omitempty"`
	To         []Coordinates `json:"to,omitempty"`
	Round      int           `json:"round,omitempty"`
	RoundIndex int           `json:"round_index,omitempty"`
}

// ParameterKind names one input a tool card asks for.
type ParameterKind string

const (
	ParamDieIndex      ParameterKind = "die_index"
	ParamIncrease      ParameterKind = "increase"
	ParamValue         ParameterKind = "value"
	ParamMoves         ParameterKind = "moves"
	ParamRoundTrackDie ParameterKind = "round_track_die"
	ParamDestination   ParameterKind = "destination"
)

// ParameterRequest is sent to the player when a tool card needs input.
type ParameterRequest struct {
	Card     ToolCardID      `json:"card"`
	Step     ToolCardStep    `json:"step"`
	Params   []ParameterKind `json:"params"`
	MinMoves int             `json:"min_moves,omitempty"`
	MaxMoves int             `json:"max_moves,omitempty"`
	Message  string          `json:"message"`
}

// Prompter delivers parameter requests to the acting player.
type Prompter interface {
	Prompt(playerID string, req ParameterRequest)
}

type nopPrompter struct{}

func (nopPrompter) Prompt(string, ParameterRequest) {}

// ToolCardBehaviour is the policy behind one tool card.
type ToolCardBehaviour interface {
	ID() ToolCardID
	// RequirementsSatisfied reports whether the card may be activated now.
	// It must not change any state.
	RequirementsSatisfied(g *Game, turn *Turn) bool
	// AskParameters prompts the player for the input of the current step.
	AskParameters(g *Game, turn *Turn, p Prompter)
	// Apply performs the effect. A failed Apply leaves the game unchanged.
	Apply(g *Game, turn *Turn, in ToolCardInput) (ToolCardResponse, error)
}

// ToolCardRegistry maps card ids to their behaviours.
type ToolCardRegistry struct {
	behaviours map[ToolCardID]ToolCardBehaviour
}

func NewToolCardRegistry() *ToolCardRegistry {
	return &ToolCardRegistry{behaviours: make(map[ToolCardID]ToolCardBehaviour)}
}

func (r *ToolCardRegistry) Register(b ToolCardBehaviour) {
	r.behaviours[b.ID()] = b
}

func (r *ToolCardRegistry) Get(id ToolCardID) (ToolCardBehaviour, error) {
	b, ok := r.behaviours[id]
	if !ok {
		return nil, fmt.Errorf("no behaviour registered for tool card %d", id)
	}
	return b, nil
}

// IDs returns the registered card ids in order.
func (r *ToolCardRegistry) IDs() []ToolCardID {
	var ids []ToolCardID
	for _, id := range AllToolCards() {
		if _, ok := r.behaviours[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
