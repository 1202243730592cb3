package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotYourTurn           = errors.New("not your turn")
	ErrInvalidAction         = errors.New("invalid action")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrWrongPhase            = errors.New("wrong phase for this action")
	ErrInvalidDie            = errors.New("invalid die")
	ErrValueOutOfRange       = errors.New("die value out of range")
	ErrBadIndex              = errors.New("bad index")
	ErrNotEnoughDice         = errors.New("not enough dice in the bag")
	ErrGameFinished          = errors.New("game finished")
	ErrSecondTurnUnavailable = errors.New("second turn unavailable")
	ErrAlreadyPlaced         = errors.New("already placed a die this turn")
	ErrAlreadyUsedToolCard   = errors.New("already used a tool card this turn")
	ErrForcedSelection       = errors.New("must place the selected die")
	ErrToolCardPending       = errors.New("a tool card is waiting for input")
	ErrNoToolCardPending     = errors.New("no tool card is waiting for input")
	ErrRequirementsNotMet    = errors.New("tool card requirements not satisfied")
	ErrNoPlayers             = errors.New("no players")
)

// PlacementKind identifies which placement rule rejected a die.
type PlacementKind int

const (
	PlacementFirstDiePosition PlacementKind = iota + 1
	PlacementNotAdjacent
	PlacementHasNeighbour
	PlacementOrthogonalConflict
	PlacementCellRestriction
	PlacementCellOccupied
)

var placementReasons = map[PlacementKind]string{
	PlacementFirstDiePosition:   "first die must be placed on an edge or corner",
	PlacementNotAdjacent:        "die is not adjacent to a placed die",
	PlacementHasNeighbour:       "die must not be adjacent to another die",
	PlacementOrthogonalConflict: "adjacent die shares colour or value",
	PlacementCellRestriction:    "cell restriction violated",
	PlacementCellOccupied:       "cell already holds a die",
}

func (k PlacementKind) String() string {
	if s, ok := placementReasons[k]; ok {
		return s
	}
	return "unknown placement error"
}

// PlacementError reports a violated placement rule.
type PlacementError struct {
	Kind PlacementKind
	At   Coordinates
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place die at %s: %s", e.At, e.Kind)
}

// Reason is the human-readable rule description shown to players.
func (e *PlacementError) Reason() string {
	return e.Kind.String()
}

// IsPlacementKind reports whether err is a PlacementError of the given kind.
func IsPlacementKind(err error, kind PlacementKind) bool {
	var pe *PlacementError
	return errors.As(err, &pe) && pe.Kind == kind
}

// ResourceError reports that a player cannot pay for a tool card.
type ResourceError struct {
	Need int
	Have int
	// Sacrifice is set when a solo player offered no die of the card's colour.
	Sacrifice bool
}

func (e *ResourceError) Error() string {
	if e.Sacrifice {
		return "a die of the tool card's colour must be sacrificed"
	}
	return fmt.Sprintf("not enough favour tokens (need %d, have %d)", e.Need, e.Have)
}
