package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"sagrada/internal/engine"
)

// Envelope is the standard WebSocket message wrapper.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope creates an envelope with a JSON-encoded payload.
func NewEnvelope(typ string, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: typ, Payload: data}, nil
}

// MustEnvelope is like NewEnvelope but panics on error.
func MustEnvelope(typ string, payload interface{}) Envelope {
	e, err := NewEnvelope(typ, payload)
	if err != nil {
		panic(err)
	}
	return e
}

var actionTypes = map[string]engine.ActionType{
	MsgChoosePattern:  engine.ActionChoosePattern,
	MsgPlaceDie:       engine.ActionPlaceDie,
	MsgUseToolCard:    engine.ActionUseToolCard,
	MsgToolCardInput:  engine.ActionToolCardInput,
	MsgCancelToolCard: engine.ActionCancelToolCard,
	MsgEndTurn:        engine.ActionEndTurn,
}

// ParseAction decodes an in-game action envelope. An empty payload is
// valid for actions that take no parameters.
func ParseAction(env Envelope) (engine.Action, error) {
	typ, ok := actionTypes[env.Type]
	if !ok {
		return engine.Action{}, fmt.Errorf("unknown message type %q", env.Type)
	}
	var msg ActionMsg
	if len(env.Payload) > 0 && string(env.Payload) != "null" {
		if err := json.Unmarshal(env.Payload, &msg); err != nil {
			return engine.Action{}, fmt.Errorf("invalid %s payload: %w", env.Type, err)
		}
	}
	return engine.Action{
		Type:      typ,
		Index:     msg.Index,
		At:        msg.At,
		Sacrifice: msg.Sacrifice,
		Input:     msg.Input,
	}, nil
}

// NewError builds an error message, naming the placement rule when err
// carries one.
func NewError(err error) ErrorMsg {
	msg := ErrorMsg{Message: err.Error()}
	var pe *engine.PlacementError
	if errors.As(err, &pe) {
		msg.Reason = pe.Reason()
	}
	return msg
}
