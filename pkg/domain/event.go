package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EventType names an event delivered to the machine.
type EventType string

const (
	EventChooseX EventType = "choose_x"
	EventChooseO EventType = "choose_o"
	EventPlayX   EventType = "play_x"
	EventPlayO   EventType = "play_o"

	// EventDone carries the result of an invocation.
	EventDone EventType = "done"
	// EventError carries the failure of an invocation.
	EventError EventType = "error"
)

// Event is a typed signal with an optional payload.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// NewEvent builds an Event.
func NewEvent(t EventType, payload any) Event {
	return Event{Type: t, Payload: payload}
}

// ChooseEvent returns choose_x or choose_o.
func ChooseEvent(mark Mark) Event {
	return Event{Type: EventType("choose_" + string(mark))}
}

// PlayEvent returns play_<mark> carrying the move.
func PlayEvent(mark Mark, m Move) Event {
	return Event{Type: EventType("play_" + string(mark)), Payload: m}
}

// Move decodes the payload as a coordinate pair.
// It accepts a Move, *Move, [2]int, []int, a JSON-decoded []any of numbers,
// a map holding one of those under "move", or raw JSON.
func (e Event) Move() (Move, error) {
	return decodeMove(e.Payload)
}

func decodeMove(p any) (Move, error) {
	switch v := p.(type) {
	case Move:
		return v, nil
	case *Move:
		if v == nil {
			return Move{}, fmt.Errorf("%w: nil move", ErrInvalidMove)
		}
		return *v, nil
	case [2]int:
		return Move{Row: v[0], Col: v[1]}, nil
	case []int:
		if len(v) != 2 {
			return Move{}, fmt.Errorf("%w: expected 2 coordinates, got %d", ErrInvalidMove, len(v))
		}
		return Move{Row: v[0], Col: v[1]}, nil
	case []any:
		if len(v) != 2 {
			return Move{}, fmt.Errorf("%w: expected 2 coordinates, got %d", ErrInvalidMove, len(v))
		}
		row, err := toInt(v[0])
		if err != nil {
			return Move{}, err
		}
		col, err := toInt(v[1])
		if err != nil {
			return Move{}, err
		}
		return Move{Row: row, Col: col}, nil
	case map[string]any:
		inner, ok := v["move"]
		if !ok {
			return Move{}, fmt.Errorf("%w: payload has no move", ErrInvalidMove)
		}
		return decodeMove(inner)
	case json.RawMessage:
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		var decoded any
		if err := dec.Decode(&decoded); err != nil {
			return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
		}
		return decodeMove(decoded)
	}
	return Move{}, fmt.Errorf("%w: unsupported payload %T", ErrInvalidMove, p)
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: non-integer coordinate %v", ErrInvalidMove, n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidMove, err)
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("%w: unsupported coordinate %T", ErrInvalidMove, v)
}
