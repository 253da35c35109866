package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lixenwraith/tubby-terrors/engine"
	"github.com/lixenwraith/tubby-terrors/input"
)

// MessageType identifies the semantic meaning of a message
type MessageType string

const (
	// Client to server
	MsgKey     MessageType = "key"
	MsgPointer MessageType = "pointer"
	MsgLook    MessageType = "look"
	MsgIntent  MessageType = "intent"

	// Server to client
	MsgSnapshot MessageType = "snapshot"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrUnknownIntent  = errors.New("unknown intent")
	ErrMissingCode    = errors.New("key message without code")
)

// ClientMessage is the JSON envelope sent by browsers
type ClientMessage struct {
	Type   MessageType `json:"type"`
	Code   string      `json:"code,omitempty"`
	Down   bool        `json:"down,omitempty"`
	DX     float64     `json:"dx,omitempty"`
	DY     float64     `json:"dy,omitempty"`
	Intent string      `json:"intent,omitempty"`
	Value  float64     `json:"value,omitempty"`
}

// ServerMessage is the JSON envelope pushed to browsers
type ServerMessage struct {
	Type     MessageType      `json:"type"`
	Snapshot *engine.Snapshot `json:"snapshot,omitempty"`
}

// Command is a decoded client message: exactly one of Event or Intent is set
type Command struct {
	Event  *input.Event
	Intent *input.Intent
}

// Decode parses one client frame into a command
func Decode(data []byte) (Command, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return Command{}, fmt.Errorf("decode: %w", err)
	}
	return msg.Command()
}

// Command converts the envelope into simulation input
func (m ClientMessage) Command() (Command, error) {
	switch m.Type {
	case MsgKey:
		if m.Code == "" {
			return Command{}, ErrMissingCode
		}
		kind := input.EventKeyUp
		if m.Down {
			kind = input.EventKeyDown
		}
		return Command{Event: &input.Event{Kind: kind, Code: input.KeyCode(m.Code)}}, nil

	case MsgPointer:
		kind := input.EventPointerUp
		if m.Down {
			kind = input.EventPointerDown
		}
		return Command{Event: &input.Event{Kind: kind}}, nil

	case MsgLook:
		return Command{Event: &input.Event{Kind: input.EventLook, DX: m.DX, DY: m.DY}}, nil

	case MsgIntent:
		it := input.ParseIntent(m.Intent, m.Value)
		if it.Type == input.IntentNone {
			return Command{}, fmt.Errorf("%w: %q", ErrUnknownIntent, m.Intent)
		}
		return Command{Intent: &it}, nil

	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
}

// EncodeSnapshot frames a snapshot for broadcast
func EncodeSnapshot(snap *engine.Snapshot) ([]byte, error) {
	return json.Marshal(ServerMessage{Type: MsgSnapshot, Snapshot: snap})
}
