package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrEmptyMessage = errors.New("empty message")
	ErrEmptyPayload = errors.New("empty payload")
	ErrUnknownKind  = errors.New("unknown message type")
)

// Encode wraps payload in an envelope of kind t.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode: missing message type")
	}
	if payload == nil {
		return nil, fmt.Errorf("encode %s: nil payload", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return json.Marshal(Envelope{Type: t, Payload: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyMessage
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if e.Type == "" {
		return Envelope{}, fmt.Errorf("decode envelope: %w", ErrUnknownKind)
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.Payload) == 0 {
		return out, fmt.Errorf("%s: %w", env.Type, ErrEmptyPayload)
	}
	if err := json.Unmarshal(env.Payload, &out); err != nil {
		return out, fmt.Errorf("%s: %w", env.Type, err)
	}
	return out, nil
}

// DecodeClient decodes a message sent by a client into a JoinRequest or a
// GameInput.
func DecodeClient(b []byte) (any, error) {
	env, err := DecodeEnvelope(b)
	if err != nil {
		return nil, err
	}
	switch env.Type {
	case MsgJoinRequest:
		req, err := DecodePayload[JoinRequest](env)
		if err != nil {
			return nil, err
		}
		if req.LobbyID == "" {
			return nil, fmt.Errorf("%s: missing lobby_id", env.Type)
		}
		return req, nil
	case MsgGameInput:
		return DecodePayload[GameInput](env)
	default:
		return nil, fmt.Errorf("%q: %w", env.Type, ErrUnknownKind)
	}
}
