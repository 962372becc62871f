package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Message kinds carried in Envelope.Type.
const (
	MsgJoinRequest = "JoinRequest"
	MsgGameInput   = "GameInput"

	MsgJoinSuccess      = "JoinSuccess"
	MsgJoinFailure      = "JoinFailure"
	MsgJoinEvent        = "JoinEvent"
	MsgLobbyStateChange = "LobbyStateChange"
	MsgTickEvent        = "TickEvent"
	MsgInvalidMessage   = "InvalidMessage"
)

type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// LobbyState is the phase of a lobby: Waiting until two players are in,
// InPlay while ticking, Ended once a player dropped out mid-game.
type LobbyState uint8

const (
	Waiting LobbyState = iota
	InPlay
	Ended
)

func (s LobbyState) String() string {
	switch s {
	case Waiting:
		return "Waiting"
	case InPlay:
		return "InPlay"
	case Ended:
		return "Ended"
	default:
		return fmt.Sprintf("LobbyState(%d)", uint8(s))
	}
}

func (s LobbyState) MarshalText() ([]byte, error) {
	if s > Ended {
		return nil, fmt.Errorf("invalid lobby state %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *LobbyState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Waiting":
		*s = Waiting
	case "InPlay":
		*s = InPlay
	case "Ended":
		*s = Ended
	default:
		return fmt.Errorf("unknown lobby state %q", b)
	}
	return nil
}

type PlayerStatus uint8

const (
	Playing PlayerStatus = iota
	Dead
	Spectating
)

func (s PlayerStatus) String() string {
	switch s {
	case Dead:
		return "Dead"
	case Spectating:
		return "Spectating"
	default:
		return "Playing"
	}
}

func (s PlayerStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *PlayerStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Playing":
		*s = Playing
	case "Dead":
		*s = Dead
	case "Spectating":
		*s = Spectating
	default:
		return fmt.Errorf("unknown player status %q", b)
	}
	return nil
}

type PlayerInfo struct {
	Username string       `json:"username"`
	ID       uuid.UUID    `json:"id"`
	State    PlayerStatus `json:"state"`
}
