package protocol

import (
	"github.com/google/uuid"

	"github.com/srikavin/dino99/game"
)

// messages sent by the server

type JoinSuccess struct {
	PlayerID uuid.UUID    `json:"player_id"`
	Players  []PlayerInfo `json:"players"`
}

type JoinFailure struct {
	Reason string `json:"reason"`
}

type JoinEvent struct {
	Player PlayerInfo `json:"player"`
}

type LobbyStateChange struct {
	NewState LobbyState `json:"new_state"`
}

type TickInput struct {
	ID    uuid.UUID  `json:"id"`
	Input game.Input `json:"input"`
}

// TickEvent announces the inputs the server applied at Tick. Players that
// are absent used game.InputNone.
type TickEvent struct {
	Tick    uint64      `json:"tick"`
	Players []TickInput `json:"players"`
}

type InvalidMessage struct {
	Error string `json:"error"`
}
