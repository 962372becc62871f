package server

import (
	"github.com/google/uuid"

	"github.com/srikavin/dino99/game"
	"github.com/srikavin/dino99/protocol"
)

// Sender queues an encoded message for delivery to one client. It must not
// block.
type Sender interface {
	Enqueue([]byte)
}

// Player is the server's record of one participant. It belongs to exactly
// one lobby and is only touched from that lobby's goroutine.
type Player struct {
	Info   protocol.PlayerInfo
	State  *game.State
	Conn   Sender
	Inputs game.InputBuffer
}

func newPlayer(id uuid.UUID, name string, conn Sender) *Player {
	return &Player{
		Info:  protocol.PlayerInfo{Username: name, ID: id, State: protocol.Playing},
		State: game.NewState(),
		Conn:  conn,
	}
}

// PlayerSummary is the admin view of a player.
type PlayerSummary struct {
	protocol.PlayerInfo
	Tick     uint64 `json:"tick"`
	Score    uint64 `json:"score"`
	Buffered int    `json:"buffered"`
}
