package protocol

import "github.com/srikavin/dino99/game"

// messages sent by the client

type JoinRequest struct {
	Name    string `json:"name"`
	LobbyID string `json:"lobby_id"`
}

// GameInput carries an input and the tick it was predicted at on the client.
type GameInput struct {
	Tick  uint64     `json:"tick"`
	Input game.Input `json:"input"`
}
