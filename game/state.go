package game

import "fmt"

// Player is the runner controlled by one client. Its horizontal position is
// fixed at PlayerX; only Y changes.
type Player struct {
	Y            int32  `json:"y"`
	JumpTick     uint8  `json:"jump_tick"`
	PeakJumpTick uint8  `json:"peak_jump_tick"`
	Ducked       bool   `json:"is_ducked"`
	Speed        uint32 `json:"speed"`
}

type ObstacleCategory uint8

const (
	Cactus ObstacleCategory = iota
	Bird
)

func (c ObstacleCategory) String() string {
	if c == Bird {
		return "Bird"
	}
	return "Cactus"
}

func (c ObstacleCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ObstacleCategory) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Cactus":
		*c = Cactus
	case "Bird":
		*c = Bird
	default:
		return fmt.Errorf("unknown obstacle category %q", b)
	}
	return nil
}

type Position struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

type Obstacle struct {
	Category ObstacleCategory `json:"category"`
	Position Position         `json:"position"`
}

// State is one player's game. The server keeps the authoritative copy and
// every client keeps its own copy of every player in the lobby.
//
// Obstacles is ordered front (closest to the player) to back. Spawned counts
// every obstacle ever created and drives the spawn pattern.
type State struct {
	Score     uint64     `json:"score"`
	Player    Player     `json:"player"`
	Obstacles []Obstacle `json:"obstacles"`
	Spawned   uint64     `json:"spawned"`
	Tick      uint64     `json:"tick"`
	GameOver  bool       `json:"is_game_over"`
}

func NewState() *State {
	return &State{
		Player:    Player{Y: Ground, Speed: DefaultSpeed},
		Obstacles: make([]Obstacle, 0, MinObstacles),
	}
}

// Clone returns a deep copy that shares no memory with s.
func (s *State) Clone() *State {
	c := *s
	c.Obstacles = make([]Obstacle, len(s.Obstacles), max(len(s.Obstacles), MinObstacles))
	copy(c.Obstacles, s.Obstacles)
	return &c
}

func (p *Player) grounded() bool {
	return p.Y == Ground && p.JumpTick == 0
}
