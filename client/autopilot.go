package client

import "github.com/srikavin/dino99/game"

// InputSource decides the local player's input for the next tick.
type InputSource interface {
	NextInput(self *game.State) game.Input
}

// Autopilot jumps over cacti and ducks under birds.
type Autopilot struct{}

func (Autopilot) NextInput(s *game.State) game.Input {
	p := s.Player
	if s.GameOver || p.JumpTick != 0 {
		return game.InputNone
	}

	var next *game.Obstacle
	for i := range s.Obstacles {
		if s.Obstacles[i].Position.X > game.PlayerX {
			next = &s.Obstacles[i]
			break
		}
	}
	if next == nil {
		return game.InputNone
	}

	speed := int32(p.Speed)
	// SpawnX and SpawnPitch are multiples of the speed, so dist is too
	dist := next.Position.X - game.PlayerX
	switch next.Category {
	case game.Bird:
		if dist <= 2*speed {
			if !p.Ducked {
				return game.InputDuck
			}
			return game.InputNone
		}
	case game.Cactus:
		// the arc is above cactus height on its 4th to 6th step
		if dist > 3*speed && dist <= 6*speed {
			return game.InputJump
		}
	}
	if p.Ducked {
		return game.InputUnduck
	}
	return game.InputNone
}

// Idle never presses anything.
type Idle struct{}

func (Idle) NextInput(*game.State) game.Input { return game.InputNone }
