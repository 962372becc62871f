package game

// Step advances s by exactly one tick using in. It is the only function that
// mutates a State, and it must stay deterministic: the server and every
// client run it independently and rely on reaching identical states.
func Step(s *State, in Input) {
	if s.GameOver {
		return
	}

	s.Player.handleInput(in)
	s.Player.move()
	s.scroll()
	s.collide()

	if !s.GameOver {
		s.Score++
	}
	s.Tick++
}

func (p *Player) handleInput(in Input) {
	if !p.grounded() {
		return
	}
	switch in {
	case InputJump:
		p.PeakJumpTick = PeakJumpTicks
		p.JumpTick = 1
		p.Ducked = false
	case InputDuck:
		p.Ducked = true
	case InputUnduck:
		p.Ducked = false
	}
}

// move runs the triangular jump arc: PeakJumpTick steps up, the same number
// down, then back on the ground with both counters cleared.
func (p *Player) move() {
	switch {
	case p.JumpTick == 0:
		return
	case p.JumpTick <= p.PeakJumpTick:
		p.Y += JumpStep
	default:
		p.Y -= JumpStep
	}
	p.JumpTick++
	if p.JumpTick > 2*p.PeakJumpTick || p.Y < Ground {
		p.Y = Ground
		p.JumpTick = 0
		p.PeakJumpTick = 0
	}
}

func (s *State) scroll() {
	speed := int32(s.Player.Speed)
	for i := range s.Obstacles {
		s.Obstacles[i].Position.X -= speed
	}
	for len(s.Obstacles) > 0 && s.Obstacles[0].passed() {
		s.Obstacles = s.Obstacles[1:]
	}
	for len(s.Obstacles) < MinObstacles {
		s.Obstacles = append(s.Obstacles, s.spawn())
	}
}

func (s *State) spawn() Obstacle {
	x := int32(SpawnX)
	if n := len(s.Obstacles); n > 0 {
		if next := s.Obstacles[n-1].Position.X + SpawnPitch; next > x {
			x = next
		}
	}
	o := Obstacle{Category: Cactus, Position: Position{X: x, Y: Ground}}
	if s.Spawned%BirdEvery == BirdEvery-1 {
		o.Category = Bird
		o.Position.Y = BirdY
	}
	s.Spawned++
	return o
}

func (s *State) collide() {
	for _, o := range s.Obstacles {
		if Overlaps(s.Player, o) {
			s.GameOver = true
			return
		}
	}
}
