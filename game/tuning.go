package game

// Simulation constants. Client and server must agree on every one of them.
const (
	Ground        = 0
	JumpStep      = 10
	PeakJumpTicks = 5
	DefaultSpeed  = 50

	PlayerX       = 50
	PlayerW       = 45
	PlayerH       = 48
	PlayerDuckedH = 30

	MinObstacles = 16
	SpawnX       = 600 // right edge of the play field
	SpawnPitch   = 700
	BirdEvery    = 3
	BirdY        = 40

	CactusW = 32
	CactusH = 32
	BirdW   = 32
	BirdH   = 24
)
