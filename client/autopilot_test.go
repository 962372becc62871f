package client

import (
	"testing"

	"github.com/srikavin/dino99/game"
)

func TestAutopilotSurvives(t *testing.T) {
	s := game.NewState()
	var pilot Autopilot
	for i := 0; i < 2000; i++ {
		game.Step(s, pilot.NextInput(s))
		if s.GameOver {
			t.Fatalf("autopilot crashed at tick %d: player %+v front %+v", s.Tick, s.Player, s.Obstacles[0])
		}
	}
}

func TestIdleCrashes(t *testing.T) {
	s := game.NewState()
	for i := 0; i < 100 && !s.GameOver; i++ {
		game.Step(s, Idle{}.NextInput(s))
	}
	if !s.GameOver {
		t.Fatalf("idle player survived 100 ticks")
	}
}
