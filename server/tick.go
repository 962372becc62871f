package server

import (
	"context"
	"fmt"
	"time"

	"github.com/srikavin/dino99/game"
	"github.com/srikavin/dino99/protocol"
)

// Run is the lobby's only goroutine: it serves the inbox and fires onTick at
// cfg.TickInterval until Stop is called or ctx is done.
func (l *Lobby) Run(ctx context.Context) {
	defer l.Stop()
	ticker := time.NewTicker(l.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.quit:
			return
		case cmd := <-l.inbox:
			l.handleCommand(cmd)
		case <-ticker.C:
			start := time.Now()
			if l.onTick() {
				l.metrics.AddTick(time.Since(start).Nanoseconds())
			}
		}
	}
}

// onTick advances every player by one step using the input each of them
// scheduled for the lobby's current tick, then broadcasts the non-empty
// inputs. It reports whether a tick was simulated.
func (l *Lobby) onTick() bool {
	if l.state != protocol.InPlay {
		return false
	}
	if l.delay > 0 {
		l.delay--
		return false
	}

	tick := l.tick
	applied := make([]protocol.TickInput, 0, len(l.order))
	for _, id := range l.order {
		p := l.players[id]
		if !p.State.GameOver && p.State.Tick != tick {
			panic(fmt.Sprintf("lobby %s: player %s simulated to tick %d, lobby at %d", l.Name, id, p.State.Tick, tick))
		}

		in := p.Inputs.Resolve(tick)
		game.Step(p.State, in)
		if in != game.InputNone {
			applied = append(applied, protocol.TickInput{ID: id, Input: in})
		}

		if p.State.GameOver && p.Info.State == protocol.Playing {
			p.Info.State = protocol.Dead
			l.log.Infow("player crashed", "player", id, "tick", p.State.Tick, "score", p.State.Score)
		}
	}
	l.tick++

	l.broadcast(protocol.MsgTickEvent, protocol.TickEvent{Tick: tick, Players: applied})
	return true
}
