// Package client keeps a client's view of a lobby in step with the server:
// it predicts the local player's state and replays the inputs the server
// announces for every other player.
package client

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srikavin/dino99/game"
	"github.com/srikavin/dino99/protocol"
)

var (
	ErrJoinFailed = errors.New("join failed")
	ErrRejected   = errors.New("server rejected message")
)

// Reconciler holds one game.State per player in the lobby. The local
// player's state only moves through Predict; remote states only move
// through TickEvents.
//
// There is no rollback: a local prediction is assumed to match what the
// server computes for the same inputs.
type Reconciler struct {
	mu  sync.Mutex
	log *zap.SugaredLogger

	self   uuid.UUID
	joined bool
	phase  protocol.LobbyState
	states map[uuid.UUID]*game.State
	order  []uuid.UUID
}

func NewReconciler(log *zap.SugaredLogger) *Reconciler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Reconciler{
		log:    log,
		phase:  protocol.Waiting,
		states: make(map[uuid.UUID]*game.State),
	}
}

// Handle applies one server message.
func (r *Reconciler) Handle(env protocol.Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch env.Type {
	case protocol.MsgJoinSuccess:
		msg, err := protocol.DecodePayload[protocol.JoinSuccess](env)
		if err != nil {
			return err
		}
		r.self = msg.PlayerID
		r.joined = true
		for _, p := range msg.Players {
			r.addPlayer(p.ID)
		}
		r.addPlayer(msg.PlayerID)
		r.log.Infow("joined lobby", "self", r.self, "players", len(r.order))
	case protocol.MsgJoinEvent:
		msg, err := protocol.DecodePayload[protocol.JoinEvent](env)
		if err != nil {
			return err
		}
		r.addPlayer(msg.Player.ID)
		r.log.Infow("player joined", "player", msg.Player.ID, "name", msg.Player.Username)
	case protocol.MsgLobbyStateChange:
		msg, err := protocol.DecodePayload[protocol.LobbyStateChange](env)
		if err != nil {
			return err
		}
		r.phase = msg.NewState
		r.log.Infow("lobby state changed", "state", msg.NewState)
	case protocol.MsgTickEvent:
		msg, err := protocol.DecodePayload[protocol.TickEvent](env)
		if err != nil {
			return err
		}
		r.applyTick(msg)
	case protocol.MsgJoinFailure:
		msg, err := protocol.DecodePayload[protocol.JoinFailure](env)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", ErrJoinFailed, msg.Reason)
	case protocol.MsgInvalidMessage:
		msg, err := protocol.DecodePayload[protocol.InvalidMessage](env)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", ErrRejected, msg.Error)
	default:
		return fmt.Errorf("%q: %w", env.Type, protocol.ErrUnknownKind)
	}
	return nil
}

func (r *Reconciler) addPlayer(id uuid.UUID) {
	if _, ok := r.states[id]; ok {
		return
	}
	r.states[id] = game.NewState()
	r.order = append(r.order, id)
}

// applyTick advances every remote player whose copy has not seen ev.Tick
// yet, using its announced input or game.InputNone when it is absent.
func (r *Reconciler) applyTick(ev protocol.TickEvent) {
	inputs := make(map[uuid.UUID]game.Input, len(ev.Players))
	for _, p := range ev.Players {
		inputs[p.ID] = p.Input
	}
	for _, id := range r.order {
		if r.joined && id == r.self {
			continue
		}
		st := r.states[id]
		if st.GameOver || st.Tick > ev.Tick {
			continue
		}
		if st.Tick < ev.Tick {
			r.log.Warnw("tick gap", "player", id, "local", st.Tick, "announced", ev.Tick)
		}
		game.Step(st, inputs[id])
	}
}

// Predict applies in to the local player right away and returns the message
// to send, tagged with the tick the input was applied at. Nothing is sent
// for game.InputNone, and nothing happens outside InPlay.
func (r *Reconciler) Predict(in game.Input) (protocol.GameInput, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.joined || r.phase != protocol.InPlay {
		return protocol.GameInput{}, false
	}
	st, ok := r.states[r.self]
	if !ok || st.GameOver {
		return protocol.GameInput{}, false
	}
	tick := st.Tick
	game.Step(st, in)
	if in == game.InputNone {
		return protocol.GameInput{}, false
	}
	return protocol.GameInput{Tick: tick, Input: in}, true
}

// Self returns the local player's id once the join succeeded.
func (r *Reconciler) Self() (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.self, r.joined
}

func (r *Reconciler) Phase() protocol.LobbyState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// State returns a copy of a player's state.
func (r *Reconciler) State(id uuid.UUID) (*game.State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[id]
	if !ok {
		return nil, false
	}
	return st.Clone(), true
}

// Players lists known player ids in the order they were learned.
func (r *Reconciler) Players() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uuid.UUID(nil), r.order...)
}
