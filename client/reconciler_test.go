package client

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/srikavin/dino99/game"
	"github.com/srikavin/dino99/protocol"
)

func envelope(t *testing.T, kind string, payload any) protocol.Envelope {
	t.Helper()
	b, err := protocol.Encode(kind, payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := protocol.DecodeEnvelope(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func handle(t *testing.T, r *Reconciler, kind string, payload any) {
	t.Helper()
	if err := r.Handle(envelope(t, kind, payload)); err != nil {
		t.Fatalf("handle %s: %v", kind, err)
	}
}

// joined returns a reconciler for self in an InPlay lobby with one remote.
func joined(t *testing.T) (*Reconciler, uuid.UUID, uuid.UUID) {
	t.Helper()
	self, remote := uuid.New(), uuid.New()
	r := NewReconciler(nil)
	handle(t, r, protocol.MsgJoinSuccess, protocol.JoinSuccess{
		PlayerID: self,
		Players:  []protocol.PlayerInfo{{Username: "me", ID: self}},
	})
	handle(t, r, protocol.MsgJoinEvent, protocol.JoinEvent{Player: protocol.PlayerInfo{Username: "them", ID: remote}})
	handle(t, r, protocol.MsgLobbyStateChange, protocol.LobbyStateChange{NewState: protocol.InPlay})
	return r, self, remote
}

func tickOf(t *testing.T, r *Reconciler, id uuid.UUID) uint64 {
	t.Helper()
	st, ok := r.State(id)
	if !ok {
		t.Fatalf("no state for %s", id)
	}
	return st.Tick
}

func TestJoinCreatesStatesForRoster(t *testing.T) {
	r, self, remote := joined(t)
	if id, ok := r.Self(); !ok || id != self {
		t.Fatalf("self = %s, %v", id, ok)
	}
	if got := r.Players(); len(got) != 2 || got[0] != self || got[1] != remote {
		t.Fatalf("players = %v", got)
	}
	if r.Phase() != protocol.InPlay {
		t.Fatalf("phase = %v", r.Phase())
	}
}

func TestTickEventSkipsSelf(t *testing.T) {
	r, self, remote := joined(t)
	handle(t, r, protocol.MsgTickEvent, protocol.TickEvent{
		Tick:    0,
		Players: []protocol.TickInput{{ID: self, Input: game.InputJump}, {ID: remote, Input: game.InputJump}},
	})
	if tickOf(t, r, self) != 0 {
		t.Fatalf("own state advanced by a tick event")
	}
	st, _ := r.State(remote)
	if st.Tick != 1 || st.Player.JumpTick != 2 {
		t.Fatalf("remote = tick %d %+v, want a jump at tick 0", st.Tick, st.Player)
	}
}

func TestTickEventDefaultsMissingPlayersToNone(t *testing.T) {
	r, _, remote := joined(t)
	handle(t, r, protocol.MsgTickEvent, protocol.TickEvent{Tick: 0})
	handle(t, r, protocol.MsgTickEvent, protocol.TickEvent{Tick: 1})

	want := game.NewState()
	game.Step(want, game.InputNone)
	game.Step(want, game.InputNone)
	got, _ := r.State(remote)
	if got.Tick != 2 || got.Player != want.Player || len(got.Obstacles) != len(want.Obstacles) {
		t.Fatalf("remote = %+v, want %+v", got, want)
	}
}

func TestTickEventAdvancesAtMostOnce(t *testing.T) {
	r, _, remote := joined(t)
	ev := protocol.TickEvent{Tick: 0, Players: []protocol.TickInput{{ID: remote, Input: game.InputDuck}}}
	handle(t, r, protocol.MsgTickEvent, ev)
	handle(t, r, protocol.MsgTickEvent, ev)
	if got := tickOf(t, r, remote); got != 1 {
		t.Fatalf("remote tick = %d after a duplicate event, want 1", got)
	}
}

func TestPredictTagsPreStepTick(t *testing.T) {
	r, self, _ := joined(t)
	if _, ok := r.Predict(game.InputNone); ok {
		t.Fatalf("InputNone must not be sent")
	}
	msg, ok := r.Predict(game.InputDuck)
	if !ok || msg.Tick != 1 || msg.Input != game.InputDuck {
		t.Fatalf("predict = %+v, %v", msg, ok)
	}
	st, _ := r.State(self)
	if st.Tick != 2 || !st.Player.Ducked {
		t.Fatalf("own state = tick %d %+v", st.Tick, st.Player)
	}
}

func TestPredictOnlyWhileInPlay(t *testing.T) {
	self := uuid.New()
	r := NewReconciler(nil)
	if _, ok := r.Predict(game.InputJump); ok {
		t.Fatalf("predicted before joining")
	}
	handle(t, r, protocol.MsgJoinSuccess, protocol.JoinSuccess{PlayerID: self, Players: []protocol.PlayerInfo{{ID: self}}})
	if _, ok := r.Predict(game.InputJump); ok {
		t.Fatalf("predicted while waiting")
	}
	if tickOf(t, r, self) != 0 {
		t.Fatalf("own state advanced while waiting")
	}
	handle(t, r, protocol.MsgLobbyStateChange, protocol.LobbyStateChange{NewState: protocol.Ended})
	if _, ok := r.Predict(game.InputJump); ok {
		t.Fatalf("predicted after the lobby ended")
	}
}

func TestServerErrorsAreReturned(t *testing.T) {
	r := NewReconciler(nil)
	err := r.Handle(envelope(t, protocol.MsgJoinFailure, protocol.JoinFailure{Reason: "lobby already started"}))
	if !errors.Is(err, ErrJoinFailed) {
		t.Fatalf("err = %v, want ErrJoinFailed", err)
	}
	err = r.Handle(envelope(t, protocol.MsgInvalidMessage, protocol.InvalidMessage{Error: "nope"}))
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
	err = r.Handle(envelope(t, "Teleport", struct{}{}))
	if !errors.Is(err, protocol.ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}
