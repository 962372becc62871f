package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srikavin/dino99/game"
	"github.com/srikavin/dino99/protocol"
)

const lobbySize = 2

var (
	ErrLobbyFull     = errors.New("lobby already started")
	ErrLobbyClosed   = errors.New("lobby closed")
	ErrAlreadyJoined = errors.New("already in the lobby")
)

// Lobby runs one match. All of its state is owned by the goroutine in Run;
// other goroutines talk to it through the inbox.
type Lobby struct {
	Name string
	// OnEmpty is called from the lobby goroutine after the last player left
	// and the lobby stopped.
	OnEmpty func(l *Lobby)

	cfg     Config
	log     *zap.SugaredLogger
	metrics *LobbyMetrics

	inbox    chan any
	quit     chan struct{}
	stopOnce sync.Once

	state   protocol.LobbyState
	players map[uuid.UUID]*Player
	order   []uuid.UUID // join order; ticks and rosters follow it
	tick    uint64
	delay   uint64
}

type joinCmd struct {
	id    uuid.UUID
	name  string
	conn  Sender
	reply chan<- error
}

type inputCmd struct {
	id    uuid.UUID
	tick  uint64
	input game.Input
}

type leaveCmd struct {
	id uuid.UUID
}

type infoCmd struct {
	reply chan<- LobbyInfo
}

// LobbyInfo is a point-in-time view of a lobby for the admin API.
type LobbyInfo struct {
	Name    string              `json:"name"`
	State   protocol.LobbyState `json:"state"`
	Tick    uint64              `json:"tick"`
	Delay   uint64              `json:"start_delay_left"`
	Players []PlayerSummary     `json:"players"`
}

func NewLobby(name string, cfg Config) *Lobby {
	return &Lobby{
		Name:    name,
		cfg:     cfg,
		log:     Log.With("lobby", name),
		metrics: &LobbyMetrics{},
		inbox:   make(chan any, cfg.InboxSize),
		quit:    make(chan struct{}),
		state:   protocol.Waiting,
		players: make(map[uuid.UUID]*Player),
	}
}

func (l *Lobby) Metrics() *LobbyMetrics { return l.metrics }

// Stop ends Run. It is safe to call more than once.
func (l *Lobby) Stop() {
	l.stopOnce.Do(func() { close(l.quit) })
}

// Join adds a player and waits for the lobby to accept or refuse it.
func (l *Lobby) Join(id uuid.UUID, name string, conn Sender) error {
	reply := make(chan error, 1)
	select {
	case l.inbox <- joinCmd{id: id, name: name, conn: conn, reply: reply}:
	case <-l.quit:
		return ErrLobbyClosed
	}
	select {
	case err := <-reply:
		return err
	case <-l.quit:
		return ErrLobbyClosed
	}
}

// SubmitInput queues an input without blocking. When the inbox is full the
// input is dropped; the tick it was meant for will use game.InputNone.
func (l *Lobby) SubmitInput(id uuid.UUID, tick uint64, in game.Input) {
	select {
	case l.inbox <- inputCmd{id: id, tick: tick, input: in}:
	default:
		l.metrics.IncInboxFull()
	}
}

// Leave removes a disconnected player.
func (l *Lobby) Leave(id uuid.UUID) {
	select {
	case l.inbox <- leaveCmd{id: id}:
	case <-l.quit:
	}
}

// Info returns a snapshot of the lobby, or false if it already stopped.
func (l *Lobby) Info() (LobbyInfo, bool) {
	reply := make(chan LobbyInfo, 1)
	select {
	case l.inbox <- infoCmd{reply: reply}:
	case <-l.quit:
		return LobbyInfo{}, false
	}
	select {
	case info := <-reply:
		return info, true
	case <-l.quit:
		return LobbyInfo{}, false
	}
}

func (l *Lobby) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case joinCmd:
		c.reply <- l.join(c.id, c.name, c.conn)
	case inputCmd:
		l.submitInput(c.id, c.tick, c.input)
	case leaveCmd:
		l.leave(c.id)
	case infoCmd:
		c.reply <- l.info()
	default:
		l.log.Errorf("unexpected command %T", cmd)
	}
}

func (l *Lobby) join(id uuid.UUID, name string, conn Sender) error {
	if l.state != protocol.Waiting {
		l.log.Infow("join refused", "player", id, "name", name, "state", l.state)
		l.send(conn, protocol.MsgJoinFailure, protocol.JoinFailure{Reason: ErrLobbyFull.Error()})
		return ErrLobbyFull
	}
	if _, ok := l.players[id]; ok {
		return ErrAlreadyJoined
	}
	if name == "" {
		name = fmt.Sprintf("Player %d", len(l.order)+1)
	}

	p := newPlayer(id, name, conn)
	l.players[id] = p
	l.order = append(l.order, id)
	l.log.Infow("player joined", "player", id, "name", name, "players", len(l.order))

	l.send(conn, protocol.MsgJoinSuccess, protocol.JoinSuccess{PlayerID: id, Players: l.roster()})
	l.broadcastExcept(id, protocol.MsgJoinEvent, protocol.JoinEvent{Player: p.Info})

	if len(l.players) == lobbySize {
		l.start()
	}
	return nil
}

func (l *Lobby) start() {
	if l.state != protocol.Waiting {
		return
	}
	l.state = protocol.InPlay
	l.delay = l.cfg.StartDelayTicks
	l.log.Infow("lobby in play", "start_delay", l.delay)
	l.broadcast(protocol.MsgLobbyStateChange, protocol.LobbyStateChange{NewState: protocol.InPlay})
}

// submitInput buffers an input for a future tick. Inputs from strangers and
// inputs older than the player's next expected tick are dropped without a
// reply.
func (l *Lobby) submitInput(id uuid.UUID, tick uint64, in game.Input) {
	p, ok := l.players[id]
	if !ok {
		l.metrics.IncUnknownPlayer()
		l.log.Debugw("input from non-participant", "player", id)
		return
	}
	if next := p.Inputs.NextExpected(p.State.Tick); tick < next {
		l.metrics.IncStale()
		l.log.Debugw("stale input", "player", id, "tick", tick, "expected", next)
		return
	}
	p.Inputs.Put(tick, in)
	l.metrics.IncAccepted()
}

func (l *Lobby) leave(id uuid.UUID) {
	if _, ok := l.players[id]; !ok {
		return
	}
	delete(l.players, id)
	for i, pid := range l.order {
		if pid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.log.Infow("player left", "player", id, "players", len(l.order))

	if l.state == protocol.InPlay {
		l.state = protocol.Ended
		l.log.Infow("lobby ended", "tick", l.tick)
		l.broadcast(protocol.MsgLobbyStateChange, protocol.LobbyStateChange{NewState: protocol.Ended})
	}
	if len(l.players) == 0 {
		l.Stop()
		if l.OnEmpty != nil {
			l.OnEmpty(l)
		}
	}
}

func (l *Lobby) roster() []protocol.PlayerInfo {
	out := make([]protocol.PlayerInfo, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.players[id].Info)
	}
	return out
}

func (l *Lobby) info() LobbyInfo {
	info := LobbyInfo{
		Name:    l.Name,
		State:   l.state,
		Tick:    l.tick,
		Delay:   l.delay,
		Players: make([]PlayerSummary, 0, len(l.order)),
	}
	for _, id := range l.order {
		p := l.players[id]
		info.Players = append(info.Players, PlayerSummary{
			PlayerInfo: p.Info,
			Tick:       p.State.Tick,
			Score:      p.State.Score,
			Buffered:   p.Inputs.Len(),
		})
	}
	return info
}

func (l *Lobby) send(conn Sender, t string, payload any) {
	if conn == nil {
		return
	}
	b, err := protocol.Encode(t, payload)
	if err != nil {
		l.log.Errorw("encode failed", "type", t, "err", err)
		return
	}
	conn.Enqueue(b)
}

func (l *Lobby) broadcast(t string, payload any) {
	l.broadcastExcept(uuid.Nil, t, payload)
}

func (l *Lobby) broadcastExcept(skip uuid.UUID, t string, payload any) {
	b, err := protocol.Encode(t, payload)
	if err != nil {
		l.log.Errorw("encode failed", "type", t, "err", err)
		return
	}
	for _, id := range l.order {
		if id == skip {
			continue
		}
		if p := l.players[id]; p.Conn != nil {
			p.Conn.Enqueue(b)
		}
	}
}
