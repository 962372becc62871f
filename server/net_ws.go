package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/srikavin/dino99/protocol"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
)

// ClientConn wraps one websocket. Writes go through a queue drained by
// writePump so a slow client never stalls a lobby tick.
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func NewClientConn(ws *websocket.Conn, queue int) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, queue),
		done: make(chan struct{}),
	}
}

// Enqueue queues b without blocking; when the queue is full b is dropped.
func (c *ClientConn) Enqueue(b []byte) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- b:
	default:
		Log.Warnw("send queue full, dropping message", "remote", c.ws.RemoteAddr().String())
	}
}

// Close shuts the connection down; both pumps exit.
func (c *ClientConn) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

func (c *ClientConn) invalid(reason string) {
	b, err := protocol.Encode(protocol.MsgInvalidMessage, protocol.InvalidMessage{Error: reason})
	if err != nil {
		return
	}
	c.Enqueue(b)
}

func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.Close()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes client messages until the connection fails. A connection
// joins at most one lobby and leaves it when the pump exits.
func (c *ClientConn) readPump(m *LobbyManager, id uuid.UUID) {
	var lobby *Lobby
	defer func() {
		if lobby != nil {
			lobby.Leave(id)
		}
		c.Close()
	}()

	c.ws.SetReadLimit(1 << 16)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			Log.Debugw("read ended", "player", id, "err", err)
			return
		}
		msg, err := protocol.DecodeClient(payload)
		if err != nil {
			Log.Debugw("invalid message", "player", id, "err", err)
			c.invalid(err.Error())
			continue
		}
		switch msg := msg.(type) {
		case protocol.JoinRequest:
			if lobby != nil {
				c.invalid("already in a lobby")
				continue
			}
			l, err := m.Join(msg.LobbyID, id, msg.Name, c)
			if errors.Is(err, ErrLobbyClosed) {
				b, _ := protocol.Encode(protocol.MsgJoinFailure, protocol.JoinFailure{Reason: err.Error()})
				c.Enqueue(b)
			}
			if err != nil {
				Log.Infow("join failed", "player", id, "lobby", msg.LobbyID, "err", err)
				continue
			}
			lobby = l
		case protocol.GameInput:
			if lobby == nil {
				c.invalid("not a player in a lobby")
				continue
			}
			lobby.SubmitInput(id, msg.Tick, msg.Input)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWS upgrades the request and serves one client. The client picks its
// lobby with a JoinRequest message.
func (m *LobbyManager) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnw("upgrade failed", "err", err)
		return
	}

	id := uuid.New()
	client := NewClientConn(ws, m.cfg.SendQueue)
	Log.Infow("client connected", "player", id, "remote", ws.RemoteAddr().String())

	go client.writePump()
	go client.readPump(m, id)
}
