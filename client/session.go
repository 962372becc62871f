package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/srikavin/dino99/protocol"
)

const writeWait = 5 * time.Second

// Session is one websocket connection to a dino99 server.
type Session struct {
	conn     *websocket.Conn
	rec      *Reconciler
	log      *zap.SugaredLogger
	interval time.Duration

	// StopWhenDead makes Run return once the local player crashed.
	StopWhenDead bool

	writeMu sync.Mutex
}

// Dial connects to url (e.g. ws://localhost:8080/ws). interval must match
// the server's tick interval.
func Dial(ctx context.Context, url string, interval time.Duration, log *zap.SugaredLogger) (*Session, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Session{
		conn:     conn,
		rec:      NewReconciler(log),
		log:      log,
		interval: interval,
	}, nil
}

func (s *Session) Reconciler() *Reconciler { return s.rec }

func (s *Session) Close() error { return s.conn.Close() }

// Join asks the server to put this client into lobby.
func (s *Session) Join(name, lobby string) error {
	return s.send(protocol.MsgJoinRequest, protocol.JoinRequest{Name: name, LobbyID: lobby})
}

func (s *Session) send(t string, payload any) error {
	b, err := protocol.Encode(t, payload)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, b)
}

// Run feeds server messages to the reconciler and, every interval, asks src
// for the local input, predicts it and sends it. It returns nil once the
// lobby has ended, or the error that stopped it.
func (s *Session) Run(ctx context.Context, src InputSource) error {
	errc := make(chan error, 1)
	go func() { errc <- s.readLoop() }()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = s.conn.Close()
			return ctx.Err()
		case err := <-errc:
			if s.rec.Phase() == protocol.Ended {
				return nil
			}
			return err
		case <-ticker.C:
			if s.rec.Phase() == protocol.Ended {
				_ = s.conn.Close()
				return nil
			}
			done, err := s.step(src)
			if err != nil {
				return err
			}
			if done {
				_ = s.conn.Close()
				return nil
			}
		}
	}
}

func (s *Session) step(src InputSource) (bool, error) {
	self, ok := s.rec.Self()
	if !ok {
		return false, nil
	}
	st, ok := s.rec.State(self)
	if !ok {
		return false, nil
	}
	if st.GameOver {
		return s.StopWhenDead, nil
	}
	msg, ok := s.rec.Predict(src.NextInput(st))
	if !ok {
		return false, nil
	}
	return false, s.send(protocol.MsgGameInput, msg)
}

func (s *Session) readLoop() error {
	for {
		_, b, err := s.conn.ReadMessage()
		if err != nil {
			return err
		}
		env, err := protocol.DecodeEnvelope(b)
		if err != nil {
			s.log.Warnw("undecodable server message", "err", err)
			continue
		}
		if err := s.rec.Handle(env); err != nil {
			if errors.Is(err, ErrJoinFailed) {
				return err
			}
			s.log.Warnw("server message", "type", env.Type, "err", err)
		}
	}
}
