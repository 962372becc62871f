package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/srikavin/dino99/client"
)

// dinobot joins a lobby and plays on its own. Run two of them against the
// same lobby to start a match.
func main() {
	var (
		url   string
		name  string
		lobby string
		tick  time.Duration
		idle  bool
		quit  bool
	)
	flag.StringVar(&url, "url", "ws://localhost:8080/ws", "server websocket url")
	flag.StringVar(&name, "name", "dinobot", "player name")
	flag.StringVar(&lobby, "lobby", "lobby", "lobby to join")
	flag.DurationVar(&tick, "tick", 50*time.Millisecond, "tick interval, must match the server")
	flag.BoolVar(&idle, "idle", false, "never press anything")
	flag.BoolVar(&quit, "quit-on-crash", true, "exit once the bot crashed")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar().With("bot", name)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := client.Dial(ctx, url, tick, log)
	if err != nil {
		log.Fatalw("connect", "err", err)
	}
	defer s.Close()
	s.StopWhenDead = quit

	if err := s.Join(name, lobby); err != nil {
		log.Fatalw("join", "err", err)
	}

	var src client.InputSource = client.Autopilot{}
	if idle {
		src = client.Idle{}
	}
	err = s.Run(ctx, src)

	if self, ok := s.Reconciler().Self(); ok {
		if st, ok := s.Reconciler().State(self); ok {
			log.Infow("final state", "tick", st.Tick, "score", st.Score, "crashed", st.GameOver)
		}
	}
	if err != nil && ctx.Err() == nil {
		log.Errorw("session ended", "err", err)
		os.Exit(1)
	}
}
