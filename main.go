package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srikavin/dino99/server"
)

// dino99 server: HTTP + WebSocket endpoint hosting two-player lobbies.
func main() {
	var (
		addr       string
		configPath string
	)
	flag.StringVar(&addr, "addr", "", "server listen address, e.g. :8080 (overrides the config file)")
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if err := server.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lm := server.NewLobbyManager(ctx, cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", lm.HandleWS)
	mux.HandleFunc("/admin/lobbies", lm.HandleLobbies)
	mux.HandleFunc("/metrics", lm.HandleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		server.Log.Infow("dino99 listening", "addr", cfg.Addr, "tick", cfg.TickInterval, "start_delay", cfg.StartDelayTicks)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	server.Log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	lm.Shutdown()
}
