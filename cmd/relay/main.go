package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lunafay/turntable/config"
	"github.com/lunafay/turntable/relay"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.GetLogLevel()}))
	slog.SetDefault(logger)

	if cfg.Relay.PlayerWsURL == "" {
		log.Fatal("Value for PLAYER_WS_URL must be provided")
	}
	if cfg.Relay.ApiURL == "" {
		log.Fatal("Value for API_URL must be provided")
	}
	if cfg.Relay.Token == "" {
		log.Fatal("Value for RELAY_TOKEN must be provided")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := relay.New(cfg.Relay, &http.Client{})

	if err := r.Run(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
