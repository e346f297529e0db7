package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/bot"
	"github.com/domino14/connect4/config"
)

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := bot.NewBot(cfg)
	if err := bot.Main(ctx, cfg.GetString(config.ConfigNatsChannel), b); err != nil {
		log.Fatal().Err(err).Msg("bot-exited")
	}
	log.Info().Msg("bot gracefully shutting down")
}
