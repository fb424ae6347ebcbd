package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"wordimpostor/internal/config"
	"wordimpostor/internal/handlers"
	"wordimpostor/internal/room"
	"wordimpostor/internal/wordbank"
	"wordimpostor/internal/ws"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().Level(level)

	bank := wordbank.Default()
	if cfg.WordBankPath != "" {
		bank, err = wordbank.LoadFile(cfg.WordBankPath)
		if err != nil {
			log.Fatal().Str("path", cfg.WordBankPath).Err(err).Msg("loading word bank")
		}
	}
	log.Info().Int("categories", len(bank.Categories())).Msg("word bank loaded")

	registry := room.NewRegistry()
	coord := room.NewCoordinator(registry, bank, room.NewSeededRand(time.Now().UnixNano()), log)
	hub := ws.NewHub(coord, log)
	router := handlers.New(coord, hub, cfg.PublicURL, log).Router()

	log.Info().Str("addr", cfg.Addr).Msg("server starting")
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
