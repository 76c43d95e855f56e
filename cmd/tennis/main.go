package main

import (
	"flag"
	"os"

	"github.com/vladimirvolkov/tennis/internal/config"
	"github.com/vladimirvolkov/tennis/internal/desktop"
	"github.com/vladimirvolkov/tennis/internal/game"
	"github.com/vladimirvolkov/tennis/internal/logging"
	"github.com/vladimirvolkov/tennis/internal/telemetry"
)

func main() {
	configDir := flag.String("config", ".", "directory containing tennis.json")
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		boot := logging.New("info", logging.FormatConsole, os.Stderr)
		boot.Fatal().Err(err).Msg("config")
	}
	logCfg := config.Log()
	log := logging.New(logCfg.Level, logCfg.Format, os.Stderr)
	gameCfg := config.Game()

	recorder, err := telemetry.New(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("telemetry")
	}

	machine := game.NewMachine(game.NewRand(gameCfg.Seed))
	g := desktop.New(machine, [2]string{gameCfg.Player1, gameCfg.Player2}, recorder, log)

	log.Info().Int("tickRate", gameCfg.TickRate).Msg("opening window")
	if err := desktop.Run(g, gameCfg.TickRate); err != nil {
		log.Fatal().Err(err).Msg("desktop")
	}
}
