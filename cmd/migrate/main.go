package main

import (
	"os"

	"tourbook/config"
	"tourbook/helper"
	"tourbook/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()
	logger.InitLogger(cfg)

	cmd, err := helper.ParseCommand(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("Usage: migrate <up|down|step-up|drop|force <version>|version>")
	}

	status, err := helper.Run(cfg, cmd)
	if err != nil {
		log.Fatal().Err(err).Str("action", cmd.Action).Msg("Database migration failed")
	}

	if status.Dirty {
		log.Warn().Uint("version", status.Version).Msg("Schema is dirty, fix the failed migration and run force")
	}
}
