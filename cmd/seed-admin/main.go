package main

import (
	"context"
	"net/http"

	"tourbook/config"
	"tourbook/di"
	"tourbook/internal/domains/user/model/dto"
	"tourbook/shared/constant"
	"tourbook/shared/failure"
	"tourbook/shared/logger"
	"tourbook/shared/validator"

	"github.com/rs/zerolog/log"
)

// seed-admin creates the first admin account from SEED_ADMIN_*. Running it
// again once the account exists is a no-op.
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	req := dto.CreateUserRequest{
		Username: cfg.Seed.Admin.Username,
		Email:    cfg.Seed.Admin.Email,
		Password: cfg.Seed.Admin.Password,
		Role:     constant.RoleAdmin,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		log.Fatal().Err(err).Msg("Invalid SEED_ADMIN_* configuration")
	}

	users := di.InitializeUserService()

	id, err := users.Create(context.Background(), req)
	if err != nil {
		if failure.GetCode(err) == http.StatusBadRequest {
			log.Info().Str("email", req.Email).Msg("Admin account already exists")

			return
		}

		log.Fatal().Err(err).Msg("Failed to create admin account")
	}

	log.Info().Str("id", id).Str("email", req.Email).Msg("Admin account created")
}
