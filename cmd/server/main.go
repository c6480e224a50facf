package main

import (
	"os"

	"github.com/cymate/backend/internal/router"
	"github.com/cymate/backend/pkg/config"
	"github.com/cymate/backend/pkg/mailer"
	"github.com/cymate/backend/pkg/validators"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()
	db, err := config.InitDB(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.CloseDB()

	mail := mailer.NewMailer(&logger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, &logger)
	if err := router.SetupRoutes(e, db, cfg, mail); err != nil {
		logger.Fatal().Err(err).Msg("failed to set up routes")
	}

	logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
