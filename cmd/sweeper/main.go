// Command sweeper removes aged notifications and stale verification
// codes. Run it periodically, e.g. from cron.
package main

import (
	"flag"
	"os"

	"github.com/cymate/backend/internal/repositories"
	"github.com/cymate/backend/internal/services"
	"github.com/cymate/backend/pkg/config"
	"github.com/rs/zerolog"
)

func main() {
	notificationDays := flag.Int("notification-days", services.DefaultNotificationRetentionDays, "delete notifications older than this many days")
	expiredHours := flag.Int("expired-hours", services.DefaultExpiredRetentionHours, "delete expired verification codes older than this many hours")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "sweeper").Logger()

	db, err := config.InitDB(config.Load(), &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.CloseDB()

	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	verificationRepo := repositories.NewPostgresVerificationRepository(db.Postgres)

	engine := services.NewNotificationEngine(notificationRepo, userRepo)
	verification := services.NewVerificationService(verificationRepo, nil)

	notificationsDeleted, err := engine.Cleanup(*notificationDays)
	if err != nil {
		logger.Fatal().Err(err).Msg("notification cleanup failed")
	}
	logger.Info().Int64("deleted", notificationsDeleted).Int("older_than_days", *notificationDays).Msg("notifications swept")

	codesDeleted, err := verification.Cleanup(*expiredHours)
	if err != nil {
		logger.Fatal().Err(err).Msg("verification code cleanup failed")
	}
	logger.Info().Int64("deleted", codesDeleted).Int("expired_older_than_hours", *expiredHours).Msg("verification codes swept")
}
