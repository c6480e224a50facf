package router

import (
	"fmt"

	"github.com/cymate/backend/internal/handlers"
	appmiddleware "github.com/cymate/backend/internal/middleware"
	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/repositories"
	"github.com/cymate/backend/internal/services"
	"github.com/cymate/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const mongoDatabase = "cymate"

// SetupMiddleware attaches the global middleware stack
func SetupMiddleware(e *echo.Echo, logger *zerolog.Logger) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
}

// SetupRoutes migrates the relational schema and wires repositories,
// services and handlers onto the echo instance.
func SetupRoutes(e *echo.Echo, db *config.DB, cfg *config.Config, mail services.MailGateway) error {
	if err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.React{},
		&models.Comment{},
		&models.Share{},
		&models.SavedPost{},
		&models.Follow{},
		&models.Notification{},
		&models.EmailVerification{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	mongoDB := db.Mongo.Database(mongoDatabase)

	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	reactRepo := repositories.NewPostgresReactRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	shareRepo := repositories.NewPostgresShareRepository(db.Postgres)
	savedRepo := repositories.NewPostgresSavedPostRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	verificationRepo := repositories.NewPostgresVerificationRepository(db.Postgres)

	engine := services.NewNotificationEngine(notificationRepo, userRepo)
	verification := services.NewVerificationService(verificationRepo, mail)

	authHandler := handlers.NewAuthHandler(userRepo, verification, cfg.JWTSecret)
	verificationHandler := handlers.NewVerificationHandler(verification, userRepo, cfg.TokenSecret)
	userHandler := handlers.NewUserHandler(userRepo)
	postHandler := handlers.NewPostHandler(postRepo, savedRepo)
	reactHandler := handlers.NewReactHandler(reactRepo, postRepo, engine)
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, engine)
	shareHandler := handlers.NewShareHandler(shareRepo, postRepo, engine)
	savedHandler := handlers.NewSavedPostHandler(savedRepo, postRepo)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, engine)
	feedHandler := handlers.NewFeedHandler(postRepo, followRepo)
	notificationHandler := handlers.NewNotificationHandler(engine)

	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api/v1")

	authHandler.RegisterAuthRoutes(api.Group("/auth"))
	verificationHandler.RegisterVerificationRoutes(api.Group("/email-verification"))

	protected := api.Group("", appmiddleware.JWTAuthMiddleware(cfg.JWTSecret))

	users := protected.Group("/users")
	userHandler.RegisterUserRoutes(users)
	followHandler.RegisterFollowRoutes(users)

	posts := protected.Group("/posts")
	postHandler.RegisterPostRoutes(posts)
	reactHandler.RegisterReactRoutes(posts)
	commentHandler.RegisterCommentRoutes(posts)
	shareHandler.RegisterShareRoutes(posts)
	savedHandler.RegisterSavedPostRoutes(posts)

	feedHandler.RegisterFeedRoutes(protected.Group("/feed"))
	notificationHandler.RegisterNotificationRoutes(protected.Group("/notifications"))

	return nil
}
