package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/nearhood/nearhood-backend/database"
	"github.com/nearhood/nearhood-backend/internal/auth"
	"github.com/nearhood/nearhood-backend/internal/config"
	"github.com/nearhood/nearhood-backend/internal/jobs"
	"github.com/nearhood/nearhood-backend/internal/models"
	"github.com/nearhood/nearhood-backend/internal/observability"
	"github.com/nearhood/nearhood-backend/internal/routes"
	"github.com/nearhood/nearhood-backend/internal/services"
	"github.com/nearhood/nearhood-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatal("failed to build logger: ", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize storage
	var store storage.Store
	storageType := "postgres"
	if cfg.App.UseMemoryStore {
		logger.Warn("using in-memory storage (not for production)")
		store = storage.NewMemoryStore()
		storageType = "memory"
	} else {
		db, err := database.Connect(cfg.DB, logger)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}

		if err := db.AutoMigrate(
			&models.User{},
			&models.OtpVerification{},
			&models.Service{},
		); err != nil {
			logger.Fatal("database migration failed", zap.Error(err))
		}
		logger.Info("database migrations completed")

		store = storage.NewDatabaseStore(db)
	}

	// SMS delivery: Twilio when configured, log-only otherwise.
	var notifier services.Notifier
	if cfg.Twilio.Configured() {
		twilioNotifier, err := services.NewTwilioNotifier(cfg.Twilio, logger)
		if err != nil {
			logger.Fatal("failed to initialize Twilio", zap.Error(err))
		}
		notifier = twilioNotifier
		logger.Info("twilio notifier initialized")
	} else {
		notifier = services.NewLogNotifier(logger)
		logger.Warn("twilio credentials not found, otp codes will only be logged")
	}

	otpService := services.NewOTPService(store, notifier, cfg.OTP.TTL, cfg.OTP.EchoCode, logger)
	authService := services.NewAuthService(store, logger)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	cleanupJob := jobs.NewOTPCleanupJob(store, cfg.OTP.SweepInterval, logger)
	cleanupJob.Start()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	routes.SetupRoutes(app, routes.Deps{
		Store:       store,
		OTP:         otpService,
		Auth:        authService,
		Tokens:      tokens,
		StorageType: storageType,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("shutting down")
		cleanupJob.Stop()
		_ = app.Shutdown()
	}()

	logger.Info("server starting",
		zap.String("port", cfg.App.Port),
		zap.String("env", cfg.App.Env),
		zap.String("storage", storageType),
		zap.Bool("otp_echo", cfg.OTP.EchoCode),
	)

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
