package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nearhood/nearhood-backend/internal/auth"
	"github.com/nearhood/nearhood-backend/internal/handlers"
	"github.com/nearhood/nearhood-backend/internal/middleware"
	"github.com/nearhood/nearhood-backend/internal/services"
	"github.com/nearhood/nearhood-backend/internal/storage"
)

// Deps carries everything the route tree needs.
type Deps struct {
	Store       storage.Store
	OTP         *services.OTPService
	Auth        *services.AuthService
	Tokens      *auth.TokenManager
	StorageType string
}

// SetupRoutes configures all API routes.
func SetupRoutes(app *fiber.App, deps Deps) {
	authHandler := handlers.NewAuthHandler(deps.OTP, deps.Auth, deps.Tokens, deps.Store)
	userHandler := handlers.NewUserHandler(deps.Store)
	serviceHandler := handlers.NewServiceHandler(deps.Store)
	healthHandler := handlers.NewHealthHandler(deps.StorageType)

	app.Get("/health", healthHandler.Health)

	api := app.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/send-otp", authHandler.SendOTP)
	authGroup.Post("/verify-otp", authHandler.VerifyOTP)
	authGroup.Get("/me", middleware.RequireAuth(deps.Tokens), authHandler.Me)

	// User routes
	users := api.Group("/users")
	users.Get("/:id", userHandler.GetUser)
	users.Get("/:id/services", userHandler.GetUserServices)

	// Service routes
	servicesGroup := api.Group("/services")
	servicesGroup.Get("/", serviceHandler.ListServices)
	servicesGroup.Post("/", serviceHandler.CreateService)
}
