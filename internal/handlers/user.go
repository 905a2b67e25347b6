package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nearhood/nearhood-backend/internal/apperr"
	"github.com/nearhood/nearhood-backend/internal/storage"
)

// UserHandler handles user lookup requests.
type UserHandler struct {
	store storage.Store
}

// NewUserHandler creates a new user handler.
func NewUserHandler(store storage.Store) *UserHandler {
	return &UserHandler{store: store}
}

// GetUser retrieves a user projection by ID.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondError(c, apperr.ErrInvalidInput)
	}

	user, err := h.store.GetUser(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetUserServices lists the services offered by one user.
func (h *UserHandler) GetUserServices(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondError(c, apperr.ErrInvalidInput)
	}

	services, err := h.store.ListServicesByUser(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"services": services,
		"count":    len(services),
	})
}
