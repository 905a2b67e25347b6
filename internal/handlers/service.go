package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/nearhood/nearhood-backend/internal/apperr"
	"github.com/nearhood/nearhood-backend/internal/models"
	"github.com/nearhood/nearhood-backend/internal/storage"
)

// ServiceHandler handles service listing requests.
type ServiceHandler struct {
	store storage.Store
}

// NewServiceHandler creates a new service handler.
func NewServiceHandler(store storage.Store) *ServiceHandler {
	return &ServiceHandler{store: store}
}

// CreateService lists a new offering. The owner reference is not checked
// against existing users.
func (h *ServiceHandler) CreateService(c *fiber.Ctx) error {
	var svc models.Service
	if err := c.BodyParser(&svc); err != nil {
		return respondError(c, apperr.ErrInvalidInput)
	}

	if svc.Title == "" || svc.Description == "" || svc.Category == "" || svc.OfferedByUserID == "" {
		return respondError(c, fmt.Errorf("title, description, category and offered_by_user_id are required: %w", apperr.ErrValidationError))
	}
	if svc.Price <= 0 {
		return respondError(c, fmt.Errorf("price must be greater than zero: %w", apperr.ErrValidationError))
	}

	created, err := h.store.CreateService(&svc)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Service listed successfully",
		"service": created,
	})
}

// ListServices returns every listed service.
func (h *ServiceHandler) ListServices(c *fiber.Ctx) error {
	services, err := h.store.ListServices()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"services": services,
		"count":    len(services),
	})
}
