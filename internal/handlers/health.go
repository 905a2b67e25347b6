package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	storageType string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(storageType string) *HealthHandler {
	return &HealthHandler{storageType: storageType}
}

// Health returns the liveness payload used by deployment probes.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"storage": h.storageType,
	})
}
