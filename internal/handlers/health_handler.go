package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalrecife/storefront/internal/database"
	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/session"
)

type HealthHandler struct {
	store *session.Store
}

func NewHealthHandler(store *session.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        database.Status(),
		Sessions:  h.store.Len(),
	})
}
