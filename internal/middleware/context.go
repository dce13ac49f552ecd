package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vitalrecife/storefront/internal/session"
)

const (
	localSessionID  = "session_id"
	localController = "session"
)

// GetSessionID returns the session id set by LoadSession.
func GetSessionID(c *fiber.Ctx) uuid.UUID {
	if sid, ok := c.Locals(localSessionID).(uuid.UUID); ok {
		return sid
	}
	return uuid.Nil
}

// GetController returns the visitor's controller set by LoadSession.
func GetController(c *fiber.Ctx) *session.Controller {
	ctrl, _ := c.Locals(localController).(*session.Controller)
	return ctrl
}

// GetRequestID returns the id assigned by the requestid middleware.
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
