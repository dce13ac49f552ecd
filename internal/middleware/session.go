package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/services"
	"github.com/vitalrecife/storefront/internal/session"
)

// LoadSession resolves the verified token to the visitor's controller.
// A session that expired server-side is reopened anonymous under the
// same id, so member pages fall back to the store front.
func LoadSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals("user").(*jwt.Token)
		sid, err := services.SessionID(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid session token",
			})
		}

		ctrl, ok := store.Get(sid)
		if !ok {
			ctrl = store.GetOrCreate(sid)
			slog.Debug("session reopened", "session_id", sid.String())
		}
		c.Locals(localSessionID, sid)
		c.Locals(localController, ctrl)
		return c.Next()
	}
}
