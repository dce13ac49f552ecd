package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"github.com/vitalrecife/storefront/internal/config"
	"github.com/vitalrecife/storefront/internal/dto"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "vr_session"

// SessionToken verifies the session JWT from the Authorization header or
// the session cookie.
func SessionToken(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.SessionSecret)},
		TokenLookup: "header:Authorization,cookie:" + SessionCookie,
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired session token",
			})
		},
	})
}
