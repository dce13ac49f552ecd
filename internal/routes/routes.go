package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/vitalrecife/storefront/internal/config"
	"github.com/vitalrecife/storefront/internal/handlers"
	"github.com/vitalrecife/storefront/internal/middleware"
	"github.com/vitalrecife/storefront/internal/session"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	store *session.Store,
	sessionHandler *handlers.SessionHandler,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	rewardsHandler *handlers.RewardsHandler,
	cartHandler *handlers.CartHandler,
	healthHandler *handlers.HealthHandler,
	legalHandler *handlers.LegalHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Public
	api.Get("/health", healthHandler.Check)
	api.Get("/legal/terms", legalHandler.TermsOfUse)
	api.Get("/legal/privacy", legalHandler.PrivacyPolicy)

	// Session creation: 10 req/min per IP
	api.Post("/session", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), sessionHandler.Create)

	// Everything else needs a session token. Registered after the public
	// routes, whose handlers never call Next.
	s := api.Group("", middleware.SessionToken(cfg), middleware.LoadSession(store))

	s.Get("/page", sessionHandler.Page)
	s.Post("/navigate", sessionHandler.Navigate)
	s.Put("/page/local", sessionHandler.SetLocal)

	auth := s.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Get("/pending", authHandler.Pending)
	auth.Delete("/pending", authHandler.CancelPending)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/reset-password", authHandler.ResetPassword)

	s.Put("/profile", profileHandler.Update)
	s.Put("/profile/password", profileHandler.ChangePassword)
	s.Put("/profile/preferences", profileHandler.SetPreference)

	s.Post("/rewards/:level/claim", rewardsHandler.Claim)
	s.Post("/challenges/:id/collect", rewardsHandler.Collect)
	s.Get("/referral/share", rewardsHandler.Share)

	s.Post("/cart", cartHandler.Add)
	s.Post("/cart/checkout", cartHandler.Checkout)
}
