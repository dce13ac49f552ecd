package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/middleware"
	"github.com/vitalrecife/storefront/internal/pages"
	"github.com/vitalrecife/storefront/internal/services"
	"github.com/vitalrecife/storefront/internal/session"
)

// localKeys are the page-local entries a client may set.
var localKeys = map[string]bool{"tab": true, "category": true, "image": true, "qty": true}

type SessionHandler struct {
	store    *session.Store
	tokens   *services.TokenService
	renderer *Renderer
	secure   bool
}

func NewSessionHandler(store *session.Store, tokens *services.TokenService, renderer *Renderer, secure bool) *SessionHandler {
	return &SessionHandler{store: store, tokens: tokens, renderer: renderer, secure: secure}
}

// Create opens an anonymous session on the store front.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	sid, ctrl := h.store.Create()
	token, exp, err := h.tokens.Issue(sid)
	if err != nil {
		h.store.Delete(sid)
		return respondError(c, err)
	}

	page, err := h.renderer.Render(ctrl, nil)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{
		Token:     token,
		ExpiresAt: exp,
		Page:      page,
	})
}

// Page renders the page the session resolves to.
func (h *SessionHandler) Page(c *fiber.Ctx) error {
	return h.renderer.sendPage(c, fiber.StatusOK)
}

func (h *SessionHandler) Navigate(c *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	page, _ := pages.Parse(req.Page)
	middleware.GetController(c).Navigate(page, req.ProductID)
	return h.renderer.sendPage(c, fiber.StatusOK)
}

// SetLocal stores UI state of the current page such as the active tab.
func (h *SessionHandler) SetLocal(c *fiber.Ctx) error {
	var req dto.LocalStateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	if !localKeys[req.Key] || len(req.Value) > 64 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unsupported page state key",
		})
	}
	middleware.GetController(c).SetLocal(req.Key, req.Value)
	return h.renderer.sendPage(c, fiber.StatusOK)
}
