package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/middleware"
	"github.com/vitalrecife/storefront/internal/pages"
	"github.com/vitalrecife/storefront/internal/services"
	"github.com/vitalrecife/storefront/internal/session"
	"github.com/vitalrecife/storefront/internal/views"
)

type AuthHandler struct {
	authService *services.AuthService
	renderer    *Renderer
}

func NewAuthHandler(authService *services.AuthService, renderer *Renderer) *AuthHandler {
	return &AuthHandler{authService: authService, renderer: renderer}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	ctrl := middleware.GetController(c)
	if err := exposedOn(ctrl, pages.Login); err != nil {
		return respondError(c, err)
	}
	p, err := ctrl.BeginLogin(&req)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondPending(c, p)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	ctrl := middleware.GetController(c)
	if err := exposedOn(ctrl, pages.Register); err != nil {
		return respondError(c, err)
	}
	p, err := ctrl.BeginRegister(&req)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondPending(c, p)
}

// respondPending answers 202 right away, or waits for the task when the
// client asked for ?wait=true.
func (h *AuthHandler) respondPending(c *fiber.Ctx, p *session.Pending) error {
	ctrl := middleware.GetController(c)
	status := fiber.StatusAccepted

	if c.QueryBool("wait") {
		err := p.Wait(c.UserContext())
		if err != nil && !errors.Is(err, session.ErrTaskDiscarded) && !errors.Is(err, context.Canceled) {
			return respondError(c, err)
		}
		status = fiber.StatusOK
	}

	page, err := h.renderer.Render(ctrl, nil)
	if err != nil {
		return respondError(c, err)
	}
	busy, kind := ctrl.Busy()
	return c.Status(status).JSON(dto.AuthResponse{
		Busy:    busy,
		Kind:    string(kind),
		Applied: p.Applied(),
		Page:    page,
	})
}

// Pending reports whether a submit is in flight.
func (h *AuthHandler) Pending(c *fiber.Ctx) error {
	busy, kind := middleware.GetController(c).Busy()
	return c.JSON(dto.PendingResponse{Busy: busy, Kind: string(kind)})
}

func (h *AuthHandler) CancelPending(c *fiber.Ctx) error {
	if !middleware.GetController(c).CancelPending() {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "No authentication request in progress",
		})
	}
	return c.JSON(dto.PendingResponse{})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	middleware.GetController(c).Logout()
	return h.renderer.sendPage(c, fiber.StatusOK)
}

// ResetPassword validates the address and mails a recovery link. The
// page switches to its sent state.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	ctrl := middleware.GetController(c)
	if err := exposedOn(ctrl, pages.ResetPassword); err != nil {
		return respondError(c, err)
	}
	if err := h.authService.ResetPassword(c.UserContext(), &req); err != nil {
		if services.IsValidationError(err) {
			return respondError(c, err)
		}
		slog.Error("password reset failed",
			"session_id", middleware.GetSessionID(c).String(),
			"request_id", middleware.GetRequestID(c),
			"page", "reset-password",
			"action", "reset_password",
			"error", err,
		)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Não foi possível enviar o e-mail. Tente novamente.",
		})
	}

	ctrl.SetLocal(views.LocalResetSentTo, strings.TrimSpace(req.Email))
	ctrl.Notify(session.NoticeSuccess, "E-mail de recuperação enviado!")
	return h.renderer.sendPage(c, fiber.StatusOK)
}
