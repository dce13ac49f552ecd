package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/middleware"
	"github.com/vitalrecife/storefront/internal/pages"
	"github.com/vitalrecife/storefront/internal/services"
	"github.com/vitalrecife/storefront/internal/views"
)

type ProfileHandler struct {
	authService *services.AuthService
	renderer    *Renderer
}

func NewProfileHandler(authService *services.AuthService, renderer *Renderer) *ProfileHandler {
	return &ProfileHandler{authService: authService, renderer: renderer}
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	ctrl := middleware.GetController(c)
	if err := exposedOn(ctrl, pages.Profile); err != nil {
		return respondError(c, err)
	}
	if err := services.ValidateProfile(&req); err != nil {
		return respondError(c, err)
	}
	err := ctrl.UpdateProfile(
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Email),
		strings.TrimSpace(req.Phone),
	)
	if err != nil {
		return respondError(c, err)
	}
	return h.renderer.sendPage(c, fiber.StatusOK)
}

func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	ctrl := middleware.GetController(c)
	if err := exposedOn(ctrl, pages.Profile); err != nil {
		return respondError(c, err)
	}
	if err := services.ValidatePasswordChange(&req); err != nil {
		return respondError(c, err)
	}
	hash, err := h.authService.HashPassword(req.NewPassword)
	if err != nil {
		return respondError(c, err)
	}
	if err := ctrl.ChangePassword(req.CurrentPassword, hash); err != nil {
		return respondError(c, err)
	}
	return h.renderer.sendPage(c, fiber.StatusOK)
}

var preferenceNotices = map[string]string{
	"notifications": "Preferências de notificação atualizadas!",
	"privacy":       "Configurações de privacidade atualizadas!",
}

func (h *ProfileHandler) SetPreference(c *fiber.Ctx) error {
	var req dto.PreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	ctrl := middleware.GetController(c)
	if err := exposedOn(ctrl, pages.Profile); err != nil {
		return respondError(c, err)
	}
	group := views.PreferenceGroup(req.Key)
	if group == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unknown preference",
		})
	}
	if err := ctrl.SetPreference(req.Key, req.Enabled, preferenceNotices[group]); err != nil {
		return respondError(c, err)
	}
	return h.renderer.sendPage(c, fiber.StatusOK)
}
