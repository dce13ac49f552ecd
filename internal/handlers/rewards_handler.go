package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitalrecife/storefront/internal/catalog"
	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/middleware"
	"github.com/vitalrecife/storefront/internal/pages"
	"github.com/vitalrecife/storefront/internal/services"
	"github.com/vitalrecife/storefront/internal/session"
)

type RewardsHandler struct {
	catalog  catalog.Provider
	siteURL  string
	renderer *Renderer
}

func NewRewardsHandler(cat catalog.Provider, siteURL string, renderer *Renderer) *RewardsHandler {
	return &RewardsHandler{catalog: cat, siteURL: siteURL, renderer: renderer}
}

// Claim moves a level-up reward into the cashback balance.
func (h *RewardsHandler) Claim(c *fiber.Ctx) error {
	level, err := c.ParamsInt("level")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid level",
		})
	}
	ctrl := middleware.GetController(c)
	if err := exposedOn(ctrl, pages.Gamification); err != nil {
		return respondError(c, err)
	}
	reward, err := ctrl.ClaimReward(level)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.renderer.Render(ctrl, nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ClaimResponse{Level: reward.Level, Cashback: reward.Cashback, Page: page})
}

// Collect credits a completed challenge.
func (h *RewardsHandler) Collect(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid challenge id",
		})
	}
	ctrl := middleware.GetController(c)
	if err := exposedOn(ctrl, pages.Gamification); err != nil {
		return respondError(c, err)
	}
	for _, ch := range h.catalog.Challenges() {
		if ch.ID != id {
			continue
		}
		if err := ctrl.CollectChallenge(ch); err != nil {
			return respondError(c, err)
		}
		return h.renderer.sendPage(c, fiber.StatusOK)
	}
	return respondError(c, session.ErrChallengeNotFound)
}

// Share returns the referral link and the social deep links.
func (h *RewardsHandler) Share(c *fiber.Ctx) error {
	u := middleware.GetController(c).Snapshot().User
	if u == nil {
		return respondError(c, session.ErrNoSession)
	}
	return c.JSON(services.BuildShareLinks(h.siteURL, u))
}
