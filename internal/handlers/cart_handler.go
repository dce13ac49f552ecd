package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalrecife/storefront/internal/catalog"
	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/middleware"
	"github.com/vitalrecife/storefront/internal/models"
	"github.com/vitalrecife/storefront/internal/pages"
	"github.com/vitalrecife/storefront/internal/session"
)

// CartHandler acknowledges cart actions. Nothing is ordered or charged.
type CartHandler struct {
	catalog  catalog.Provider
	renderer *Renderer
}

func NewCartHandler(cat catalog.Provider, renderer *Renderer) *CartHandler {
	return &CartHandler{catalog: cat, renderer: renderer}
}

// product parses the request and looks up a product that can actually be
// bought, capping the quantity at the stock on hand.
func (h *CartHandler) product(c *fiber.Ctx) (models.Product, int, error) {
	var req dto.CartRequest
	if err := c.BodyParser(&req); err != nil {
		return models.Product{}, 0, errBadBody
	}
	if err := exposedOn(middleware.GetController(c), pages.Product); err != nil {
		return models.Product{}, 0, err
	}
	p, err := h.catalog.Product(req.ProductID)
	if err != nil {
		return models.Product{}, 0, err
	}
	if p.Stock <= 0 {
		return models.Product{}, 0, catalog.ErrOutOfStock
	}
	return p, catalog.ClampQuantity(req.Quantity, p.Stock), nil
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	p, qty, err := h.product(c)
	if err != nil {
		return respondError(c, err)
	}
	middleware.GetController(c).Notify(session.NoticeSuccess,
		fmt.Sprintf("%dx %s adicionado ao carrinho!", qty, p.Name))
	return h.renderer.sendPage(c, fiber.StatusOK)
}

// Checkout sends anonymous visitors to the login page first.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	if _, _, err := h.product(c); err != nil {
		return respondError(c, err)
	}
	ctrl := middleware.GetController(c)
	if ctrl.Snapshot().User == nil {
		ctrl.Notify(session.NoticeInfo, "Faça login para finalizar a compra")
		ctrl.Navigate(pages.Login, nil)
		return h.renderer.sendPage(c, fiber.StatusOK)
	}
	ctrl.Notify(session.NoticeSuccess, "Redirecionando para pagamento...")
	return h.renderer.sendPage(c, fiber.StatusOK)
}
