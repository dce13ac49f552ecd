package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalrecife/storefront/internal/catalog"
	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/loyalty"
	"github.com/vitalrecife/storefront/internal/middleware"
	"github.com/vitalrecife/storefront/internal/pages"
	"github.com/vitalrecife/storefront/internal/services"
	"github.com/vitalrecife/storefront/internal/session"
	"github.com/vitalrecife/storefront/internal/views"
)

var (
	errNotExposed = errors.New("action not available on this page")
	errBadBody    = errors.New("invalid request body")
)

// exposedOn fails unless the session is showing the page that offers the
// action.
func exposedOn(ctrl *session.Controller, page pages.ID) error {
	if ctrl.Resolve() != page {
		return errNotExposed
	}
	return nil
}

// viewParams are the query parameters a page render accepts.
var viewParams = []string{"tab", "category", "image", "qty"}

// Renderer turns a controller into the page payload sent to the client.
type Renderer struct {
	Catalog  catalog.Provider
	Markdown *catalog.Markdown
	SiteURL  string
	Intn     func(n int) int
}

func NewRenderer(cat catalog.Provider, siteURL string) *Renderer {
	return &Renderer{
		Catalog:  cat,
		Markdown: catalog.NewMarkdown(),
		SiteURL:  siteURL,
		Intn:     rand.IntN,
	}
}

// Render builds the current page and hands over the queued notices.
func (r *Renderer) Render(ctrl *session.Controller, params map[string]string) (views.Page, error) {
	page, err := views.Render(views.Input{
		Session:  ctrl.Snapshot(),
		Catalog:  r.Catalog,
		Markdown: r.Markdown,
		SiteURL:  r.SiteURL,
		Params:   params,
		Intn:     r.Intn,
	})
	if err != nil {
		return views.Page{}, err
	}
	page.Notices = ctrl.DrainNotices()
	return page, nil
}

func queryParams(c *fiber.Ctx) map[string]string {
	params := make(map[string]string, len(viewParams))
	for _, k := range viewParams {
		if v := c.Query(k); v != "" {
			params[k] = v
		}
	}
	return params
}

// sendPage renders the current page with the given status.
func (r *Renderer) sendPage(c *fiber.Ctx, status int) error {
	ctrl := middleware.GetController(c)
	page, err := r.Render(ctrl, queryParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(page)
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}

// respondError maps domain errors onto HTTP responses. Form errors carry
// the notice the visitor should see.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errBadBody):
		return badRequest(c)
	case services.IsValidationError(err):
		n := session.NewNotice(session.NoticeError, services.NoticeMessage(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error:   true,
			Message: n.Message,
			Notice:  &dto.Notice{ID: n.ID, Kind: string(n.Kind), Message: n.Message},
		})
	case errors.Is(err, session.ErrTaskInFlight),
		errors.Is(err, session.ErrChallengeOpen),
		errors.Is(err, session.ErrChallengeTaken),
		errors.Is(err, catalog.ErrOutOfStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, errNotExposed):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: "Action not available on this page"})
	case errors.Is(err, session.ErrNoSession):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: "Login required"})
	case errors.Is(err, session.ErrClosed):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Session expired"})
	case errors.Is(err, loyalty.ErrRewardNotFound),
		errors.Is(err, session.ErrChallengeNotFound),
		errors.Is(err, catalog.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}

	slog.Error("request failed",
		"session_id", middleware.GetSessionID(c).String(),
		"request_id", middleware.GetRequestID(c),
		"action", c.Method()+" "+c.Path(),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
