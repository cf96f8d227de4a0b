package view

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
)

// Handler exposes the navigation stack.
type Handler struct {
	router  *Router
	session *identity.Store
}

// NewHandler constructs a view handler.
func NewHandler(router *Router, session *identity.Store) *Handler {
	return &Handler{router: router, session: session}
}

// Navigate pushes a gated view onto the stack.
func (h *Handler) Navigate(c *fiber.Ctx) error {
	var req struct {
		View string `json:"view"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	target := View(req.View)
	if target == "" {
		return fiber.NewError(http.StatusBadRequest, "view is required")
	}

	var profile *identity.UserProfile
	if active, err := h.session.Active(c.UserContext()); err == nil {
		profile = &active
	}
	current := h.router.Navigate(Resolve(target, profile))
	return c.JSON(fiber.Map{"view": current, "depth": h.router.Depth()})
}

// Back pops the stack.
func (h *Handler) Back(c *fiber.Ctx) error {
	current := h.router.Back()
	return c.JSON(fiber.Map{"view": current, "depth": h.router.Depth()})
}

// Current reports the visible view.
func (h *Handler) Current(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"view": h.router.Current(), "depth": h.router.Depth()})
}
