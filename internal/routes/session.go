package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
	"github.com/pluto-protocol/pluto_terminal/internal/view"
)

// RegisterSessionRoutes wires the active-session endpoints.
func RegisterSessionRoutes(r fiber.Router, session *identity.Store, router *view.Router) {
	r.Get("/me", func(c *fiber.Ctx) error {
		profile, err := session.Active(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "no active session")
		}
		return c.JSON(profile)
	})

	r.Post("/logout", func(c *fiber.Ctx) error {
		if err := session.Logout(c.UserContext()); err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		router.Reset(view.Landing)
		return c.JSON(fiber.Map{"status": "logged_out"})
	})
}
