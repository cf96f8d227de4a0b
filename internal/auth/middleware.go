package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
)

// Locals keys set by the session middleware.
const (
	LocalProfileID = "profileID"
	LocalRole      = "role"
)

// Middleware authenticates a bearer token and checks it against the live
// session. A valid token for a logged-out or replaced session is rejected.
func Middleware(tokens *TokenService, session *identity.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		active, err := session.Active(c.UserContext())
		if err != nil || active.ID != claims.Subject {
			return fiber.NewError(fiber.StatusUnauthorized, "session not active")
		}
		c.Locals(LocalProfileID, claims.Subject)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireCreator gates a route on the creator role. Must run after
// Middleware.
func RequireCreator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(identity.Role)
		if role != identity.RoleCreator {
			return fiber.NewError(fiber.StatusForbidden, "creator role required")
		}
		return c.Next()
	}
}
