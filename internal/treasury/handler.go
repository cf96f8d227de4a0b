package treasury

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
)

// Handler exposes the creator treasury endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a treasury handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Directory lists drainable peers.
func (h *Handler) Directory(c *fiber.Ctx) error {
	peers, err := h.service.Directory(c.UserContext())
	if err != nil {
		return mapTreasuryError(err)
	}
	return c.JSON(fiber.Map{"peers": peers})
}

// Drain seizes a peer's wallet into the treasury.
func (h *Handler) Drain(c *fiber.Ctx) error {
	var req struct {
		PeerID string `json:"peerId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	profile, err := h.service.DrainPeer(c.UserContext(), req.PeerID)
	if err != nil {
		return mapTreasuryError(err)
	}
	return c.JSON(fiber.Map{
		"wallet":       profile.Wallet,
		"transactions": profile.Transactions,
	})
}

// Settle wires the treasury balance out.
func (h *Handler) Settle(c *fiber.Ctx) error {
	var req struct {
		Destination string `json:"destination"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	profile, err := h.service.Settle(c.UserContext(), req.Destination)
	if err != nil {
		return mapTreasuryError(err)
	}
	return c.JSON(fiber.Map{
		"wallet":       profile.Wallet,
		"transactions": profile.Transactions,
	})
}

// Publish pushes the protocol node to the public registry.
func (h *Handler) Publish(c *fiber.Ctx) error {
	node, err := h.service.PublishNode(c.UserContext())
	if err != nil {
		return mapTreasuryError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"node": node})
}

// SelfDestruct wipes the terminal.
func (h *Handler) SelfDestruct(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.SelfDestruct(c.UserContext(), req.Code); err != nil {
		return mapTreasuryError(err)
	}
	return c.JSON(fiber.Map{"status": "wiped"})
}

func mapTreasuryError(err error) error {
	switch {
	case errors.Is(err, ErrNotCreator):
		return fiber.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrPeerNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyDestination), errors.Is(err, ErrNothingToSettle):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCode):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, identity.ErrNoSession):
		return fiber.NewError(http.StatusUnauthorized, "no active session")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
