package trade

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
	"github.com/pluto-protocol/pluto_terminal/internal/ledger"
)

// Handler exposes order endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a trade handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type orderRequest struct {
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
	Venue  string  `json:"venue"`
}

// Buy fills a market buy.
func (h *Handler) Buy(c *fiber.Ctx) error {
	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	profile, err := h.service.Buy(c.UserContext(), req.Symbol, req.Amount, req.Venue)
	if err != nil {
		return mapTradeError(err)
	}
	return fillResponse(c, profile)
}

// Sell fills a market sell.
func (h *Handler) Sell(c *fiber.Ctx) error {
	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	profile, err := h.service.Sell(c.UserContext(), req.Symbol, req.Amount, req.Venue)
	if err != nil {
		return mapTradeError(err)
	}
	return fillResponse(c, profile)
}

// Swap converts between asset positions.
func (h *Handler) Swap(c *fiber.Ctx) error {
	var req struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	profile, err := h.service.Swap(c.UserContext(), req.From, req.To, req.Amount)
	if err != nil {
		return mapTradeError(err)
	}
	return fillResponse(c, profile)
}

// OpenPosition opens a leveraged forex perpetual.
func (h *Handler) OpenPosition(c *fiber.Ctx) error {
	var req struct {
		Pair     string  `json:"pair"`
		Side     string  `json:"side"`
		Size     float64 `json:"size"`
		Leverage int     `json:"leverage"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	profile, err := h.service.OpenPosition(c.UserContext(), req.Pair, req.Side, req.Size, req.Leverage)
	if err != nil {
		return mapTradeError(err)
	}
	return fillResponse(c, profile)
}

func fillResponse(c *fiber.Ctx, profile identity.UserProfile) error {
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"wallet":       profile.Wallet,
		"transactions": profile.Transactions,
	})
}

func mapTradeError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return fiber.NewError(http.StatusBadRequest, "insufficient funds")
	case errors.Is(err, ErrUnknownSymbol), errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidLeverage):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, identity.ErrNoSession):
		return fiber.NewError(http.StatusUnauthorized, "no active session")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
