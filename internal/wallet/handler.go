package wallet

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
)

// LinkApplier records a bridge link on the active profile and returns the
// linked address. Injected by the route wiring so the wallet package stays
// independent of the session store.
type LinkApplier func(ctx context.Context, link Link) (string, error)

// Handler exposes wallet bridge and deposit endpoints.
type Handler struct {
	bridge Bridge
	apply  LinkApplier
}

// NewHandler constructs a wallet handler.
func NewHandler(bridge Bridge, apply LinkApplier) *Handler {
	return &Handler{bridge: bridge, apply: apply}
}

// Link connects an external wallet provider to the active profile.
func (h *Handler) Link(c *fiber.Ctx) error {
	var req struct {
		Provider      string `json:"provider"`
		CustomAddress string `json:"customAddress"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	link, err := h.bridge.Connect(c.UserContext(), req.Provider, req.CustomAddress)
	if err != nil {
		if errors.Is(err, ErrBridgeRefused) {
			return fiber.NewError(http.StatusBadGateway, "wallet bridge refused the connection")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	address, err := h.apply(c.UserContext(), link)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"provider":   link.Provider,
		"address":    address,
		"ethBalance": link.ETHBalance,
	})
}

// DepositQR renders a deposit address as a QR PNG.
func (h *Handler) DepositQR(c *fiber.Ctx) error {
	address := c.Query("address")
	if address == "" {
		return fiber.NewError(http.StatusBadRequest, "address query parameter is required")
	}
	png, err := qrcode.Encode(address, qrcode.Medium, 256)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
