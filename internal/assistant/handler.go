package assistant

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the assistant personas.
type Handler struct {
	auditor *Auditor
	support *Support
}

// NewHandler constructs an assistant handler.
func NewHandler(auditor *Auditor, support *Support) *Handler {
	return &Handler{auditor: auditor, support: support}
}

// Audit reviews submitted contract code.
func (h *Handler) Audit(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Code) == "" {
		return fiber.NewError(http.StatusBadRequest, "code is required")
	}
	return c.JSON(fiber.Map{"report": h.auditor.Audit(c.UserContext(), req.Code)})
}

// Chat answers a support message.
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Message) == "" {
		return fiber.NewError(http.StatusBadRequest, "message is required")
	}
	return c.JSON(fiber.Map{"reply": h.support.Reply(c.UserContext(), req.Message)})
}
