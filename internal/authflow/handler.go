package authflow

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/auth"
	"github.com/pluto-protocol/pluto_terminal/internal/identity"
	"github.com/pluto-protocol/pluto_terminal/internal/registry"
)

// Handler exposes the auth flow endpoints. The terminal drives one flow at a
// time; beginning a new flow discards the previous one.
type Handler struct {
	service *Service
	session *identity.Store
	tokens  *auth.TokenService

	mu   sync.Mutex
	flow *Flow
}

// NewHandler constructs an auth flow handler.
func NewHandler(service *Service, session *identity.Store, tokens *auth.TokenService) *Handler {
	return &Handler{service: service, session: session, tokens: tokens}
}

type beginRequest struct {
	Method string `json:"method"`
	Role   string `json:"role"`
}

// Begin starts a fresh flow.
func (h *Handler) Begin(c *fiber.Ctx) error {
	var req beginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	method := identity.Method(req.Method)
	if method == "" {
		method = identity.MethodEmail
	}
	role := identity.RoleUser
	if identity.Role(req.Role) == identity.RoleCreator {
		role = identity.RoleCreator
	}

	h.mu.Lock()
	h.flow = New(method, role)
	flow := h.flow
	h.mu.Unlock()

	return c.JSON(stepResponse(flow))
}

// SubmitIdentifier routes the flow on the submitted identifier.
func (h *Handler) SubmitIdentifier(c *fiber.Ctx) error {
	var req struct {
		Identifier string `json:"identifier"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	flow, err := h.current()
	if err != nil {
		return err
	}
	if err := h.service.SubmitIdentifier(c.UserContext(), flow, req.Identifier); err != nil {
		return mapFlowError(err)
	}
	return c.JSON(stepResponse(flow))
}

// SubmitCode checks the attestation code.
func (h *Handler) SubmitCode(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	flow, err := h.current()
	if err != nil {
		return err
	}
	if err := h.service.SubmitCode(c.UserContext(), flow, req.Code); err != nil {
		return mapFlowError(err)
	}
	return c.JSON(stepResponse(flow))
}

// SetupPassword records the new credential.
func (h *Handler) SetupPassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
		Confirm  string `json:"confirm"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	flow, err := h.current()
	if err != nil {
		return err
	}
	if err := h.service.SetupPassword(c.UserContext(), flow, req.Password, req.Confirm); err != nil {
		return mapFlowError(err)
	}
	return c.JSON(stepResponse(flow))
}

// AcceptAgreement finalizes a registration and activates the session.
func (h *Handler) AcceptAgreement(c *fiber.Ctx) error {
	var req struct {
		Accepted bool `json:"accepted"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	flow, err := h.current()
	if err != nil {
		return err
	}
	completion, err := h.service.AcceptAgreement(c.UserContext(), flow, req.Accepted)
	if err != nil {
		return mapFlowError(err)
	}
	return h.complete(c, completion)
}

// SubmitPassword completes a returning login.
func (h *Handler) SubmitPassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	flow, err := h.current()
	if err != nil {
		return err
	}
	completion, err := h.service.SubmitPassword(c.UserContext(), flow, req.Password)
	if err != nil {
		return mapFlowError(err)
	}
	return h.complete(c, completion)
}

// BeginGoogle runs the oauth adapter.
func (h *Handler) BeginGoogle(c *fiber.Ctx) error {
	flow, err := h.current()
	if err != nil {
		return err
	}
	if err := h.service.BeginGoogle(c.UserContext(), flow); err != nil {
		return mapFlowError(err)
	}
	return c.JSON(stepResponse(flow))
}

// BeginWeb3 runs the wallet adapter.
func (h *Handler) BeginWeb3(c *fiber.Ctx) error {
	var req struct {
		Provider string `json:"provider"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	flow, err := h.current()
	if err != nil {
		return err
	}
	completion, done, err := h.service.BeginWeb3(c.UserContext(), flow, req.Provider)
	if err != nil {
		return mapFlowError(err)
	}
	if done {
		return h.complete(c, completion)
	}
	return c.JSON(stepResponse(flow))
}

// Current reports the live flow state.
func (h *Handler) Current(c *fiber.Ctx) error {
	flow, err := h.current()
	if err != nil {
		return err
	}
	return c.JSON(stepResponse(flow))
}

func (h *Handler) current() (*Flow, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.flow == nil {
		return nil, fiber.NewError(http.StatusConflict, "no active auth flow")
	}
	return h.flow, nil
}

// complete activates the session for a finished flow and issues a token.
func (h *Handler) complete(c *fiber.Ctx, completion Completion) error {
	if err := h.session.SetActive(c.UserContext(), completion.Profile); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	token, err := h.tokens.Issue(completion.Profile)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"step":    StepComplete,
		"token":   token,
		"profile": completion.Profile,
	})
}

func stepResponse(flow *Flow) fiber.Map {
	return fiber.Map{
		"step":       flow.Step,
		"method":     flow.Method,
		"identifier": flow.Identifier,
		"existing":   flow.Existing(),
	}
}

func mapFlowError(err error) error {
	switch {
	case errors.Is(err, ErrEmptyIdentifier),
		errors.Is(err, ErrSecretTooShort),
		errors.Is(err, ErrSecretMismatch),
		errors.Is(err, ErrAgreementRequired):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCode):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, registry.ErrInvalidCredential):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidStep):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
