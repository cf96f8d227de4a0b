package authflow

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/auth"
	"github.com/pluto-protocol/pluto_terminal/internal/identity"
	"github.com/pluto-protocol/pluto_terminal/internal/latency"
	"github.com/pluto-protocol/pluto_terminal/internal/registry"
	"github.com/pluto-protocol/pluto_terminal/internal/store"
)

func setupFlowApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()

	kv, err := store.Open(ctx, "")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	peers := registry.NewService(registry.NewMemoryRepository())
	session, err := identity.NewStore(ctx, kv, peers)
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := NewService(peers, nil, latency.Instant{}, testCode)
	h := NewHandler(svc, session, tokens)

	app := fiber.New()
	app.Post("/auth/begin", h.Begin)
	app.Post("/auth/identifier", h.SubmitIdentifier)
	app.Post("/auth/code", h.SubmitCode)
	app.Post("/auth/password-setup", h.SetupPassword)
	app.Post("/auth/agreement", h.AcceptAgreement)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s: %v", path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode %s response: %v", path, err)
	}
	return resp.StatusCode, decoded
}

func TestRegistrationOverHTTP(t *testing.T) {
	app := setupFlowApp(t)

	status, body := postJSON(t, app, "/auth/begin", `{"method":"EMAIL","role":"USER"}`)
	if status != fiber.StatusOK || body["step"] != "INITIAL" {
		t.Fatalf("begin: %d %+v", status, body)
	}

	status, body = postJSON(t, app, "/auth/identifier", `{"identifier":"trader@example.com"}`)
	if status != fiber.StatusOK || body["step"] != "VERIFY" {
		t.Fatalf("identifier: %d %+v", status, body)
	}

	status, _ = postJSON(t, app, "/auth/code", `{"code":"000000"}`)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("wrong code accepted: %d", status)
	}

	status, body = postJSON(t, app, "/auth/code", `{"code":"196405"}`)
	if status != fiber.StatusOK || body["step"] != "PASSWORD_SETUP" {
		t.Fatalf("code: %d %+v", status, body)
	}

	status, body = postJSON(t, app, "/auth/password-setup", `{"password":"hunter22secure","confirm":"hunter22secure"}`)
	if status != fiber.StatusOK || body["step"] != "AGREEMENT" {
		t.Fatalf("password-setup: %d %+v", status, body)
	}

	status, body = postJSON(t, app, "/auth/agreement", `{"accepted":true}`)
	if status != fiber.StatusOK || body["step"] != "COMPLETE" {
		t.Fatalf("agreement: %d %+v", status, body)
	}
	if token, _ := body["token"].(string); token == "" {
		t.Fatal("completion issued no token")
	}
	profile, _ := body["profile"].(map[string]any)
	if profile["email"] != "trader@example.com" {
		t.Fatalf("identifier not bound in profile: %+v", profile)
	}
}

func TestOperationsOutOfOrderOverHTTP(t *testing.T) {
	app := setupFlowApp(t)

	status, _ := postJSON(t, app, "/auth/code", `{"code":"196405"}`)
	if status != fiber.StatusConflict {
		t.Fatalf("expected conflict before begin, got %d", status)
	}

	postJSON(t, app, "/auth/begin", `{"method":"EMAIL","role":"USER"}`)
	status, _ = postJSON(t, app, "/auth/agreement", `{"accepted":true}`)
	if status != fiber.StatusConflict {
		t.Fatalf("expected conflict for out-of-order agreement, got %d", status)
	}
}
