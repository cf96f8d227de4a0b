package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pluto-protocol/pluto_terminal/internal/assistant"
	"github.com/pluto-protocol/pluto_terminal/internal/auth"
	"github.com/pluto-protocol/pluto_terminal/internal/authflow"
	"github.com/pluto-protocol/pluto_terminal/internal/config"
	"github.com/pluto-protocol/pluto_terminal/internal/explorer"
	"github.com/pluto-protocol/pluto_terminal/internal/identity"
	"github.com/pluto-protocol/pluto_terminal/internal/latency"
	"github.com/pluto-protocol/pluto_terminal/internal/market"
	"github.com/pluto-protocol/pluto_terminal/internal/middleware"
	"github.com/pluto-protocol/pluto_terminal/internal/notification"
	"github.com/pluto-protocol/pluto_terminal/internal/registry"
	"github.com/pluto-protocol/pluto_terminal/internal/store"
	"github.com/pluto-protocol/pluto_terminal/internal/trade"
	"github.com/pluto-protocol/pluto_terminal/internal/treasury"
	"github.com/pluto-protocol/pluto_terminal/internal/view"
	"github.com/pluto-protocol/pluto_terminal/internal/wallet"
)

const defaultAIEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Store  *store.Store
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Services
	peers := registry.NewService(registry.NewKVRepository(d.Store))
	session, err := identity.NewStore(context.Background(), d.Store, peers)
	if err != nil {
		return err
	}
	sleep := latency.FromConfig(d.Cfg.SimulatedLatency)
	notifier := notification.NewLoggerNotifier(d.Logger)
	tokens := auth.NewTokenService(d.Cfg.JWTSecret, d.Cfg.AccessTokenTTL)
	flows := authflow.NewService(peers, notifier, sleep, d.Cfg.VerificationCode)
	nodes := explorer.NewService(d.Store, nil)
	router := view.NewRouter(view.Landing)

	walk := market.NewRandomWalk(market.SeedQuotes(), nil)
	feed := market.NewFeed(walk, 2*time.Second)
	go feed.Run(context.Background())

	trades := trade.NewService(session, walk, sleep)
	vault := treasury.NewService(session, peers, d.Store, nodes, sleep, d.Cfg.VerificationCode)

	endpoint := d.Cfg.AIEndpoint
	if endpoint == "" {
		endpoint = defaultAIEndpoint
	}
	auditor := assistant.NewAuditor(assistant.NewHTTPClient(endpoint, d.Cfg.AIAPIKey, d.Cfg.AIAuditModel))
	support := assistant.NewSupport(assistant.NewHTTPClient(endpoint, d.Cfg.AIAPIKey, d.Cfg.AISupportModel))

	// Handlers
	flowHandler := authflow.NewHandler(flows, session, tokens)
	viewHandler := view.NewHandler(router, session)
	explorerHandler := explorer.NewHandler(nodes)
	tradeHandler := trade.NewHandler(trades)
	treasuryHandler := treasury.NewHandler(vault)
	assistantHandler := assistant.NewHandler(auditor, support)
	walletHandler := wallet.NewHandler(wallet.SimulatedBridge{}, applyLink(session))

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterHealthRoutes(app, d)

	// Public routes
	rateLimiter := middleware.SubmitRateLimit(d.Store.Client(), 10)
	RegisterAuthRoutes(api, flowHandler, rateLimiter)
	RegisterExplorerRoutes(api, explorerHandler)
	RegisterMarketRoutes(api, feed, walk)
	RegisterViewRoutes(api, viewHandler)

	// Protected routes
	sessionGuard := auth.Middleware(tokens, session)
	protected := api.Group("", sessionGuard)
	RegisterSessionRoutes(protected, session, router)
	RegisterWalletRoutes(protected, walletHandler)
	RegisterAssistantRoutes(protected, assistantHandler)

	idem := middleware.Idempotency(d.Store.Client(), d.Cfg.IdempotencyTTL, d.Logger)
	RegisterTradeRoutes(protected.Group("", idem), tradeHandler)
	RegisterAdminRoutes(protected.Group("", auth.RequireCreator(), idem), treasuryHandler)

	return nil
}

// applyLink binds a bridge link onto the active profile and reports the
// linked address.
func applyLink(session *identity.Store) wallet.LinkApplier {
	return func(ctx context.Context, link wallet.Link) (string, error) {
		profile, err := session.Update(ctx, func(p *identity.UserProfile) error {
			p.Web3Address = link.Address
			p.WalletProvider = link.Provider
			p.Wallet.ReplaceAsset("ETH", link.ETHBalance)
			return nil
		})
		if err != nil {
			return "", err
		}
		return profile.Web3Address, nil
	}
}
