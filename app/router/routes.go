// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/Barkerprooks/void-voyager-backend/app/dto"
	"github.com/Barkerprooks/void-voyager-backend/app/handlers"
	"github.com/Barkerprooks/void-voyager-backend/app/middleware"
	"github.com/Barkerprooks/void-voyager-backend/config"
	"github.com/Barkerprooks/void-voyager-backend/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app            *fiber.App
	authHandler    handlers.AuthHandlerInterface
	fleetHandler   handlers.FleetHandlerInterface
	authMiddleware *middleware.AuthMiddleware
	cfg            *config.ProductionConfig
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	authHandler handlers.AuthHandlerInterface,
	fleetHandler handlers.FleetHandlerInterface,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.ProductionConfig,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Void Voyager API",
		ServerHeader: "Void-Voyager",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:            app,
		authHandler:    authHandler,
		fleetHandler:   fleetHandler,
		authMiddleware: authMiddleware,
		cfg:            cfg,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	api := r.app.Group("/api")

	// Health and help routes skip rate limiting
	api.Get("/health", r.healthCheck)
	api.Get("", r.apiIndex)
	api.Get("/", r.apiIndex)

	r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api.Use(limiter.New(limiter.Config{
		Max:        r.cfg.Security.GlobalRateLimit,
		Expiration: r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(
				dto.NewErrorResponse("RATE_LIMIT_EXCEEDED", "Too many requests. Please try again later.", nil))
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/health"
		},
	}))

	// Public endpoints
	api.Post("/signup", r.authHandler.Signup)
	api.Post("/login", r.authHandler.Login)
	api.Post("/logout", r.authHandler.Logout)
	api.Get("/ships", r.fleetHandler.Catalog)

	// Session-protected endpoints
	authed := api.Group("", r.authMiddleware.Authenticate())
	authed.Get("/account/:id", r.authHandler.Account)
	authed.Get("/fleet", r.fleetHandler.Fleet)
	authed.Post("/fleet/buy", r.fleetHandler.Buy)
	authed.Post("/fleet/:id/rename", r.fleetHandler.Rename)
	authed.Post("/fleet/:id/sell", r.fleetHandler.Sell)

	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Security.AllowedOrigins,
		AllowMethods: []string{
			"GET", "POST", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Requested-With",
			"X-Request-ID",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent}}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/health" || c.Path() == "/metrics"
		},
	}))

	r.app.Use(middleware.Metrics())

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.NewSuccessResponse(fiber.Map{
		"status":    "ok",
		"timestamp": utils.UTCNow().Unix(),
		"version":   "1.0.0",
		"service":   "void-voyager-api",
	}))
}

// apiIndex lists every endpoint so the API is explorable from a browser
func (r *FiberRouter) apiIndex(c fiber.Ctx) error {
	return c.JSON(dto.NewSuccessResponse(fiber.Map{
		"title":     "Void Voyager API",
		"version":   "1.0.0",
		"currency":  utils.CreditsCurrency,
		"endpoints": GetRouteDocumentation(),
	}))
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(
		dto.NewErrorResponse("NOT_FOUND", "The requested resource was not found", fiber.Map{
			"path":       c.Path(),
			"method":     c.Method(),
			"request_id": c.Locals("requestid"),
		}))
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	return c.Status(code).JSON(
		dto.NewErrorResponse("INTERNAL_ERROR", "An internal server error occurred", fiber.Map{
			"timestamp":  utils.UTCNow().Unix(),
			"request_id": c.Locals("requestid"),
		}))
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GetRouteDocumentation returns API documentation
func GetRouteDocumentation() []map[string]any {
	return []map[string]any{
		{
			"method":      "POST",
			"path":        "/api/signup",
			"description": "Create a new account",
			"parameters": map[string]any{
				"username": "string (required) - 3 to 64 alphanumeric characters",
				"password": "string (required) - 6 to 128 characters",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/login",
			"description": "Log in and receive a session cookie",
			"parameters": map[string]any{
				"username": "string (required)",
				"password": "string (required)",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/logout",
			"description": "Drop the current session",
			"parameters":  map[string]any{},
		},
		{
			"method":      "GET",
			"path":        "/api/account/:id",
			"description": "View an account (requires login)",
			"parameters": map[string]any{
				"id": "number (required) - Account ID in URL path",
			},
		},
		{
			"method":      "GET",
			"path":        "/api/ships",
			"description": "List the purchasable ship catalog",
			"parameters":  map[string]any{},
		},
		{
			"method":      "GET",
			"path":        "/api/fleet",
			"description": "List ships owned by the logged-in account",
			"parameters":  map[string]any{},
		},
		{
			"method":      "POST",
			"path":        "/api/fleet/buy",
			"description": "Buy a catalog ship (requires login)",
			"parameters": map[string]any{
				"ship_type_id": "number (optional) - Catalog entry ID",
				"ship_name":    "string (optional) - Catalog entry name, alternative to ship_type_id",
				"name":         "string (optional) - Display name, defaults to the catalog name",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/fleet/:id/rename",
			"description": "Rename an owned ship (requires login)",
			"parameters": map[string]any{
				"id":   "number (required) - Owned ship ID in URL path",
				"name": "string (required) - New display name",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/fleet/:id/sell",
			"description": "Sell an owned ship for its full catalog cost (requires login)",
			"parameters": map[string]any{
				"id": "number (required) - Owned ship ID in URL path",
			},
		},
		{
			"method":      "GET",
			"path":        "/api/health",
			"description": "Health check endpoint",
			"parameters":  map[string]any{},
		},
	}
}
