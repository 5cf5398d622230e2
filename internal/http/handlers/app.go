package handlers

import (
	"errors"

	"storefront/internal/config"
	applog "storefront/internal/log"
	"storefront/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// errorHandler keeps the {"error": ...} body for framework errors too
// (unknown route, body too large, rate limit).
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := msgInternal
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(cfg config.Config, deps *Deps, m *metrics.HTTP) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(applog.Middleware())
	if m != nil {
		app.Use(m.Middleware())
		app.Get("/metrics", m.Handler())
	}

	app.Get("/healthz", deps.HealthHandler.Check)

	// Auth (sign-in throttled)
	auth := app.Group("/auth")
	auth.Post("/signup", deps.AuthHandler.Signup)
	auth.Post("/signin", limiter.New(limiter.Config{
		Max:        cfg.SigninRateMax,
		Expiration: cfg.SigninRateWindow,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.signin.hit", nil)
			return jsonError(c, fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
		},
	}), deps.AuthHandler.Signin)

	// Catalog
	app.Get("/products", deps.ProductHandler.List)
	app.Post("/products", deps.ProductHandler.Create)
	app.Get("/products/:id", deps.ProductHandler.Get)
	app.Put("/products/:id", deps.ProductHandler.Update)
	app.Delete("/products/:id", deps.ProductHandler.Delete)

	// Orders
	app.Get("/orders", deps.OrderHandler.List)
	app.Post("/orders", deps.OrderHandler.Create)
	app.Patch("/orders/:id", deps.OrderHandler.UpdateStatus)
	app.Get("/admin/orders", deps.AdminHandler.ListOrders)

	// Social
	app.Get("/likes", deps.LikeHandler.Status)
	app.Post("/likes", deps.LikeHandler.Apply)
	app.Get("/saves", deps.SaveHandler.List)
	app.Post("/saves", deps.SaveHandler.Apply)
	app.Get("/reviews", deps.ReviewHandler.List)
	app.Post("/reviews", deps.ReviewHandler.Create)

	app.Post("/upload", deps.UploadHandler.Image)

	// ---------- Static assets (uploaded images live under /images) ----------
	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	app.Use(func(c *fiber.Ctx) error {
		return jsonError(c, fiber.StatusNotFound, "Not found")
	})
	return app
}
