package routes

import (
	"time"

	"github.com/gardenops/inventory-backend/internal/config"
	"github.com/gardenops/inventory-backend/internal/handlers"
	"github.com/gardenops/inventory-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Admin    *handlers.AdminHandler
	Product  *handlers.ProductHandler
	Stock    *handlers.StockHandler
	Profile  *handlers.ProfileHandler
	Log      *handlers.LogHandler
	UserPage *handlers.UserPageHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Public
	app.Get("/api/health", h.Health.Check)
	app.Get("/csrf", h.Auth.CSRF)
	app.Get("/deactivated", h.Auth.Deactivated)
	app.Get("/verify/email", h.Auth.VerifyEmailNotice)

	// Login gets a stricter limit: 10 req/min per IP
	app.Post("/login", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), h.Auth.Login)
	app.Post("/refresh", h.Auth.Refresh)

	authed := []fiber.Handler{
		middleware.JWTProtected(cfg),
		middleware.LoadUser(db),
		middleware.AccountGate(),
	}

	app.Post("/logout", authed[0], authed[1], h.Auth.Logout)

	// Admin panel: every route requires the admin role.
	admin := app.Group("/admin", append(authed, middleware.AdminRequired())...)
	admin.Get("/", h.Admin.Dashboard)
	admin.Post("/dashboard/authorize-download", h.Admin.AuthorizeDownload)

	admin.Get("/users", h.Admin.ListUsers)
	admin.Post("/users/create", h.Admin.CreateUser)
	admin.Get("/users/:id", h.Admin.GetUser)
	admin.Put("/users/:id/update", h.Admin.UpdateUser)
	admin.Patch("/users/:id/toggle-status", h.Admin.ToggleUserStatus)
	admin.Delete("/users/:id/delete", h.Admin.DeleteUser)

	admin.Get("/products", h.Product.Index)
	admin.Post("/products/new", h.Product.Create)
	admin.Get("/products/:id", h.Product.Show)
	admin.Post("/products/:id/edit", h.Product.Update)
	admin.Delete("/products/:id", h.Product.Delete)

	admin.Get("/stocks", h.Stock.Index)
	admin.Post("/stocks/new", h.Stock.Create)
	admin.Get("/stocks/:id", h.Stock.Show)
	admin.Post("/stocks/:id/edit", h.Stock.Update)
	admin.Delete("/stocks/:id", h.Stock.Delete)

	admin.Get("/logs", h.Log.Index)

	admin.Get("/api/profile", h.Profile.Me)
	admin.Post("/api/profile/update", h.Profile.Update)
	admin.Post("/api/profile/password", h.Profile.ChangePassword)

	// Authenticated resource routes; fine-grained rules live in the
	// policy engine.
	product := app.Group("/product", authed...)
	product.Get("/", h.Product.Index)
	product.Post("/new", h.Product.Create)
	product.Get("/:id", h.Product.Show)
	product.Post("/:id/edit", h.Product.Update)
	product.Delete("/:id", h.Product.Delete)

	stock := app.Group("/stock", authed...)
	stock.Get("/", h.Stock.Index)
	stock.Post("/new", h.Stock.Create)
	stock.Get("/:id", h.Stock.Show)
	stock.Post("/:id/edit", h.Stock.Update)
	stock.Delete("/:id", h.Stock.Delete)

	userpage := app.Group("/userpage", authed...)
	userpage.Get("/", h.UserPage.Index)
	userpage.Get("/profile", h.UserPage.Profile)

	profile := app.Group("/profile", authed...)
	profile.Get("/me", h.Profile.Me)
	profile.Post("/update", h.Profile.Update)
	profile.Post("/password", h.Profile.ChangePassword)
}
