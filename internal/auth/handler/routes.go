package handler

import (
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acadres/auth-service/internal/auth/domain"
	"github.com/acadres/auth-service/internal/httpx"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, limiter *httpx.RateLimiter) {
	app.Get("/login", h.LoginForm)
	app.Post("/login", limiter.Limit("login", 10, time.Minute), h.Login)
	app.Delete("/session", h.Logout)

	app.Post("/recover", limiter.Limit("recover", 5, time.Minute), h.Recover)
	app.Get("/reset/:token", h.ResetForm)
	app.Post("/reset", h.Reset)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Role-guarded landing areas
	for _, role := range domain.Roles {
		app.Get(role.Landing(), h.RequireRole(role), h.Dashboard)
	}
}
