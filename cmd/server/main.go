package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/acadres/auth-service/config"
	"github.com/acadres/auth-service/db"
	"github.com/acadres/auth-service/internal/auth/handler"
	repo "github.com/acadres/auth-service/internal/auth/repository/postgres"
	"github.com/acadres/auth-service/internal/auth/service"
	"github.com/acadres/auth-service/internal/auth/session"
	"github.com/acadres/auth-service/internal/httpx"
	"github.com/acadres/auth-service/internal/mailer"
	"github.com/acadres/auth-service/pkg/constant"
	"github.com/acadres/auth-service/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New("auth-service", cfg.LogLevel)
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	smtpMailer, err := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	if err != nil {
		log.Error("failed to configure mailer", "error", err)
		os.Exit(1)
	}

	userRepo := repo.NewRepository(dbPool)
	authService := service.NewAuthService(userRepo, log)
	recoveryService := service.NewRecoveryService(userRepo, smtpMailer, cfg.BaseURL, constant.RecoveryTokenTTL, log)

	sessions := session.NewManager(fibersession.New(fibersession.Config{
		Expiration:     12 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}))

	var limiter *httpx.RateLimiter
	if cfg.RedisAddr != "" {
		limiter, err = httpx.NewRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.Warn("rate limiter disabled, redis unreachable", "addr", cfg.RedisAddr, "error", err)
			limiter = nil
		} else {
			defer limiter.Close()
		}
	}

	authHandler := handler.NewAuthHandler(authService, recoveryService, sessions)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, limiter)

	log.Info("listening", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
