package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/acadres/auth-service/internal/auth/domain"
	"github.com/acadres/auth-service/internal/auth/dto"
	"github.com/acadres/auth-service/internal/auth/service"
	"github.com/acadres/auth-service/internal/auth/session"
	autherror "github.com/acadres/auth-service/internal/errors"
	"github.com/acadres/auth-service/internal/metrics"
)

type AuthHandler struct {
	authService     *service.AuthService
	recoveryService *service.RecoveryService
	sessions        *session.Manager
}

func NewAuthHandler(authService *service.AuthService, recoveryService *service.RecoveryService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		recoveryService: recoveryService,
		sessions:        sessions,
	}
}

// LoginForm issues the CSRF token the login form must echo back.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	token, err := h.sessions.IssueCSRF(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "session unavailable",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"csrf_token": token})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if !h.sessions.ValidateCSRF(c, input.CSRFToken) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "invalid or missing csrf token",
		})
	}

	input.IPAddress = c.IP()

	sess, err := h.authService.Authenticate(c.Context(), input)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()

		switch {
		case errors.Is(err, autherror.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": autherror.ErrInvalidCredentials.Error()})
		case errors.Is(err, autherror.ErrAccountDisabled):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": autherror.ErrAccountDisabled.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	if err := h.sessions.Create(c, sess); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session unavailable"})
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()

	return c.Redirect(sess.Role.Landing(), fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, ok := h.sessions.Current(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}

	h.authService.RecordLogout(c.Context(), sess.UserID, c.IP())

	if err := h.sessions.Destroy(c); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session unavailable"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Recover accepts a password recovery request. The response body is identical
// whether or not the email belongs to an account; only a mail-transport
// outage produces a distinct (retryable) answer.
func (h *AuthHandler) Recover(c *fiber.Ctx) error {
	var input dto.RecoverInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if !h.sessions.ValidateCSRF(c, input.CSRFToken) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid or missing csrf token"})
	}

	if err := h.recoveryService.RequestReset(c.Context(), input.Email, c.IP()); err != nil {
		if errors.Is(err, autherror.ErrMailDelivery) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "could not send mail, try again later",
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	metrics.RecoveryRequests.Inc()

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "if the address is registered, a reset link has been sent",
	})
}

// ResetForm validates the token from the reset link and issues the CSRF token
// for the reset form. The recovery token itself is not consumed here.
func (h *AuthHandler) ResetForm(c *fiber.Ctx) error {
	if _, err := h.recoveryService.ValidateToken(c.Context(), c.Params("token")); err != nil {
		if errors.Is(err, autherror.ErrTokenInvalidOrExpired) {
			return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": autherror.ErrTokenInvalidOrExpired.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	token, err := h.sessions.IssueCSRF(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session unavailable"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"csrf_token": token})
}

func (h *AuthHandler) Reset(c *fiber.Ctx) error {
	var input dto.ResetInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if !h.sessions.ValidateCSRF(c, input.CSRFToken) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid or missing csrf token"})
	}

	if err := h.recoveryService.ResetPassword(c.Context(), input, c.IP()); err != nil {
		metrics.PasswordResets.WithLabelValues("failure").Inc()

		switch {
		case errors.Is(err, autherror.ErrPasswordTooShort), errors.Is(err, autherror.ErrPasswordMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, autherror.ErrTokenInvalidOrExpired):
			return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	metrics.PasswordResets.WithLabelValues("success").Inc()

	return c.Redirect("/login", fiber.StatusSeeOther)
}

// Dashboard is the landing stub behind each role guard.
func (h *AuthHandler) Dashboard(c *fiber.Ctx) error {
	sess, ok := h.sessions.Current(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.SessionOutput{
		UserID:      sess.UserID,
		DisplayName: sess.DisplayName,
		Email:       sess.Email,
		Role:        sess.Role.String(),
	})
}

// RequireRole guards a route group: 401 without a session, 403 when the
// session's role does not match.
func (h *AuthHandler) RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := h.sessions.Current(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
		}

		if sess.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		return c.Next()
	}
}
