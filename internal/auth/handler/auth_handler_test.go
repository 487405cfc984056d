package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadres/auth-service/internal/auth/domain"
	"github.com/acadres/auth-service/internal/auth/handler"
	"github.com/acadres/auth-service/internal/auth/service"
	"github.com/acadres/auth-service/internal/auth/session"
	"github.com/acadres/auth-service/internal/mocks"
	"github.com/acadres/auth-service/pkg/constant"
)

type testEnv struct {
	app    *fiber.App
	repo   *mocks.MockUserRepository
	mailer *mocks.MockMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockMailer := mocks.NewMockMailer(ctrl)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	authService := service.NewAuthService(mockRepo, log)
	recoveryService := service.NewRecoveryService(mockRepo, mockMailer, "https://booking.school.edu", constant.RecoveryTokenTTL, log)
	sessions := session.NewManager(fibersession.New())

	h := handler.NewAuthHandler(authService, recoveryService, sessions)
	app := fiber.New()
	handler.RegisterRoutes(app, h, nil)

	return &testEnv{app: app, repo: mockRepo, mailer: mockMailer}
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:           "user-123",
		Email:        "prof@school.edu",
		DisplayName:  "Prof. Example",
		PasswordHash: string(hash),
		Role:         domain.RoleProfessor,
		Active:       true,
	}
}

// fetchCSRF performs the form GET that issues the CSRF token and returns the
// token plus the session cookie header.
func fetchCSRF(t *testing.T, app *fiber.App, path string) (token, cookies string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		CSRFToken string `json:"csrf_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.CSRFToken)

	pairs := make([]string, 0, 1)
	for _, c := range resp.Cookies() {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	require.NotEmpty(t, pairs)

	return body.CSRFToken, strings.Join(pairs, "; ")
}

func postJSON(t *testing.T, app *fiber.App, path, cookies string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookies != "" {
		req.Header.Set("Cookie", cookies)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestLogin(t *testing.T) {
	t.Run("success redirects to role landing", func(t *testing.T) {
		env := newTestEnv(t)
		user := activeUser(t, "secret-password")

		env.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		env.repo.EXPECT().UpdateLastLogin(gomock.Any(), user.ID, gomock.Any()).Return(nil)
		env.repo.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

		token, cookies := fetchCSRF(t, env.app, "/login")
		resp := postJSON(t, env.app, "/login", cookies, fiber.Map{
			"email":    user.Email,
			"password": "secret-password",
			"_csrf":    token,
		})

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/professor", resp.Header.Get("Location"))
	})

	t.Run("invalid credentials", func(t *testing.T) {
		env := newTestEnv(t)
		user := activeUser(t, "secret-password")

		env.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		env.repo.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

		token, cookies := fetchCSRF(t, env.app, "/login")
		resp := postJSON(t, env.app, "/login", cookies, fiber.Map{
			"email":    user.Email,
			"password": "wrong",
			"_csrf":    token,
		})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("disabled account", func(t *testing.T) {
		env := newTestEnv(t)
		user := activeUser(t, "secret-password")
		user.Active = false

		env.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		token, cookies := fetchCSRF(t, env.app, "/login")
		resp := postJSON(t, env.app, "/login", cookies, fiber.Map{
			"email":    user.Email,
			"password": "secret-password",
			"_csrf":    token,
		})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing csrf token", func(t *testing.T) {
		env := newTestEnv(t)

		_, cookies := fetchCSRF(t, env.app, "/login")
		resp := postJSON(t, env.app, "/login", cookies, fiber.Map{
			"email":    "prof@school.edu",
			"password": "secret-password",
		})

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("replayed csrf token", func(t *testing.T) {
		env := newTestEnv(t)
		user := activeUser(t, "secret-password")

		env.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		env.repo.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

		token, cookies := fetchCSRF(t, env.app, "/login")

		payload := fiber.Map{"email": user.Email, "password": "wrong", "_csrf": token}
		first := postJSON(t, env.app, "/login", cookies, payload)
		require.Equal(t, http.StatusUnauthorized, first.StatusCode)

		// The token was consumed by the first post.
		second := postJSON(t, env.app, "/login", cookies, payload)
		assert.Equal(t, http.StatusForbidden, second.StatusCode)
	})

	t.Run("bad request body", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := env.app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRoleGuard(t *testing.T) {
	env := newTestEnv(t)
	user := activeUser(t, "secret-password")

	env.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	env.repo.EXPECT().UpdateLastLogin(gomock.Any(), user.ID, gomock.Any()).Return(nil)
	env.repo.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

	token, cookies := fetchCSRF(t, env.app, "/login")
	resp := postJSON(t, env.app, "/login", cookies, fiber.Map{
		"email":    user.Email,
		"password": "secret-password",
		"_csrf":    token,
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	authedPairs := make([]string, 0, 1)
	for _, c := range resp.Cookies() {
		authedPairs = append(authedPairs, c.Name+"="+c.Value)
	}
	require.NotEmpty(t, authedPairs)
	authedCookies := strings.Join(authedPairs, "; ")

	t.Run("own landing is reachable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/professor", nil)
		req.Header.Set("Cookie", authedCookies)
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("other landing is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Cookie", authedCookies)
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/student", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	user := activeUser(t, "secret-password")

	env.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	env.repo.EXPECT().UpdateLastLogin(gomock.Any(), user.ID, gomock.Any()).Return(nil)
	env.repo.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil).Times(2) // login + logout

	token, cookies := fetchCSRF(t, env.app, "/login")
	resp := postJSON(t, env.app, "/login", cookies, fiber.Map{
		"email":    user.Email,
		"password": "secret-password",
		"_csrf":    token,
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	pairs := make([]string, 0, 1)
	for _, c := range resp.Cookies() {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	authedCookies := strings.Join(pairs, "; ")

	req := httptest.NewRequest(http.MethodDelete, "/session", nil)
	req.Header.Set("Cookie", authedCookies)
	logoutResp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, logoutResp.StatusCode)

	// Session is gone afterwards.
	again := httptest.NewRequest(http.MethodGet, "/professor", nil)
	again.Header.Set("Cookie", authedCookies)
	afterResp, err := env.app.Test(again)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, afterResp.StatusCode)
}

func TestRecover(t *testing.T) {
	t.Run("unknown email gets the generic acknowledgement", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().GetByEmail(gomock.Any(), "unknown@x.com").Return(nil, nil)

		token, cookies := fetchCSRF(t, env.app, "/login")
		resp := postJSON(t, env.app, "/recover", cookies, fiber.Map{
			"email": "unknown@x.com",
			"_csrf": token,
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("known email gets the same acknowledgement", func(t *testing.T) {
		env := newTestEnv(t)
		user := activeUser(t, "irrelevant")

		env.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		env.repo.EXPECT().InsertRecoveryToken(gomock.Any(), gomock.Any()).Return(nil)
		env.mailer.EXPECT().Send(gomock.Any(), user.Email, gomock.Any(), gomock.Any()).Return(nil)
		env.repo.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

		token, cookies := fetchCSRF(t, env.app, "/login")
		resp := postJSON(t, env.app, "/recover", cookies, fiber.Map{
			"email": user.Email,
			"_csrf": token,
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("mail outage is retryable", func(t *testing.T) {
		env := newTestEnv(t)
		user := activeUser(t, "irrelevant")

		env.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		env.repo.EXPECT().InsertRecoveryToken(gomock.Any(), gomock.Any()).Return(nil)
		env.mailer.EXPECT().Send(gomock.Any(), user.Email, gomock.Any(), gomock.Any()).
			Return(errors.New("smtp down"))

		token, cookies := fetchCSRF(t, env.app, "/login")
		resp := postJSON(t, env.app, "/recover", cookies, fiber.Map{
			"email": user.Email,
			"_csrf": token,
		})

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestResetFlow(t *testing.T) {
	t.Run("valid token renders form and resets", func(t *testing.T) {
		env := newTestEnv(t)

		record := &domain.RecoveryToken{
			ID:        "rt-1",
			UserID:    "user-123",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		// Once for the form, once for the submit.
		env.repo.EXPECT().GetRecoveryTokenByHash(gomock.Any(), gomock.Any()).Return(record, nil).Times(2)
		env.repo.EXPECT().ResetPasswordAtomic(gomock.Any(), "user-123", gomock.Any(), "rt-1").Return(nil)
		env.repo.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

		token, cookies := fetchCSRF(t, env.app, "/reset/"+strings.Repeat("ab", 32))
		resp := postJSON(t, env.app, "/reset", cookies, fiber.Map{
			"token":            strings.Repeat("ab", 32),
			"new_password":     "longenough",
			"confirm_password": "longenough",
			"_csrf":            token,
		})

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("expired token is gone", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().GetRecoveryTokenByHash(gomock.Any(), gomock.Any()).Return(nil, nil)

		resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/reset/"+strings.Repeat("cd", 32), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusGone, resp.StatusCode)
	})

	t.Run("mismatched confirmation is rejected before persistence", func(t *testing.T) {
		env := newTestEnv(t)

		record := &domain.RecoveryToken{
			ID:        "rt-1",
			UserID:    "user-123",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		env.repo.EXPECT().GetRecoveryTokenByHash(gomock.Any(), gomock.Any()).Return(record, nil)

		token, cookies := fetchCSRF(t, env.app, "/reset/"+strings.Repeat("ab", 32))
		resp := postJSON(t, env.app, "/reset", cookies, fiber.Map{
			"token":            strings.Repeat("ab", 32),
			"new_password":     "longenough",
			"confirm_password": "different1",
			"_csrf":            token,
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
