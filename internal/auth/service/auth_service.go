package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/acadres/auth-service/internal/auth/domain"
	"github.com/acadres/auth-service/internal/auth/dto"
	autherror "github.com/acadres/auth-service/internal/errors"
	"github.com/acadres/auth-service/pkg/constant"
)

// timingDummyHash is compared against when no user matches the email, so the
// response time of a failed login does not reveal whether the account exists.
const timingDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	repo domain.UserRepository
	log  *slog.Logger
}

func NewAuthService(repo domain.UserRepository, log *slog.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

// Authenticate validates the credentials and returns the session identity
// snapshot. Last-login and audit writes are best-effort: their failure is
// logged and never blocks a successful login.
func (s *AuthService) Authenticate(ctx context.Context, input dto.LoginInput) (*domain.Session, error) {
	if input.Email == "" || input.Password == "" {
		return nil, autherror.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword([]byte(timingDummyHash), []byte(input.Password))

		return nil, autherror.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		s.audit(ctx, user.ID, constant.AuditLoginFailed, input.IPAddress)

		return nil, autherror.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, autherror.ErrAccountDisabled
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.log.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}

	s.audit(ctx, user.ID, constant.AuditLogin, input.IPAddress)

	return &domain.Session{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        user.Role,
	}, nil
}

// RecordLogout writes the logout audit entry before the session is destroyed.
func (s *AuthService) RecordLogout(ctx context.Context, userID, ip string) {
	s.audit(ctx, userID, constant.AuditLogout, ip)
}

func (s *AuthService) audit(ctx context.Context, userID, action, ip string) {
	entry := &domain.AuditEntry{
		UserID:    userID,
		Action:    action,
		IPAddress: ip,
		At:        time.Now(),
	}
	if err := s.repo.RecordAudit(ctx, entry); err != nil {
		s.log.Warn("failed to write audit entry", "action", action, "user_id", userID, "error", err)
	}
}
