package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadres/auth-service/internal/auth/domain"
	"github.com/acadres/auth-service/internal/auth/dto"
	autherror "github.com/acadres/auth-service/internal/errors"
	"github.com/acadres/auth-service/internal/mailer"
	"github.com/acadres/auth-service/pkg/constant"
)

type RecoveryService struct {
	repo     domain.UserRepository
	mailer   mailer.Mailer
	baseURL  string
	tokenTTL time.Duration
	log      *slog.Logger
}

func NewRecoveryService(repo domain.UserRepository, m mailer.Mailer, baseURL string, tokenTTL time.Duration, log *slog.Logger) *RecoveryService {
	return &RecoveryService{
		repo:     repo,
		mailer:   m,
		baseURL:  baseURL,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// RequestReset issues a recovery token for the account owning the email and
// dispatches the reset mail. When no active account matches, it returns nil
// without any observable side effect, so the outcome never reveals whether
// the address is registered. A mail-transport failure is the only distinct
// outcome (ErrMailDelivery, retryable); the caller's acknowledgement page
// stays identical across the found/not-found branches.
func (s *RecoveryService) RequestReset(ctx context.Context, email, ip string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	if user == nil || !user.Active {
		return nil
	}

	token, hash, err := generateRecoveryToken()
	if err != nil {
		return err
	}

	now := time.Now()
	record := &domain.RecoveryToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: now.Add(s.tokenTTL),
		Used:      false,
		CreatedAt: now,
	}
	if err := s.repo.InsertRecoveryToken(ctx, record); err != nil {
		return fmt.Errorf("store recovery token: %w", err)
	}

	body, err := mailer.RecoveryMessage(user.DisplayName, s.baseURL, token)
	if err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, user.Email, mailer.RecoverySubject, body); err != nil {
		s.log.Error("failed to dispatch recovery mail", "user_id", user.ID, "error", err)

		return autherror.ErrMailDelivery
	}

	s.audit(ctx, user.ID, constant.AuditRecoveryRequest, ip)

	return nil
}

// ValidateToken is the read-only check used to decide whether the reset form
// may be rendered. It never consumes the token.
func (s *RecoveryService) ValidateToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", autherror.ErrTokenInvalidOrExpired
	}

	record, err := s.repo.GetRecoveryTokenByHash(ctx, hashRecoveryToken(token))
	if err != nil {
		return "", fmt.Errorf("lookup recovery token: %w", err)
	}

	if record == nil || !record.Usable(time.Now()) {
		return "", autherror.ErrTokenInvalidOrExpired
	}

	return record.UserID, nil
}

// ResetPassword validates the inputs and token, then commits the new password
// hash and the token consumption atomically. Validation failures are detected
// before any persistence attempt.
func (s *RecoveryService) ResetPassword(ctx context.Context, input dto.ResetInput, ip string) error {
	if len(input.NewPassword) < constant.MinPasswordLength {
		return autherror.ErrPasswordTooShort
	}
	if input.NewPassword != input.ConfirmPassword {
		return autherror.ErrPasswordMismatch
	}

	record, err := s.repo.GetRecoveryTokenByHash(ctx, hashRecoveryToken(input.Token))
	if err != nil {
		return fmt.Errorf("lookup recovery token: %w", err)
	}
	if record == nil || !record.Usable(time.Now()) {
		return autherror.ErrTokenInvalidOrExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.ResetPasswordAtomic(ctx, record.UserID, string(hash), record.ID); err != nil {
		if errors.Is(err, autherror.ErrTokenInvalidOrExpired) {
			return autherror.ErrTokenInvalidOrExpired
		}
		s.log.Error("password reset transaction failed", "user_id", record.UserID, "error", err)

		return autherror.ErrPersistence
	}

	s.audit(ctx, record.UserID, constant.AuditPasswordReset, ip)

	return nil
}

func (s *RecoveryService) audit(ctx context.Context, userID, action, ip string) {
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
