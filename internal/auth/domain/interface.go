package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/acadres/auth-service/internal/auth/domain UserRepository

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	InsertRecoveryToken(ctx context.Context, token *RecoveryToken) error
	GetRecoveryTokenByHash(ctx context.Context, tokenHash string) (*RecoveryToken, error)
	// ResetPasswordAtomic updates the user's password hash and consumes the
	// recovery token in a single transaction. Both writes commit together or
	// not at all; consuming an already-used or expired token fails with
	// ErrTokenInvalidOrExpired.
	ResetPasswordAtomic(ctx context.Context, userID, passwordHash, tokenID string) error
	RecordAudit(ctx context.Context, entry *AuditEntry) error
}
