package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/acadres/auth-service/internal/auth/domain"
	autherror "github.com/acadres/auth-service/internal/errors"
)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, display_name, password_hash, role, active, last_login_at, created_at, updated_at
		FROM users
		WHERE email = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, email)

	var (
		user domain.User
		role string
	)
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash,
		&role, &user.Active, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	user.Role, err = domain.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("user %s has invalid role: %w", user.ID, err)
	}

	return &user, nil
}

func (r *Repository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET last_login_at = $2, updated_at = $2 WHERE id = $1
	`, userID, at)

	return err
}

func (r *Repository) InsertRecoveryToken(ctx context.Context, token *domain.RecoveryToken) error {
	query := `INSERT INTO recovery_tokens (id, user_id, token_hash, expires_at, used, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.Used, token.CreatedAt)

	return err
}

func (r *Repository) GetRecoveryTokenByHash(ctx context.Context, tokenHash string) (*domain.RecoveryToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, used, created_at
		FROM recovery_tokens
		WHERE token_hash = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, tokenHash)

	var token domain.RecoveryToken
	err := row.Scan(&token.ID, &token.UserID, &token.TokenHash,
		&token.ExpiresAt, &token.Used, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get recovery token: %w", err)
	}

	return &token, nil
}

// ResetPasswordAtomic consumes the recovery token and replaces the user's
// password hash in one transaction. The `used = FALSE` predicate on the token
// row is the serialization point for concurrent resets: the first committer
// wins and every other caller observes ErrTokenInvalidOrExpired.
func (r *Repository) ResetPasswordAtomic(ctx context.Context, userID, passwordHash, tokenID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reset transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op once committed

	tag, err := tx.Exec(ctx, `
		UPDATE recovery_tokens
		SET used = TRUE
		WHERE id = $1 AND used = FALSE AND expires_at > now()
	`, tokenID)
	if err != nil {
		return fmt.Errorf("consume recovery token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrTokenInvalidOrExpired
	}

	tag, err = tx.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1
	`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update password: user %s not found", userID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reset transaction: %w", err)
	}

	return nil
}

func (r *Repository) RecordAudit(ctx context.Context, entry *domain.AuditEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_log (id, user_id, action, ip_address, at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
	`, entry.UserID, entry.Action, entry.IPAddress, entry.At)

	return err
}
