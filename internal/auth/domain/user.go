package domain

import "time"

type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	Role         Role
	Active       bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RecoveryToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Usable reports whether the token can still authorize a password reset.
// A token is usable exactly once and only before its expiry.
func (t *RecoveryToken) Usable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

// Session is the identity snapshot carried by an authenticated session.
// It exists only after a successful Authenticate call; a role change in the
// credential store does not propagate without re-authentication.
type Session struct {
	UserID      string
	DisplayName string
	Email       string
	Role        Role
}

type AuditEntry struct {
	UserID    string
	Action    string
	IPAddress string
	At        time.Time
}
