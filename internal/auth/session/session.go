package session

import (
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/acadres/auth-service/internal/auth/domain"
)

// Session value keys. Only scalar strings are stored so the underlying
// storage never needs gob registration.
const (
	keyUserID      = "user_id"
	keyDisplayName = "display_name"
	keyEmail       = "email"
	keyRole        = "role"
	keyCSRF        = "csrf_token"
)

// Manager wraps the transport-level session store. The session identifier
// itself (cookie, expiry, storage backend) is the store's concern; Manager
// only decides what an authenticated session carries.
type Manager struct {
	store *fibersession.Store
}

func NewManager(store *fibersession.Store) *Manager {
	return &Manager{store: store}
}

// Create populates a fresh session for the authenticated user. The session id
// is regenerated so a pre-login session cannot be fixated into an
// authenticated one.
func (m *Manager) Create(c *fiber.Ctx, u *domain.Session) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}

	if err := sess.Regenerate(); err != nil {
		return err
	}

	sess.Set(keyUserID, u.UserID)
	sess.Set(keyDisplayName, u.DisplayName)
	sess.Set(keyEmail, u.Email)
	sess.Set(keyRole, string(u.Role))

	return sess.Save()
}

// Destroy clears every stored field and invalidates the session id.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}

	return sess.Destroy()
}

// Current returns the authenticated identity, or false when the request
// carries no valid authenticated session.
func (m *Manager) Current(c *fiber.Ctx) (*domain.Session, bool) {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil, false
	}

	userID, _ := sess.Get(keyUserID).(string)
	if userID == "" {
		return nil, false
	}

	roleValue, _ := sess.Get(keyRole).(string)
	role, err := domain.ParseRole(roleValue)
	if err != nil {
		return nil, false
	}

	displayName, _ := sess.Get(keyDisplayName).(string)
	email, _ := sess.Get(keyEmail).(string)

	return &domain.Session{
		UserID:      userID,
		DisplayName: displayName,
		Email:       email,
		Role:        role,
	}, true
}
