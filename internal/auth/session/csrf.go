package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const csrfTokenBytes = 32

// IssueCSRF returns the session's unconsumed CSRF token, minting and storing
// a new one when none exists. Issuing twice before use returns the same
// value.
func (m *Manager) IssueCSRF(c *fiber.Ctx) (string, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return "", err
	}

	if token, ok := sess.Get(keyCSRF).(string); ok && token != "" {
		return token, nil
	}

	raw := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	token := hex.EncodeToString(raw)

	sess.Set(keyCSRF, token)
	if err := sess.Save(); err != nil {
		return "", err
	}

	return token, nil
}

// ValidateCSRF reports whether the candidate matches the stored token. The
// comparison is constant-time and a successful validation clears the token,
// so a value validates at most once.
func (m *Manager) ValidateCSRF(c *fiber.Ctx, candidate string) bool {
	sess, err := m.store.Get(c)
	if err != nil {
		return false
	}

	token, _ := sess.Get(keyCSRF).(string)
	if token == "" || candidate == "" {
		return false
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(candidate)) != 1 {
		return false
	}

	sess.Delete(keyCSRF)
	if err := sess.Save(); err != nil {
		return false
	}

	return true
}
