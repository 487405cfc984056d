package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/acadres/auth-service/pkg/constant"
)

// generateRecoveryToken creates a random recovery token and its sha256 hash.
// The plaintext token goes into the reset link; only the hash is stored.
func generateRecoveryToken() (token, hash string, err error) {
	raw := make([]byte, constant.RecoveryTokenBytes)
	if _, err = rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate recovery token: %w", err)
	}

	token = hex.EncodeToString(raw)

	return token, hashRecoveryToken(token), nil
}

func hashRecoveryToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
