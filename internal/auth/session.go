// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session"

// SessionManager issues Fernet tokens that carry a user ID. Tokens are both
// encrypted and signed, so clients can neither read nor forge them.
type SessionManager struct {
	keys []*fernet.Key
	ttl  time.Duration
}

// GenerateKey returns a fresh base64 encoded Fernet key.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", fmt.Errorf("generate session key: %w", err)
	}
	return k.Encode(), nil
}

// NewSessionManager builds a manager from a comma separated list of encoded keys.
// The first key signs new tokens; the others are still accepted for verification,
// which allows key rotation.
func NewSessionManager(encodedKeys string, ttl time.Duration) (*SessionManager, error) {
	var parts []string
	for _, p := range strings.Split(encodedKeys, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil, errors.New("no session key configured")
	}

	keys, err := fernet.DecodeKeys(parts...)
	if err != nil {
		return nil, fmt.Errorf("decode session key: %w", err)
	}

	return &SessionManager{keys: keys, ttl: ttl}, nil
}

// TTL returns how long issued tokens stay valid.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a token for userID.
func (m *SessionManager) Issue(userID string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(userID), m.keys[0])
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return string(tok), nil
}

// Verify returns the user ID carried by token. Expired, tampered or malformed
// tokens yield ErrUnauthorized.
func (m *SessionManager) Verify(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), m.ttl, m.keys)
	if msg == nil {
		return "", apperrors.ErrUnauthorized
	}

	userID := string(msg)
	if _, err := uuid.Parse(userID); err != nil {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}
