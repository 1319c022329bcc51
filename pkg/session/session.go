package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const CookieName = "invest_session"

// Manager issues and verifies signed session tokens for the single-user
// password gate. A token is "<unix-milli-expiry>.<hmac-sha256 signature>".
type Manager struct {
	secret       []byte
	passwordHash string
	duration     time.Duration
}

func NewManager(secret, passwordHash string, duration time.Duration) *Manager {
	if duration <= 0 {
		duration = 7 * 24 * time.Hour
	}
	return &Manager{
		secret:       []byte(secret),
		passwordHash: passwordHash,
		duration:     duration,
	}
}

// HashPassword returns the hex sha256 digest of the given password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword compares the given password against the configured hash in
// constant time.
func (m *Manager) VerifyPassword(password string) bool {
	if m.passwordHash == "" {
		return false
	}
	inputHash := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(inputHash), []byte(m.passwordHash)) == 1
}

// CreateToken returns a fresh signed token valid for the session duration.
func (m *Manager) CreateToken() string {
	expiry := time.Now().Add(m.duration).UnixMilli()
	expiryStr := strconv.FormatInt(expiry, 10)
	return fmt.Sprintf("%s.%s", expiryStr, m.sign(expiryStr))
}

// VerifyToken reports whether the token is well-formed, unexpired and signed
// with the configured secret.
func (m *Manager) VerifyToken(token string) bool {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}

	expiry, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || time.Now().UnixMilli() > expiry {
		return false
	}

	expected := m.sign(parts[0])
	return hmac.Equal([]byte(parts[1]), []byte(expected))
}

// Duration returns the configured session lifetime.
func (m *Manager) Duration() time.Duration {
	return m.duration
}

func (m *Manager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
