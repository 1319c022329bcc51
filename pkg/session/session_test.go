package session

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_VerifyPassword(t *testing.T) {
	m := NewManager("test-secret", HashPassword("correct horse"), time.Hour)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "correct password", password: "correct horse", want: true},
		{name: "wrong password", password: "battery staple", want: false},
		{name: "empty password", password: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.VerifyPassword(tt.password))
		})
	}

	t.Run("no hash configured rejects everything", func(t *testing.T) {
		empty := NewManager("test-secret", "", time.Hour)
		assert.False(t, empty.VerifyPassword(""))
		assert.False(t, empty.VerifyPassword("anything"))
	})
}

func TestManager_Tokens(t *testing.T) {
	m := NewManager("test-secret", "", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		assert.True(t, m.VerifyToken(m.CreateToken()))
	})

	t.Run("expired token", func(t *testing.T) {
		expired := strconv.FormatInt(time.Now().Add(-time.Minute).UnixMilli(), 10)
		token := fmt.Sprintf("%s.%s", expired, m.sign(expired))
		assert.False(t, m.VerifyToken(token))
	})

	t.Run("tampered expiry", func(t *testing.T) {
		token := m.CreateToken()
		parts := strings.SplitN(token, ".", 2)
		require.Len(t, parts, 2)
		farFuture := strconv.FormatInt(time.Now().Add(24*365*time.Hour).UnixMilli(), 10)
		assert.False(t, m.VerifyToken(farFuture+"."+parts[1]))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewManager("other-secret", "", time.Hour)
		assert.False(t, m.VerifyToken(other.CreateToken()))
	})

	t.Run("malformed tokens", func(t *testing.T) {
		for _, token := range []string{"", ".", "abc", "123.", ".sig", "notanumber.sig"} {
			assert.False(t, m.VerifyToken(token), "token %q", token)
		}
	})
}

func TestNewManager_DefaultDuration(t *testing.T) {
	m := NewManager("s", "", 0)
	assert.Equal(t, 7*24*time.Hour, m.Duration())
}
