package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestInspect_ReadsSubjectAndExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := sign(t, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})

	info, ok := Inspect(raw)
	require.True(t, ok)
	assert.Equal(t, "u1", info.Subject)
	assert.True(t, exp.Equal(info.ExpiresAt))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Minute)))
}

func TestInspect_FallsBackToIDClaim(t *testing.T) {
	info, ok := Inspect(sign(t, jwt.MapClaims{"id": "u2"}))
	require.True(t, ok)
	assert.Equal(t, "u2", info.Subject)
	assert.True(t, info.ExpiresAt.IsZero())
	assert.False(t, info.Expired(time.Now()))
}

func TestInspect_OpaqueToken(t *testing.T) {
	_, ok := Inspect("opaque-session-token")
	assert.False(t, ok)
}
