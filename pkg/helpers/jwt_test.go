package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.GenerateAccessToken("user-1", "alice@x.com", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, _, err := m.GenerateAccessToken("user-1", "alice@x.com", "Alice")
	require.NoError(t, err)

	other := NewJWTManager("different-secret", time.Hour)
	_, err = other.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_Expired(t *testing.T) {
	m := &JWTManager{Secret: []byte("secret"), TokenTTL: -time.Minute}
	token, _, err := m.GenerateAccessToken("user-1", "alice@x.com", "Alice")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_Garbage(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	_, err := m.ParseAccessToken("definitely.not.a-jwt")
	assert.Error(t, err)
}
