package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Minute)

	token, err := m.GenerateAccessToken("ops", RoleAdmin)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestManager_RejectsForeignAndExpiredTokens(t *testing.T) {
	token, err := NewManager("other", time.Minute).GenerateAccessToken("ops", RoleAdmin)
	require.NoError(t, err)
	_, err = NewManager("secret", time.Minute).ValidateAccessToken(token)
	assert.Error(t, err)

	stale := &Manager{secret: "secret", expiry: -time.Minute}
	expired, err := stale.GenerateAccessToken("ops", RoleEditor)
	require.NoError(t, err)
	_, err = NewManager("secret", time.Minute).ValidateAccessToken(expired)
	assert.Error(t, err)

	_, err = NewManager("secret", time.Minute).ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
