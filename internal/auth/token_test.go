package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/project-board/internal/domain"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)

	token, exp, err := tm.GenerateToken("m1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "m1", claims.MemberID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokenManagerRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 15).GenerateToken("m1", domain.RoleMember)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 15).ParseToken(token)
	require.Error(t, err)
}

func TestTokenManagerRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)
	_, err := tm.ParseToken("not.a.jwt")
	require.Error(t, err)
}
