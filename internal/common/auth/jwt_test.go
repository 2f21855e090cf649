package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	id := uuid.New()

	tok, exp, err := m.GenerateAccessToken(id, "ana@example.com", RoleCustomer)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, RoleCustomer, claims.Role)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	tok, _, err := NewJWTManager("a", time.Minute).GenerateAccessToken(uuid.New(), "x@y", RoleAdmin)
	require.NoError(t, err)

	_, err = NewJWTManager("b", time.Minute).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	tok, _, err := m.GenerateAccessToken(uuid.New(), "x@y", RoleCustomer)
	require.NoError(t, err)

	_, err = m.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
