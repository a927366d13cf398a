package token

import (
	"testing"
	"time"

	xerrors "fleetflow-service/internal/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerify_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	signed, jti, err := m.Generate("manager@fleetflow.com", "Arjun Mehta", "Fleet Manager")
	require.NoError(t, err)
	assert.NotEmpty(t, jti)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "manager@fleetflow.com", claims.Subject)
	assert.Equal(t, "Arjun Mehta", claims.Name)
	assert.Equal(t, "Fleet Manager", claims.Role)
	assert.Equal(t, jti, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, _, err := NewManager("secret-a", time.Hour).Generate("x@fleetflow.com", "X", "Dispatcher")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(signed)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrUnauthorized))
}

func TestVerify_Expired(t *testing.T) {
	signed, _, err := NewManager("test-secret", -time.Minute).Generate("x@fleetflow.com", "X", "Dispatcher")
	require.NoError(t, err)

	_, err = NewManager("test-secret", time.Hour).Verify(signed)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrUnauthorized))
}

func TestVerify_WrongIssuer(t *testing.T) {
	claims := &Claims{
		Name: "X",
		Role: "Dispatcher",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "x@fleetflow.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewManager("test-secret", time.Hour).Verify(signed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid issuer")
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).Verify("not-a-token")
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrUnauthorized))
}
