package auth

import (
	"context"
	"testing"
	"time"

	xerrors "fleetflow-service/internal/pkg/errors"
	"fleetflow-service/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(DemoAccounts(), token.NewManager("test-secret", time.Hour), nil, nil)
	require.NoError(t, err)
	return svc
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuth(t)

	_, err := svc.Login(context.Background(), "nobody@fleetflow.com", "fleet123")
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrUnauthorized))
	assert.Equal(t, "invalid email or password", xerrors.MessageOrDefault(err, ""))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuth(t)

	_, err := svc.Login(context.Background(), "manager@fleetflow.com", "wrong")
	require.Error(t, err)
	// same message for both failure modes, no account enumeration
	assert.Equal(t, "invalid email or password", xerrors.MessageOrDefault(err, ""))
}

func TestRoles_RosterOrderWithoutCredentials(t *testing.T) {
	svc := newTestAuth(t)

	roles := svc.Roles()
	require.Len(t, roles, 4)
	assert.Equal(t, "Fleet Manager", roles[0].Role)
	assert.Equal(t, "Dispatcher", roles[1].Role)
	assert.Equal(t, "Safety Officer", roles[2].Role)
	assert.Equal(t, "Financial Analyst", roles[3].Role)
	assert.Equal(t, "manager@fleetflow.com", roles[0].Email)
}

func TestValidate_BadToken(t *testing.T) {
	svc := newTestAuth(t)

	_, err := svc.Validate(context.Background(), "garbage")
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrUnauthorized))
}
