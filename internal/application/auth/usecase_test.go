package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kemaxx/InventoryInsights/internal/application/auth"
	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/pkg/jwt"
)

const secret = "test-secret"

func newUseCase(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewAuthUseCase([]auth.Account{
		{Username: "storekeeper", PasswordHash: string(hash), Role: auth.RoleOperator},
		{Username: "sin-hash", Role: auth.RoleViewer},
	}, auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "test"})
}

func TestLogin_Correcto(t *testing.T) {
	uc := newUseCase(t)
	out, err := uc.Login(dto.LoginRequest{Username: "storekeeper", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleOperator, out.Role)
	assert.False(t, out.ExpiresAt.IsZero())

	sub, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "storekeeper", sub)
	assert.Equal(t, auth.RoleOperator, role)
}

func TestLogin_Rechazos(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Login(dto.LoginRequest{Username: "storekeeper", Password: "mal"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Username: "nadie", Password: "s3cret"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Username: "sin-hash", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Username: "storekeeper"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
