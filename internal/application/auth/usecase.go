package auth

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/pkg/jwt"
)

// Roles de la API.
const (
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Account cuenta configurada: usuario, hash bcrypt y rol.
type Account struct {
	Username     string
	PasswordHash string
	Role         string
}

// AuthUseCase login de las cuentas configuradas (no hay registro de usuarios).
type AuthUseCase struct {
	accounts map[string]Account
	jwtCfg   JWTConfig
	validate *validator.Validate
}

// NewAuthUseCase construye el caso de uso; se ignoran cuentas sin usuario o sin hash.
func NewAuthUseCase(accounts []Account, jwtCfg JWTConfig) *AuthUseCase {
	m := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		if a.Username == "" || a.PasswordHash == "" {
			continue
		}
		m[a.Username] = a
	}
	return &AuthUseCase{accounts: m, jwtCfg: jwtCfg, validate: validator.New()}
}

// Login verifica usuario/password y genera el JWT con el rol de la cuenta.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	acc, ok := uc.accounts[in.Username]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, acc.Username, acc.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		Username:  acc.Username,
		Role:      acc.Role,
	}, nil
}
