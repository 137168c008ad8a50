package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login y consulta de la identidad actual.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password, genera JWT y retorna token + usuario + capacidades.
// Usuario inexistente y password incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son obligatorios", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthenticated)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthenticated)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		BaseID:   user.BaseIDOrEmpty(),
		FullName: user.FullName,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{
		Token:        token,
		User:         dto.NewUserResponse(user),
		Capabilities: CapabilityMap(user.Role),
	}, nil
}

// Me devuelve la identidad del token con sus capacidades, sin consultar la DB.
func (uc *AuthUseCase) Me(id authz.Identity) *dto.MeResponse {
	var baseID *string
	if id.BaseID != "" {
		b := id.BaseID
		baseID = &b
	}
	return &dto.MeResponse{
		User: dto.UserResponse{
			ID:       id.UserID,
			Username: id.Username,
			FullName: id.FullName,
			Role:     string(id.Role),
			BaseID:   baseID,
		},
		Capabilities: CapabilityMap(id.Role),
	}
}

// Roles devuelve la matriz de permisos completa para GET /api/roles.
func Roles() []dto.RoleCapabilities {
	roles := entity.Roles()
	out := make([]dto.RoleCapabilities, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleCapabilities{Role: string(r), Capabilities: CapabilityMap(r)})
	}
	return out
}

// CapabilityMap fila de la matriz con claves string para serializar.
func CapabilityMap(role entity.Role) map[string]bool {
	row := authz.CapabilitiesOf(role)
	out := make(map[string]bool, len(row))
	for c, v := range row {
		out[string(c)] = v
	}
	return out
}
