// Package auth contiene los casos de uso de autenticación: login y la siembra
// del primer administrador con credenciales elevadas de arranque.
package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
	"github.com/daemlu/convivencia-api/internal/domain/repository"
	"github.com/daemlu/convivencia-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera el JWT (con rol y establecimiento en
// los claims) y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Verified {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.EstablecimientoID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:                    user.ID,
			Name:                  user.Name,
			Email:                 user.Email,
			Role:                  user.Role,
			Establecimiento:       user.EstablecimientoID,
			EstablecimientoNombre: user.EstablecimientoNombre,
			Verified:              user.Verified,
			Avatar:                user.Avatar,
			CreatedAt:             user.CreatedAt,
			UpdatedAt:             user.UpdatedAt,
		},
	}, nil
}

// EnsureAdmin siembra el primer administrador a partir de las credenciales
// elevadas de arranque. Si el email ya existe no hace nada. Con email vacío
// la siembra está deshabilitada.
func (uc *AuthUseCase) EnsureAdmin(email, password, name string) error {
	if email == "" {
		return nil
	}
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	return uc.userRepo.Create(&entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
