package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
	"github.com/daemlu/convivencia-api/internal/domain/repository"
)

const minPasswordLen = 8

// UserUseCase es la vía privilegiada de administración de cuentas. Solo la
// alcanzan rutas restringidas a admin; los usuarios creados quedan verificados
// de inmediato (la sesión de un usuario final no tiene ese permiso).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario verificado con contraseña hasheada (bcrypt).
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: la contraseña requiere al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	if in.Password != in.PasswordConfirm {
		return nil, fmt.Errorf("%w: las contraseñas no coinciden", domain.ErrInvalidInput)
	}
	role := strings.ToLower(in.Role)
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, fmt.Errorf("%w: role debe ser Admin o User", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:                uuid.New().String(),
		Name:              name,
		Email:             in.Email,
		PasswordHash:      string(hash),
		Role:              role,
		EstablecimientoID: in.Establecimiento,
		Verified:          true, // creación mediada por admin: verificado de inmediato
		Avatar:            in.Avatar,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

// Update actualiza los campos presentes. Password vacío no cambia la contraseña.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		if *in.Email == "" || !strings.Contains(*in.Email, "@") {
			return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
		}
		if otro, _ := uc.repo.GetByEmail(*in.Email); otro != nil && otro.ID != id {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return nil, fmt.Errorf("%w: la contraseña requiere al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
		}
		if in.Password != in.PasswordConfirm {
			return nil, fmt.Errorf("%w: las contraseñas no coinciden", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil {
		role := strings.ToLower(*in.Role)
		if role != domain.RoleAdmin && role != domain.RoleUser {
			return nil, fmt.Errorf("%w: role debe ser Admin o User", domain.ErrInvalidInput)
		}
		user.Role = role
	}
	if in.Establecimiento != nil {
		user.EstablecimientoID = *in.Establecimiento
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return userToResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *userToResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(id)
}

func userToResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                    u.ID,
		Name:                  u.Name,
		Email:                 u.Email,
		Role:                  u.Role,
		Establecimiento:       u.EstablecimientoID,
		EstablecimientoNombre: u.EstablecimientoNombre,
		Verified:              u.Verified,
		Avatar:                u.Avatar,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}
