package usecase_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/application/usecase"
	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
)

// Fake del puerto UserRepository. errGetByEmail simula una falla transitoria
// de la base en la búsqueda por email.
type fakeUserRepo struct {
	items         map[string]*entity.User
	errGetByEmail error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	if r.errGetByEmail != nil {
		return nil, r.errGetByEmail
	}
	for _, u := range r.items {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.items {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

func userValido() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Name:            "Ana Muñoz",
		Email:           "ana@daemlaunion.cl",
		Password:        "secreta-123",
		PasswordConfirm: "secreta-123",
		Role:            "User",
		Establecimiento: "esc-1",
	}
}

func TestUserCreate_QuedaVerificadoYConHash(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(userValido())
	require.NoError(t, err)
	assert.True(t, out.Verified, "la vía privilegiada deja la cuenta verificada de inmediato")
	assert.Equal(t, "user", out.Role, "el rol se normaliza a minúsculas")

	guardado := repo.items[out.ID]
	require.NotNil(t, guardado)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("secreta-123")))
}

func TestUserCreate_ContrasenasDebenCoincidir(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	in := userValido()
	in.PasswordConfirm = "otra-cosa-123"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_ContrasenaCorta(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	in := userValido()
	in.Password, in.PasswordConfirm = "corta", "corta"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_RolInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	in := userValido()
	in.Role = "superuser"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Create(userValido())
	require.NoError(t, err)
	_, err = uc.Create(userValido())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserCreate_PropagaErrorDeBusquedaEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.errGetByEmail = errors.New("conexión perdida")
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Create(userValido())
	assert.ErrorContains(t, err, "conexión perdida",
		"una falla de la base no puede leerse como ausencia de duplicado")
	assert.Empty(t, repo.items)
}

func TestUserUpdate_PasswordVacioNoCambiaElHash(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	creado, err := uc.Create(userValido())
	require.NoError(t, err)
	hashOriginal := repo.items[creado.ID].PasswordHash

	nombre := "Ana M. Muñoz"
	_, err = uc.Update(creado.ID, dto.UpdateUserRequest{Name: &nombre})
	require.NoError(t, err)
	assert.Equal(t, hashOriginal, repo.items[creado.ID].PasswordHash)
	assert.Equal(t, nombre, repo.items[creado.ID].Name)
}

func TestUserDelete_Inexistente(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())
	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrUserNotFound)
}
