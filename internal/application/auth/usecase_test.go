package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daemlu/convivencia-api/internal/application/auth"
	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
	"github.com/daemlu/convivencia-api/pkg/jwt"
)

type fakeUserRepo struct {
	items map[string]*entity.User
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

const testSecret = "test-secret-key-for-unit-tests"

func testJWTConfig() auth.JWTConfig {
	return auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "convivencia-test"}
}

func sembrarUsuario(t *testing.T, repo *fakeUserRepo, email, password, role, establecimiento string, verified bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(&entity.User{
		ID:                "user-" + email,
		Name:              email,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		EstablecimientoID: establecimiento,
		Verified:          verified,
	}))
}

func TestLogin_TokenLlevaRolYEstablecimiento(t *testing.T) {
	repo := newFakeUserRepo()
	sembrarUsuario(t, repo, "ana@daemlaunion.cl", "secreta-123", "user", "esc-1", true)
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	out, err := uc.Login(dto.LoginRequest{Email: "ana@daemlaunion.cl", Password: "secreta-123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "esc-1", claims.Establecimiento,
		"el scoping por establecimiento no debe necesitar otra consulta")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUserRepo()
	sembrarUsuario(t, repo, "ana@daemlaunion.cl", "secreta-123", "user", "", true)
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.Login(dto.LoginRequest{Email: "ana@daemlaunion.cl", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTConfig())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@daemlaunion.cl", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_NoVerificadoBloqueado(t *testing.T) {
	repo := newFakeUserRepo()
	sembrarUsuario(t, repo, "ana@daemlaunion.cl", "secreta-123", "user", "", false)
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.Login(dto.LoginRequest{Email: "ana@daemlaunion.cl", Password: "secreta-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEnsureAdmin_SiembraUnaVez(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	require.NoError(t, uc.EnsureAdmin("admin@daemlaunion.cl", "arranque-123", "Admin DAEM"))
	require.Len(t, repo.items, 1)

	admin, err := repo.GetByEmail("admin@daemlaunion.cl")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.Verified)

	// segunda invocación: idempotente, no duplica ni pisa la contraseña
	require.NoError(t, uc.EnsureAdmin("admin@daemlaunion.cl", "otra-password", "Admin DAEM"))
	assert.Len(t, repo.items, 1)
	mismo, _ := repo.GetByEmail("admin@daemlaunion.cl")
	assert.Equal(t, admin.PasswordHash, mismo.PasswordHash)
}

func TestEnsureAdmin_DeshabilitadoConEmailVacio(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	require.NoError(t, uc.EnsureAdmin("", "ignorada", "nadie"))
	assert.Empty(t, repo.items)
}
