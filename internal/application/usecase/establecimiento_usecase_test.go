package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/application/usecase"
	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
)

// Fake del puerto EstablecimientoRepository. errGetByRBD simula una falla
// transitoria de la base en la búsqueda por RBD.
type fakeEstablecimientoRepo struct {
	items       map[string]*entity.Establecimiento
	errGetByRBD error
}

func newFakeEstablecimientoRepo() *fakeEstablecimientoRepo {
	return &fakeEstablecimientoRepo{items: map[string]*entity.Establecimiento{}}
}

func (r *fakeEstablecimientoRepo) Create(e *entity.Establecimiento) error {
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *fakeEstablecimientoRepo) GetByID(id string) (*entity.Establecimiento, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEstablecimientoRepo) GetByRBD(rbd int) (*entity.Establecimiento, error) {
	if r.errGetByRBD != nil {
		return nil, r.errGetByRBD
	}
	for _, e := range r.items {
		if e.RBD == rbd {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEstablecimientoRepo) Update(e *entity.Establecimiento) error {
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *fakeEstablecimientoRepo) List(limit, offset int) ([]*entity.Establecimiento, error) {
	var out []*entity.Establecimiento
	for _, e := range r.items {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeEstablecimientoRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

func TestEstablecimientoCreate_RBDDuplicado(t *testing.T) {
	uc := usecase.NewEstablecimientoUseCase(newFakeEstablecimientoRepo())

	_, err := uc.Create(dto.CreateEstablecimientoRequest{Nombre: "Escuela El Maitén", RBD: 12345})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateEstablecimientoRequest{Nombre: "Otra Escuela", RBD: 12345})
	assert.ErrorIs(t, err, domain.ErrRBDAlreadyExists,
		"el RBD es el identificador oficial y debe ser único")
}

func TestEstablecimientoCreate_PropagaErrorDeBusquedaRBD(t *testing.T) {
	repo := newFakeEstablecimientoRepo()
	repo.errGetByRBD = errors.New("conexión perdida")
	uc := usecase.NewEstablecimientoUseCase(repo)

	_, err := uc.Create(dto.CreateEstablecimientoRequest{Nombre: "Escuela", RBD: 12345})
	assert.ErrorContains(t, err, "conexión perdida",
		"una falla de la base no puede leerse como ausencia de duplicado")
	assert.Empty(t, repo.items)
}

func TestEstablecimientoUpdate_PropagaErrorDeBusquedaRBD(t *testing.T) {
	repo := newFakeEstablecimientoRepo()
	uc := usecase.NewEstablecimientoUseCase(repo)

	out, err := uc.Create(dto.CreateEstablecimientoRequest{Nombre: "Escuela", RBD: 12345})
	require.NoError(t, err)

	repo.errGetByRBD = errors.New("conexión perdida")
	nuevoRBD := 54321
	_, err = uc.Update(out.ID, dto.UpdateEstablecimientoRequest{RBD: &nuevoRBD})
	assert.ErrorContains(t, err, "conexión perdida")
	assert.Equal(t, 12345, repo.items[out.ID].RBD)
}

func TestEstablecimientoCreate_Validacion(t *testing.T) {
	uc := usecase.NewEstablecimientoUseCase(newFakeEstablecimientoRepo())

	_, err := uc.Create(dto.CreateEstablecimientoRequest{RBD: 12345})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateEstablecimientoRequest{Nombre: "Escuela", RBD: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
