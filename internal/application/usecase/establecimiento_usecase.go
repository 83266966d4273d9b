package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
	"github.com/daemlu/convivencia-api/internal/domain/repository"
)

// EstablecimientoUseCase aplica reglas de negocio para establecimientos.
// Todas sus operaciones de escritura son exclusivas de admin (lo impone el router).
type EstablecimientoUseCase struct {
	repo repository.EstablecimientoRepository
}

// NewEstablecimientoUseCase construye el caso de uso con el puerto de persistencia.
func NewEstablecimientoUseCase(repo repository.EstablecimientoRepository) *EstablecimientoUseCase {
	return &EstablecimientoUseCase{repo: repo}
}

// Create crea un establecimiento. Devuelve domain.ErrRBDAlreadyExists si el RBD ya existe.
func (uc *EstablecimientoUseCase) Create(in dto.CreateEstablecimientoRequest) (*dto.EstablecimientoResponse, error) {
	if in.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre es requerido", domain.ErrInvalidInput)
	}
	if in.RBD <= 0 {
		return nil, fmt.Errorf("%w: rbd debe ser positivo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByRBD(in.RBD)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrRBDAlreadyExists
	}
	now := time.Now()
	e := &entity.Establecimiento{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		RBD:       in.RBD,
		Direccion: in.Direccion,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(e); err != nil {
		return nil, err
	}
	return establecimientoToResponse(e), nil
}

// GetByID obtiene un establecimiento por ID.
func (uc *EstablecimientoUseCase) GetByID(id string) (*dto.EstablecimientoResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return establecimientoToResponse(e), nil
}

// Update actualiza los campos presentes.
func (uc *EstablecimientoUseCase) Update(id string, in dto.UpdateEstablecimientoRequest) (*dto.EstablecimientoResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		e.Nombre = *in.Nombre
	}
	if in.RBD != nil {
		otro, err := uc.repo.GetByRBD(*in.RBD)
		if err != nil {
			return nil, err
		}
		if otro != nil && otro.ID != id {
			return nil, domain.ErrRBDAlreadyExists
		}
		e.RBD = *in.RBD
	}
	if in.Direccion != nil {
		e.Direccion = *in.Direccion
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(e); err != nil {
		return nil, err
	}
	return establecimientoToResponse(e), nil
}

// List lista establecimientos con paginación. Visible para todos los roles
// (alimenta selectores de formularios).
func (uc *EstablecimientoUseCase) List(page dto.PageRequest) (*dto.EstablecimientoListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EstablecimientoResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *establecimientoToResponse(e))
	}
	return &dto.EstablecimientoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un establecimiento por ID.
func (uc *EstablecimientoUseCase) Delete(id string) error {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func establecimientoToResponse(e *entity.Establecimiento) *dto.EstablecimientoResponse {
	if e == nil {
		return nil
	}
	return &dto.EstablecimientoResponse{
		ID:        e.ID,
		Nombre:    e.Nombre,
		RBD:       e.RBD,
		Direccion: e.Direccion,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
