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

// ProtocoloUseCase aplica reglas de negocio para el catálogo de protocolos.
// Crear/editar/eliminar es de admin; la lectura es general (alimenta el
// selector del formulario de activaciones) y respeta el scope.
type ProtocoloUseCase struct {
	repo repository.ProtocoloRepository
}

// NewProtocoloUseCase construye el caso de uso con el puerto de persistencia.
func NewProtocoloUseCase(repo repository.ProtocoloRepository) *ProtocoloUseCase {
	return &ProtocoloUseCase{repo: repo}
}

// Create crea una entrada del catálogo.
func (uc *ProtocoloUseCase) Create(in dto.CreateProtocoloRequest) (*dto.ProtocoloResponse, error) {
	if in.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	p := &entity.Protocolo{
		ID:                uuid.New().String(),
		Nombre:            in.Nombre,
		Descripcion:       in.Descripcion,
		EstablecimientoID: in.Establecimiento,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return protocoloToResponse(p), nil
}

// GetByID obtiene una entrada del catálogo por ID.
func (uc *ProtocoloUseCase) GetByID(id string) (*dto.ProtocoloResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return protocoloToResponse(p), nil
}

// Update actualiza los campos presentes.
func (uc *ProtocoloUseCase) Update(id string, in dto.UpdateProtocoloRequest) (*dto.ProtocoloResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		p.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		p.Descripcion = *in.Descripcion
	}
	if in.Establecimiento != nil {
		p.EstablecimientoID = *in.Establecimiento
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return protocoloToResponse(p), nil
}

// List lista el catálogo según el scope del usuario. Las entradas de catálogo
// global (sin establecimiento) las incluye el repositorio aun con filtro.
func (uc *ProtocoloUseCase) List(scope domain.Scope, establecimiento string, page dto.PageRequest) (*dto.ProtocoloListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(repository.ListFilter{
		Establecimiento: scope.FilterEstablecimiento(establecimiento),
		Limit:           page.Limit,
		Offset:          page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProtocoloResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *protocoloToResponse(p))
	}
	return &dto.ProtocoloListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una entrada del catálogo por ID.
func (uc *ProtocoloUseCase) Delete(id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func protocoloToResponse(p *entity.Protocolo) *dto.ProtocoloResponse {
	if p == nil {
		return nil
	}
	return &dto.ProtocoloResponse{
		ID:                    p.ID,
		Nombre:                p.Nombre,
		Descripcion:           p.Descripcion,
		Establecimiento:       p.EstablecimientoID,
		EstablecimientoNombre: p.EstablecimientoNombre,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
