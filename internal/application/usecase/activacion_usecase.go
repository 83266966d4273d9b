package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
	"github.com/daemlu/convivencia-api/internal/domain/repository"
)

// ActivacionUseCase aplica reglas de negocio para las activaciones mensuales
// de protocolos. Los no-admin solo crean y ven filas de su establecimiento.
type ActivacionUseCase struct {
	repo repository.ActivacionRepository
}

// NewActivacionUseCase construye el caso de uso con el puerto de persistencia.
func NewActivacionUseCase(repo repository.ActivacionRepository) *ActivacionUseCase {
	return &ActivacionUseCase{repo: repo}
}

func validarActivacion(meses string, cantidad int, protocolo string) error {
	if meses == "" {
		return fmt.Errorf("%w: meses es requerido", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01", meses); err != nil {
		return fmt.Errorf("%w: meses debe tener la forma YYYY-MM", domain.ErrInvalidInput)
	}
	if cantidad < 1 {
		return fmt.Errorf("%w: cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	if protocolo == "" {
		return fmt.Errorf("%w: protocolo es requerido", domain.ErrInvalidInput)
	}
	return nil
}

// Create registra una activación. El establecimiento del formulario solo lo
// respeta un admin; para el resto se sella el del autor.
func (uc *ActivacionUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreateActivacionRequest) (*dto.ActivacionResponse, error) {
	if err := validarActivacion(in.Meses, in.Cantidad, in.Protocolo); err != nil {
		return nil, err
	}
	now := time.Now()
	a := &entity.ActivacionProtocolo{
		ID:                uuid.New().String(),
		Meses:             in.Meses,
		Cantidad:          in.Cantidad,
		ProtocoloID:       in.Protocolo,
		EstablecimientoID: scope.StampEstablecimiento(in.Establecimiento),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return activacionToResponse(a), nil
}

// GetByID obtiene una activación visible para el scope dado.
func (uc *ActivacionUseCase) GetByID(ctx context.Context, scope domain.Scope, id string) (*dto.ActivacionResponse, error) {
	a, err := uc.visible(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	return activacionToResponse(a), nil
}

// Update actualiza los campos presentes. Un no-admin no puede mover la fila a
// otro establecimiento.
func (uc *ActivacionUseCase) Update(ctx context.Context, scope domain.Scope, id string, in dto.UpdateActivacionRequest) (*dto.ActivacionResponse, error) {
	a, err := uc.visible(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	if in.Meses != nil {
		a.Meses = *in.Meses
	}
	if in.Cantidad != nil {
		a.Cantidad = *in.Cantidad
	}
	if in.Protocolo != nil {
		a.ProtocoloID = *in.Protocolo
	}
	if in.Establecimiento != nil && scope.IsAdmin {
		a.EstablecimientoID = *in.Establecimiento
	}
	if err := validarActivacion(a.Meses, a.Cantidad, a.ProtocoloID); err != nil {
		return nil, err
	}
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return activacionToResponse(a), nil
}

// List lista activaciones según el scope, con el filtro opcional de admin.
func (uc *ActivacionUseCase) List(ctx context.Context, scope domain.Scope, establecimiento string, page dto.PageRequest) (*dto.ActivacionListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ListFilter{
		Establecimiento: scope.FilterEstablecimiento(establecimiento),
		Limit:           page.Limit,
		Offset:          page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivacionResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *activacionToResponse(a))
	}
	return &dto.ActivacionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una activación visible para el scope.
func (uc *ActivacionUseCase) Delete(ctx context.Context, scope domain.Scope, id string) error {
	a, err := uc.visible(ctx, scope, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ActivacionUseCase) visible(ctx context.Context, scope domain.Scope, id string) (*entity.ActivacionProtocolo, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	if alcance := scope.FilterEstablecimiento(""); alcance != "" && a.EstablecimientoID != alcance {
		return nil, nil
	}
	return a, nil
}

func activacionToResponse(a *entity.ActivacionProtocolo) *dto.ActivacionResponse {
	if a == nil {
		return nil
	}
	return &dto.ActivacionResponse{
		ID:                    a.ID,
		Meses:                 a.Meses,
		Cantidad:              a.Cantidad,
		Protocolo:             a.ProtocoloID,
		ProtocoloNombre:       a.ProtocoloNombre,
		Establecimiento:       a.EstablecimientoID,
		EstablecimientoNombre: a.EstablecimientoNombre,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}
