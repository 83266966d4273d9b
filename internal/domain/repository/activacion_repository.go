package repository

import (
	"context"

	"github.com/daemlu/convivencia-api/internal/domain/entity"
)

// ActivacionRepository define el puerto de persistencia para activaciones de
// protocolo. Las lecturas resuelven los nombres de protocolo y establecimiento
// (expansión de relaciones).
type ActivacionRepository interface {
	Create(ctx context.Context, a *entity.ActivacionProtocolo) error
	GetByID(ctx context.Context, id string) (*entity.ActivacionProtocolo, error)
	Update(ctx context.Context, a *entity.ActivacionProtocolo) error
	List(ctx context.Context, filter ListFilter) ([]*entity.ActivacionProtocolo, error)
	// ListAll devuelve la colección completa (sin paginar) para el motor del
	// dashboard. establecimientoID vacío = sin restricción.
	ListAll(ctx context.Context, establecimientoID string) ([]*entity.ActivacionProtocolo, error)
	Delete(ctx context.Context, id string) error
}
