package repository

import (
	"context"

	"github.com/daemlu/convivencia-api/internal/domain/entity"
)

// DECRepository define el puerto de persistencia para los registros DEC.
// Las lecturas resuelven el nombre del establecimiento (expansión de relaciones).
type DECRepository interface {
	Create(ctx context.Context, d *entity.DEC) error
	GetByID(ctx context.Context, id string) (*entity.DEC, error)
	Update(ctx context.Context, d *entity.DEC) error
	List(ctx context.Context, filter ListFilter) ([]*entity.DEC, error)
	// ListAll devuelve la colección completa (sin paginar) para el motor del
	// dashboard. establecimientoID vacío = sin restricción.
	ListAll(ctx context.Context, establecimientoID string) ([]*entity.DEC, error)
	Delete(ctx context.Context, id string) error
}
