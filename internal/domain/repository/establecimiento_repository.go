package repository

import "github.com/daemlu/convivencia-api/internal/domain/entity"

// EstablecimientoRepository define el puerto de persistencia para Establecimiento (DIP).
// La implementación vive en infrastructure.
type EstablecimientoRepository interface {
	Create(e *entity.Establecimiento) error
	GetByID(id string) (*entity.Establecimiento, error)
	GetByRBD(rbd int) (*entity.Establecimiento, error)
	Update(e *entity.Establecimiento) error
	List(limit, offset int) ([]*entity.Establecimiento, error)
	Delete(id string) error
}
