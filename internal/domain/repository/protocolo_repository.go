package repository

import "github.com/daemlu/convivencia-api/internal/domain/entity"

// ListFilter restringe un listado por establecimiento. Establecimiento vacío
// significa sin restricción (vista global).
type ListFilter struct {
	Establecimiento string // ID del establecimiento
	Limit           int
	Offset          int
}

// ProtocoloRepository define el puerto de persistencia para el catálogo de protocolos.
type ProtocoloRepository interface {
	Create(p *entity.Protocolo) error
	GetByID(id string) (*entity.Protocolo, error)
	Update(p *entity.Protocolo) error
	List(filter ListFilter) ([]*entity.Protocolo, error)
	Delete(id string) error
}
