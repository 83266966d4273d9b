package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daemlu/convivencia-api/internal/domain/entity"
	"github.com/daemlu/convivencia-api/internal/domain/repository"
)

var _ repository.ProtocoloRepository = (*ProtocoloRepo)(nil)

// ProtocoloRepo implementación del puerto ProtocoloRepository sobre PostgreSQL.
// Las lecturas expanden el nombre del establecimiento con LEFT JOIN.
type ProtocoloRepo struct {
	pool *pgxpool.Pool
}

// NewProtocoloRepository construye el adaptador de persistencia para el catálogo.
func NewProtocoloRepository(pool *pgxpool.Pool) *ProtocoloRepo {
	return &ProtocoloRepo{pool: pool}
}

const protocoloSelect = `
	SELECT p.id, p.nombre, p.descripcion, p.establecimiento_id, e.nombre,
	       p.created_at, p.updated_at
	FROM protocolos p
	LEFT JOIN establecimientos e ON e.id = p.establecimiento_id`

// Create persiste una nueva entrada del catálogo.
func (r *ProtocoloRepo) Create(p *entity.Protocolo) error {
	query := `
		INSERT INTO protocolos (id, nombre, descripcion, establecimiento_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Nombre, p.Descripcion, nullable(p.EstablecimientoID), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert protocolo: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada del catálogo con su establecimiento resuelto.
func (r *ProtocoloRepo) GetByID(id string) (*entity.Protocolo, error) {
	row := r.pool.QueryRow(context.Background(), protocoloSelect+` WHERE p.id = $1`, id)
	p, err := scanProtocolo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get protocolo: %w", err)
	}
	return p, nil
}

// Update actualiza una entrada del catálogo.
func (r *ProtocoloRepo) Update(p *entity.Protocolo) error {
	query := `
		UPDATE protocolos SET nombre = $2, descripcion = $3, establecimiento_id = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Nombre, p.Descripcion, nullable(p.EstablecimientoID), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update protocolo: %w", err)
	}
	return nil
}

// List lista el catálogo. Con filtro de establecimiento incluye también las
// entradas globales (sin establecimiento), que aplican a todos.
func (r *ProtocoloRepo) List(filter repository.ListFilter) ([]*entity.Protocolo, error) {
	query := protocoloSelect
	args := []any{}
	if filter.Establecimiento != "" {
		query += ` WHERE p.establecimiento_id = $1 OR p.establecimiento_id IS NULL
			ORDER BY p.nombre ASC LIMIT $2 OFFSET $3`
		args = append(args, filter.Establecimiento, filter.Limit, filter.Offset)
	} else {
		query += ` ORDER BY p.nombre ASC LIMIT $1 OFFSET $2`
		args = append(args, filter.Limit, filter.Offset)
	}
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list protocolos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Protocolo
	for rows.Next() {
		p, err := scanProtocolo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan protocolo: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina una entrada del catálogo por ID.
func (r *ProtocoloRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM protocolos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete protocolo: %w", err)
	}
	return nil
}

func scanProtocolo(row pgx.Row) (*entity.Protocolo, error) {
	var p entity.Protocolo
	var establecimientoID, establecimientoNombre *string
	err := row.Scan(
		&p.ID, &p.Nombre, &p.Descripcion, &establecimientoID, &establecimientoNombre,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.EstablecimientoID = deref(establecimientoID)
	p.EstablecimientoNombre = deref(establecimientoNombre)
	return &p, nil
}
