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

var _ repository.ActivacionRepository = (*ActivacionRepo)(nil)

// ActivacionRepo implementación del puerto ActivacionRepository sobre PostgreSQL.
// Las lecturas expanden protocolo y establecimiento con LEFT JOIN.
type ActivacionRepo struct {
	pool *pgxpool.Pool
}

// NewActivacionRepository construye el adaptador de persistencia para activaciones.
func NewActivacionRepository(pool *pgxpool.Pool) *ActivacionRepo {
	return &ActivacionRepo{pool: pool}
}

const activacionSelect = `
	SELECT a.id, a.meses, a.cantidad, a.protocolo_id, p.nombre,
	       a.establecimiento_id, e.nombre, a.created_at, a.updated_at
	FROM activaciones_protocolo a
	LEFT JOIN protocolos p ON p.id = a.protocolo_id
	LEFT JOIN establecimientos e ON e.id = a.establecimiento_id`

// Create persiste una nueva activación.
func (r *ActivacionRepo) Create(ctx context.Context, a *entity.ActivacionProtocolo) error {
	query := `
		INSERT INTO activaciones_protocolo (id, meses, cantidad, protocolo_id, establecimiento_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Meses, a.Cantidad, a.ProtocoloID, nullable(a.EstablecimientoID),
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activacion: %w", err)
	}
	return nil
}

// GetByID obtiene una activación con sus relaciones resueltas.
func (r *ActivacionRepo) GetByID(ctx context.Context, id string) (*entity.ActivacionProtocolo, error) {
	row := r.pool.QueryRow(ctx, activacionSelect+` WHERE a.id = $1`, id)
	a, err := scanActivacion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activacion: %w", err)
	}
	return a, nil
}

// Update actualiza una activación.
func (r *ActivacionRepo) Update(ctx context.Context, a *entity.ActivacionProtocolo) error {
	query := `
		UPDATE activaciones_protocolo
		SET meses = $2, cantidad = $3, protocolo_id = $4, establecimiento_id = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Meses, a.Cantidad, a.ProtocoloID, nullable(a.EstablecimientoID), a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update activacion: %w", err)
	}
	return nil
}

// List lista activaciones paginadas, más recientes primero.
func (r *ActivacionRepo) List(ctx context.Context, filter repository.ListFilter) ([]*entity.ActivacionProtocolo, error) {
	query := activacionSelect
	args := []any{}
	if filter.Establecimiento != "" {
		query += ` WHERE a.establecimiento_id = $1
			ORDER BY a.created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, filter.Establecimiento, filter.Limit, filter.Offset)
	} else {
		query += ` ORDER BY a.created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, filter.Limit, filter.Offset)
	}
	return r.queryActivaciones(ctx, query, args...)
}

// ListAll devuelve la colección completa para el motor del dashboard.
func (r *ActivacionRepo) ListAll(ctx context.Context, establecimientoID string) ([]*entity.ActivacionProtocolo, error) {
	query := activacionSelect
	args := []any{}
	if establecimientoID != "" {
		query += ` WHERE a.establecimiento_id = $1`
		args = append(args, establecimientoID)
	}
	query += ` ORDER BY a.created_at DESC`
	return r.queryActivaciones(ctx, query, args...)
}

// Delete elimina una activación por ID.
func (r *ActivacionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM activaciones_protocolo WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activacion: %w", err)
	}
	return nil
}

func (r *ActivacionRepo) queryActivaciones(ctx context.Context, query string, args ...any) ([]*entity.ActivacionProtocolo, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivacionProtocolo
	for rows.Next() {
		a, err := scanActivacion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activacion: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanActivacion(row pgx.Row) (*entity.ActivacionProtocolo, error) {
	var a entity.ActivacionProtocolo
	var protocoloNombre, establecimientoID, establecimientoNombre *string
	err := row.Scan(
		&a.ID, &a.Meses, &a.Cantidad, &a.ProtocoloID, &protocoloNombre,
		&establecimientoID, &establecimientoNombre, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.ProtocoloNombre = deref(protocoloNombre)
	a.EstablecimientoID = deref(establecimientoID)
	a.EstablecimientoNombre = deref(establecimientoNombre)
	return &a, nil
}
