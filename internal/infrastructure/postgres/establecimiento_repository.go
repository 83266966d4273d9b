package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
	"github.com/daemlu/convivencia-api/internal/domain/repository"
)

var _ repository.EstablecimientoRepository = (*EstablecimientoRepo)(nil)

// EstablecimientoRepo implementación del puerto EstablecimientoRepository sobre PostgreSQL.
type EstablecimientoRepo struct {
	pool *pgxpool.Pool
}

// NewEstablecimientoRepository construye el adaptador de persistencia para establecimientos.
func NewEstablecimientoRepository(pool *pgxpool.Pool) *EstablecimientoRepo {
	return &EstablecimientoRepo{pool: pool}
}

// Create persiste un nuevo establecimiento.
func (r *EstablecimientoRepo) Create(e *entity.Establecimiento) error {
	query := `
		INSERT INTO establecimientos (id, nombre, rbd, direccion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		e.ID, e.Nombre, e.RBD, e.Direccion, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRBDAlreadyExists
		}
		return fmt.Errorf("insert establecimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un establecimiento por ID.
func (r *EstablecimientoRepo) GetByID(id string) (*entity.Establecimiento, error) {
	return r.scanOne(`SELECT id, nombre, rbd, direccion, created_at, updated_at
		FROM establecimientos WHERE id = $1`, id)
}

// GetByRBD obtiene un establecimiento por su RBD.
func (r *EstablecimientoRepo) GetByRBD(rbd int) (*entity.Establecimiento, error) {
	return r.scanOne(`SELECT id, nombre, rbd, direccion, created_at, updated_at
		FROM establecimientos WHERE rbd = $1`, rbd)
}

func (r *EstablecimientoRepo) scanOne(query string, arg any) (*entity.Establecimiento, error) {
	var e entity.Establecimiento
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&e.ID, &e.Nombre, &e.RBD, &e.Direccion, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get establecimiento: %w", err)
	}
	return &e, nil
}

// Update actualiza un establecimiento.
func (r *EstablecimientoRepo) Update(e *entity.Establecimiento) error {
	query := `
		UPDATE establecimientos SET nombre = $2, rbd = $3, direccion = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		e.ID, e.Nombre, e.RBD, e.Direccion, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRBDAlreadyExists
		}
		return fmt.Errorf("update establecimiento: %w", err)
	}
	return nil
}

// List lista establecimientos ordenados por nombre.
func (r *EstablecimientoRepo) List(limit, offset int) ([]*entity.Establecimiento, error) {
	query := `
		SELECT id, nombre, rbd, direccion, created_at, updated_at
		FROM establecimientos ORDER BY nombre ASC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list establecimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Establecimiento
	for rows.Next() {
		var e entity.Establecimiento
		if err := rows.Scan(&e.ID, &e.Nombre, &e.RBD, &e.Direccion, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan establecimiento: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete elimina un establecimiento por ID.
func (r *EstablecimientoRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM establecimientos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete establecimiento: %w", err)
	}
	return nil
}
