package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
	"github.com/daemlu/convivencia-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userSelect = `
	SELECT u.id, u.name, u.email, u.password_hash, u.role,
	       u.establecimiento_id, e.nombre, u.verified, u.avatar,
	       u.created_at, u.updated_at
	FROM users u
	LEFT JOIN establecimientos e ON e.id = u.establecimiento_id`

// Create persiste un nuevo usuario. El email es único.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, establecimiento_id, verified, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Name, strings.ToLower(user.Email), user.PasswordHash, user.Role,
		nullable(user.EstablecimientoID), user.Verified, user.Avatar,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	row := r.pool.QueryRow(context.Background(), userSelect+` WHERE u.id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (comparación case-insensitive).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	row := r.pool.QueryRow(context.Background(),
		userSelect+` WHERE lower(u.email) = lower($1)`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario por email: %w", err)
	}
	return u, nil
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, password_hash = $4, role = $5,
			establecimiento_id = $6, verified = $7, avatar = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Name, strings.ToLower(user.Email), user.PasswordHash, user.Role,
		nullable(user.EstablecimientoID), user.Verified, user.Avatar, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// List lista usuarios ordenados por nombre.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := userSelect + ` ORDER BY u.name ASC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var establecimientoID, establecimientoNombre *string
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&establecimientoID, &establecimientoNombre, &u.Verified, &u.Avatar,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.EstablecimientoID = deref(establecimientoID)
	u.EstablecimientoNombre = deref(establecimientoNombre)
	return &u, nil
}
