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

var _ repository.DECRepository = (*DECRepo)(nil)

// DECRepo implementación del puerto DECRepository sobre PostgreSQL.
// Los campos multi-selección se persisten como TEXT[]; pgx los escanea
// directamente a []string.
type DECRepo struct {
	pool *pgxpool.Pool
}

// NewDECRepository construye el adaptador de persistencia para registros DEC.
func NewDECRepository(pool *pgxpool.Pool) *DECRepo {
	return &DECRepo{pool: pool}
}

const decSelect = `
	SELECT d.id, d.dia, d.hora, d.hora_otro, d.asignaturas, d.asignatura_otra,
	       d.nombre_estudiante, d.edad_estudiante, d.curso_estudiante,
	       d.profe_jefe_estudiante, d.nombre_apoderado, d.fono_apoderado,
	       d.encargado_pi, d.acompanante_interno_pi, d.acompanante_externo_pi,
	       d.antecedentes, d.conflicto_con_estudiante_antecedentes,
	       d.conflicto_con_profesor_antecedentes, d.otra_antecedentes,
	       d.conductas, d.agresion_fisica_conductas, d.otro_conductas,
	       d.descripcion_conductas, d.duracion_conductas,
	       d.consecuentes, d.otro_consecuentes, d.funciona_medida, d.propuesta_mejora,
	       d.nivel_dec, d.establecimiento_id, e.nombre, d.created_at, d.updated_at
	FROM dec d
	LEFT JOIN establecimientos e ON e.id = d.establecimiento_id`

const decInsert = `
		INSERT INTO dec (
			id, dia, hora, hora_otro, asignaturas, asignatura_otra,
			nombre_estudiante, edad_estudiante, curso_estudiante,
			profe_jefe_estudiante, nombre_apoderado, fono_apoderado,
			encargado_pi, acompanante_interno_pi, acompanante_externo_pi,
			antecedentes, conflicto_con_estudiante_antecedentes,
			conflicto_con_profesor_antecedentes, otra_antecedentes,
			conductas, agresion_fisica_conductas, otro_conductas,
			descripcion_conductas, duracion_conductas,
			consecuentes, otro_consecuentes, funciona_medida, propuesta_mejora,
			nivel_dec, establecimiento_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32
		)`

const decUpdate = `
		UPDATE dec SET
			dia = $2, hora = $3, hora_otro = $4, asignaturas = $5, asignatura_otra = $6,
			nombre_estudiante = $7, edad_estudiante = $8, curso_estudiante = $9,
			profe_jefe_estudiante = $10, nombre_apoderado = $11, fono_apoderado = $12,
			encargado_pi = $13, acompanante_interno_pi = $14, acompanante_externo_pi = $15,
			antecedentes = $16, conflicto_con_estudiante_antecedentes = $17,
			conflicto_con_profesor_antecedentes = $18, otra_antecedentes = $19,
			conductas = $20, agresion_fisica_conductas = $21, otro_conductas = $22,
			descripcion_conductas = $23, duracion_conductas = $24,
			consecuentes = $25, otro_consecuentes = $26, funciona_medida = $27,
			propuesta_mejora = $28, nivel_dec = $29, establecimiento_id = $30,
			updated_at = $31
		WHERE id = $1`

// Create persiste un nuevo DEC.
func (r *DECRepo) Create(ctx context.Context, d *entity.DEC) error {
	args := append(decArgs(d), d.CreatedAt, d.UpdatedAt)
	_, err := r.pool.Exec(ctx, decInsert, args...)
	if err != nil {
		return fmt.Errorf("insert dec: %w", err)
	}
	return nil
}

// GetByID obtiene un DEC con su establecimiento resuelto.
func (r *DECRepo) GetByID(ctx context.Context, id string) (*entity.DEC, error) {
	row := r.pool.QueryRow(ctx, decSelect+` WHERE d.id = $1`, id)
	d, err := scanDEC(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dec: %w", err)
	}
	return d, nil
}

// Update actualiza un DEC existente. created_at es solo de inserción.
func (r *DECRepo) Update(ctx context.Context, d *entity.DEC) error {
	args := append(decArgs(d), d.UpdatedAt)
	_, err := r.pool.Exec(ctx, decUpdate, args...)
	if err != nil {
		return fmt.Errorf("update dec: %w", err)
	}
	return nil
}

// List lista registros DEC paginados, los más recientes primero.
func (r *DECRepo) List(ctx context.Context, filter repository.ListFilter) ([]*entity.DEC, error) {
	query := decSelect
	args := []any{}
	if filter.Establecimiento != "" {
		query += ` WHERE d.establecimiento_id = $1
			ORDER BY d.created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, filter.Establecimiento, filter.Limit, filter.Offset)
	} else {
		query += ` ORDER BY d.created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, filter.Limit, filter.Offset)
	}
	return r.queryDEC(ctx, query, args...)
}

// ListAll devuelve la colección completa para el motor del dashboard.
func (r *DECRepo) ListAll(ctx context.Context, establecimientoID string) ([]*entity.DEC, error) {
	query := decSelect
	args := []any{}
	if establecimientoID != "" {
		query += ` WHERE d.establecimiento_id = $1`
		args = append(args, establecimientoID)
	}
	query += ` ORDER BY d.created_at DESC`
	return r.queryDEC(ctx, query, args...)
}

// Delete elimina un DEC por ID.
func (r *DECRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM dec WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dec: %w", err)
	}
	return nil
}

func (r *DECRepo) queryDEC(ctx context.Context, query string, args ...any) ([]*entity.DEC, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dec: %w", err)
	}
	defer rows.Close()
	var list []*entity.DEC
	for rows.Next() {
		d, err := scanDEC(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dec: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// decArgs ordena los valores de $1..$30, el prefijo común de INSERT y UPDATE.
// Los timestamps van aparte: cada sentencia referencia solo los suyos para
// que todo placeholder quede numerado de forma contigua.
func decArgs(d *entity.DEC) []any {
	return []any{
		d.ID, d.Dia, d.Hora, d.HoraOtro, d.Asignaturas, d.AsignaturaOtra,
		d.NombreEstudiante, d.EdadEstudiante, d.CursoEstudiante,
		d.ProfeJefeEstudiante, d.NombreApoderado, d.FonoApoderado,
		d.EncargadoPI, d.AcompananteInternoPI, d.AcompananteExternoPI,
		d.Antecedentes, d.ConflictoConEstudianteAntecedentes,
		d.ConflictoConProfesorAntecedentes, d.OtraAntecedentes,
		d.Conductas, d.AgresionFisicaConductas, d.OtroConductas,
		d.DescripcionConductas, d.DuracionConductas,
		d.Consecuentes, d.OtroConsecuentes, d.FuncionaMedida, d.PropuestaMejora,
		d.NivelDEC, nullable(d.EstablecimientoID),
	}
}

func scanDEC(row pgx.Row) (*entity.DEC, error) {
	var d entity.DEC
	var establecimientoID, establecimientoNombre *string
	err := row.Scan(
		&d.ID, &d.Dia, &d.Hora, &d.HoraOtro, &d.Asignaturas, &d.AsignaturaOtra,
		&d.NombreEstudiante, &d.EdadEstudiante, &d.CursoEstudiante,
		&d.ProfeJefeEstudiante, &d.NombreApoderado, &d.FonoApoderado,
		&d.EncargadoPI, &d.AcompananteInternoPI, &d.AcompananteExternoPI,
		&d.Antecedentes, &d.ConflictoConEstudianteAntecedentes,
		&d.ConflictoConProfesorAntecedentes, &d.OtraAntecedentes,
		&d.Conductas, &d.AgresionFisicaConductas, &d.OtroConductas,
		&d.DescripcionConductas, &d.DuracionConductas,
		&d.Consecuentes, &d.OtroConsecuentes, &d.FuncionaMedida, &d.PropuestaMejora,
		&d.NivelDEC, &establecimientoID, &establecimientoNombre,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.EstablecimientoID = deref(establecimientoID)
	d.EstablecimientoNombre = deref(establecimientoNombre)
	return &d, nil
}
