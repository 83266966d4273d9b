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

// DECUseCase aplica reglas de negocio para los Documentos de Entrevista y
// Compromiso: validación del esquema completo, normalización de los campos
// multi-selección y sellado del establecimiento según el scope del autor.
type DECUseCase struct {
	repo repository.DECRepository
}

// NewDECUseCase construye el caso de uso con el puerto de persistencia.
func NewDECUseCase(repo repository.DECRepository) *DECUseCase {
	return &DECUseCase{repo: repo}
}

// validarDEC valida el registro completo de una vez (el asistente navega sin
// validar por paso; solo el envío final valida).
func validarDEC(in *dto.DECRequest) error {
	switch {
	case in.Dia.IsZero():
		return fmt.Errorf("%w: la fecha es requerida", domain.ErrInvalidInput)
	case in.NombreEstudiante == "":
		return fmt.Errorf("%w: nombre_estudiante es requerido", domain.ErrInvalidInput)
	case in.EdadEstudiante < 1:
		return fmt.Errorf("%w: edad_estudiante es requerida", domain.ErrInvalidInput)
	case in.CursoEstudiante == "":
		return fmt.Errorf("%w: curso_estudiante es requerido", domain.ErrInvalidInput)
	case in.ProfeJefeEstudiante == "":
		return fmt.Errorf("%w: profe_jefe_estudiante es requerido", domain.ErrInvalidInput)
	case in.NombreApoderado == "":
		return fmt.Errorf("%w: nombre_apoderado es requerido", domain.ErrInvalidInput)
	case in.FonoApoderado == "":
		return fmt.Errorf("%w: fono_apoderado es requerido", domain.ErrInvalidInput)
	case in.EncargadoPI == "":
		return fmt.Errorf("%w: encargado_pi es requerido", domain.ErrInvalidInput)
	case in.AcompananteInternoPI == "":
		return fmt.Errorf("%w: acompanante_interno_pi es requerido", domain.ErrInvalidInput)
	case in.AcompananteExternoPI == "":
		return fmt.Errorf("%w: acompanante_externo_pi es requerido", domain.ErrInvalidInput)
	case in.Hora == "":
		return fmt.Errorf("%w: hora es requerida", domain.ErrInvalidInput)
	case in.Asignaturas == "":
		return fmt.Errorf("%w: asignaturas es requerida", domain.ErrInvalidInput)
	}
	if !entity.NivelDECValido(in.NivelDEC) {
		return fmt.Errorf("%w: nivel_dec debe ser Nivel 1, Nivel 2 o Nivel 3", domain.ErrInvalidInput)
	}
	return nil
}

// aplicar vuelca la entrada normalizada sobre la entidad. Los multi-selección
// ya llegan como conjunto (dto.StringSet los normaliza al deserializar) y la
// fecha ya viene canonizada a UTC.
func aplicar(d *entity.DEC, in *dto.DECRequest, establecimientoID string) {
	d.Dia = in.Dia.Time
	d.Hora = in.Hora
	d.HoraOtro = in.HoraOtro
	d.Asignaturas = in.Asignaturas
	d.AsignaturaOtra = in.AsignaturaOtra

	d.NombreEstudiante = in.NombreEstudiante
	d.EdadEstudiante = in.EdadEstudiante
	d.CursoEstudiante = in.CursoEstudiante
	d.ProfeJefeEstudiante = in.ProfeJefeEstudiante
	d.NombreApoderado = in.NombreApoderado
	d.FonoApoderado = in.FonoApoderado

	d.EncargadoPI = in.EncargadoPI
	d.AcompananteInternoPI = in.AcompananteInternoPI
	d.AcompananteExternoPI = in.AcompananteExternoPI

	d.Antecedentes = in.Antecedentes
	d.ConflictoConEstudianteAntecedentes = in.ConflictoConEstudianteAntecedentes
	d.ConflictoConProfesorAntecedentes = in.ConflictoConProfesorAntecedentes
	d.OtraAntecedentes = in.OtraAntecedentes

	d.Conductas = in.Conductas
	d.AgresionFisicaConductas = in.AgresionFisicaConductas
	d.OtroConductas = in.OtroConductas
	d.DescripcionConductas = in.DescripcionConductas
	d.DuracionConductas = in.DuracionConductas

	d.Consecuentes = in.Consecuentes
	d.OtroConsecuentes = in.OtroConsecuentes
	d.FuncionaMedida = in.FuncionaMedida
	d.PropuestaMejora = in.PropuestaMejora

	d.NivelDEC = in.NivelDEC
	d.EstablecimientoID = establecimientoID
}

// Create valida y persiste un DEC nuevo. El establecimiento del formulario
// solo lo respeta un admin; para el resto se sella el del autor.
func (uc *DECUseCase) Create(ctx context.Context, scope domain.Scope, in dto.DECRequest) (*dto.DECResponse, error) {
	if err := validarDEC(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	d := &entity.DEC{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	aplicar(d, &in, scope.StampEstablecimiento(in.Establecimiento))
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return decToResponse(d), nil
}

// GetByID obtiene un DEC visible para el scope dado.
func (uc *DECUseCase) GetByID(ctx context.Context, scope domain.Scope, id string) (*dto.DECResponse, error) {
	d, err := uc.visible(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return decToResponse(d), nil
}

// Update reemplaza el registro completo (el formulario envía la forma entera).
// Un no-admin no puede mover el registro a otro establecimiento.
func (uc *DECUseCase) Update(ctx context.Context, scope domain.Scope, id string, in dto.DECRequest) (*dto.DECResponse, error) {
	if err := validarDEC(&in); err != nil {
		return nil, err
	}
	d, err := uc.visible(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	establecimiento := d.EstablecimientoID
	if scope.IsAdmin {
		establecimiento = in.Establecimiento
	}
	aplicar(d, &in, establecimiento)
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return decToResponse(d), nil
}

// List lista registros según el scope, con el filtro opcional de admin.
func (uc *DECUseCase) List(ctx context.Context, scope domain.Scope, establecimiento string, page dto.PageRequest) (*dto.DECListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ListFilter{
		Establecimiento: scope.FilterEstablecimiento(establecimiento),
		Limit:           page.Limit,
		Offset:          page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.DECResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *decToResponse(d))
	}
	return &dto.DECListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un DEC visible para el scope. Es la única acción destructiva
// de la aplicación; el prompt de confirmación vive en el cliente.
func (uc *DECUseCase) Delete(ctx context.Context, scope domain.Scope, id string) error {
	d, err := uc.visible(ctx, scope, id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// Entidad cruda para la exportación PDF (necesita todos los campos, no la
// proyección JSON).
func (uc *DECUseCase) GetEntity(ctx context.Context, scope domain.Scope, id string) (*entity.DEC, error) {
	return uc.visible(ctx, scope, id)
}

// visible obtiene el registro y aplica la regla de visibilidad: un no-admin
// con establecimiento asignado no ve filas de otros establecimientos.
func (uc *DECUseCase) visible(ctx context.Context, scope domain.Scope, id string) (*entity.DEC, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	if alcance := scope.FilterEstablecimiento(""); alcance != "" && d.EstablecimientoID != alcance {
		return nil, nil
	}
	return d, nil
}

func decToResponse(d *entity.DEC) *dto.DECResponse {
	if d == nil {
		return nil
	}
	return &dto.DECResponse{
		ID: d.ID,

		Dia:            dto.FechaHora{Time: d.Dia},
		Hora:           d.Hora,
		HoraOtro:       d.HoraOtro,
		Asignaturas:    d.Asignaturas,
		AsignaturaOtra: d.AsignaturaOtra,

		NombreEstudiante:    d.NombreEstudiante,
		EdadEstudiante:      d.EdadEstudiante,
		CursoEstudiante:     d.CursoEstudiante,
		ProfeJefeEstudiante: d.ProfeJefeEstudiante,
		NombreApoderado:     d.NombreApoderado,
		FonoApoderado:       d.FonoApoderado,

		EncargadoPI:          d.EncargadoPI,
		AcompananteInternoPI: d.AcompananteInternoPI,
		AcompananteExternoPI: d.AcompananteExternoPI,

		Antecedentes:                       dto.StringSet(d.Antecedentes),
		ConflictoConEstudianteAntecedentes: d.ConflictoConEstudianteAntecedentes,
		ConflictoConProfesorAntecedentes:   d.ConflictoConProfesorAntecedentes,
		OtraAntecedentes:                   d.OtraAntecedentes,

		Conductas:               dto.StringSet(d.Conductas),
		AgresionFisicaConductas: d.AgresionFisicaConductas,
		OtroConductas:           d.OtroConductas,
		DescripcionConductas:    d.DescripcionConductas,
		DuracionConductas:       d.DuracionConductas,

		Consecuentes:     dto.StringSet(d.Consecuentes),
		OtroConsecuentes: d.OtroConsecuentes,
		FuncionaMedida:   d.FuncionaMedida,
		PropuestaMejora:  d.PropuestaMejora,

		NivelDEC:              d.NivelDEC,
		Establecimiento:       d.EstablecimientoID,
		EstablecimientoNombre: d.EstablecimientoNombre,

		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
