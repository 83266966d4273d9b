package dto

import "time"

// DECRequest entrada para crear o actualizar un DEC. Una sola forma validada
// cubre los cuatro pasos del asistente; la validación completa ocurre recién
// al enviar, no por paso.
//
// Los campos "otro/otra" solo tienen sentido cuando la selección padre incluye
// la opción centinela correspondiente, pero a nivel de esquema son opcionales.
type DECRequest struct {
	Dia            FechaHora `json:"dia"`
	Hora           string    `json:"hora"`
	HoraOtro       string    `json:"hora_otro"`
	Asignaturas    string    `json:"asignaturas"`
	AsignaturaOtra string    `json:"asignatura_otra"`

	NombreEstudiante    string `json:"nombre_estudiante"`
	EdadEstudiante      int    `json:"edad_estudiante"`
	CursoEstudiante     string `json:"curso_estudiante"`
	ProfeJefeEstudiante string `json:"profe_jefe_estudiante"`
	NombreApoderado     string `json:"nombre_apoderado"`
	FonoApoderado       string `json:"fono_apoderado"`

	EncargadoPI          string `json:"encargado_pi"`
	AcompananteInternoPI string `json:"acompanante_interno_pi"`
	AcompananteExternoPI string `json:"acompanante_externo_pi"`

	Antecedentes                       StringSet `json:"antecedentes"`
	ConflictoConEstudianteAntecedentes string    `json:"ConflictoConEstudiante_antecedentes"`
	ConflictoConProfesorAntecedentes   string    `json:"ConflictoConProfesor_antecedentes"`
	OtraAntecedentes                   string    `json:"otra_antecedentes"`

	Conductas               StringSet `json:"conductas"`
	AgresionFisicaConductas string    `json:"Agresion_fisica_conductas"`
	OtroConductas           string    `json:"otro_conductas"`
	DescripcionConductas    string    `json:"descripcion_conductas"`
	DuracionConductas       string    `json:"duracion_conductas"`

	Consecuentes     StringSet `json:"consecuentes"`
	OtroConsecuentes string    `json:"otro_consecuentes"`
	FuncionaMedida   bool      `json:"funciona_medida"`
	PropuestaMejora  string    `json:"propuesta_mejora"`

	NivelDEC        string `json:"nivel_dec"`
	Establecimiento string `json:"establecimiento"` // solo lo respeta un admin
}

// DECResponse salida de un DEC con el establecimiento resuelto.
type DECResponse struct {
	ID string `json:"id"`

	Dia            FechaHora `json:"dia"`
	Hora           string    `json:"hora"`
	HoraOtro       string    `json:"hora_otro,omitempty"`
	Asignaturas    string    `json:"asignaturas"`
	AsignaturaOtra string    `json:"asignatura_otra,omitempty"`

	NombreEstudiante    string `json:"nombre_estudiante"`
	EdadEstudiante      int    `json:"edad_estudiante"`
	CursoEstudiante     string `json:"curso_estudiante"`
	ProfeJefeEstudiante string `json:"profe_jefe_estudiante"`
	NombreApoderado     string `json:"nombre_apoderado"`
	FonoApoderado       string `json:"fono_apoderado"`

	EncargadoPI          string `json:"encargado_pi"`
	AcompananteInternoPI string `json:"acompanante_interno_pi"`
	AcompananteExternoPI string `json:"acompanante_externo_pi"`

	Antecedentes                       StringSet `json:"antecedentes"`
	ConflictoConEstudianteAntecedentes string    `json:"ConflictoConEstudiante_antecedentes,omitempty"`
	ConflictoConProfesorAntecedentes   string    `json:"ConflictoConProfesor_antecedentes,omitempty"`
	OtraAntecedentes                   string    `json:"otra_antecedentes,omitempty"`

	Conductas               StringSet `json:"conductas"`
	AgresionFisicaConductas string    `json:"Agresion_fisica_conductas,omitempty"`
	OtroConductas           string    `json:"otro_conductas,omitempty"`
	DescripcionConductas    string    `json:"descripcion_conductas,omitempty"`
	DuracionConductas       string    `json:"duracion_conductas,omitempty"`

	Consecuentes     StringSet `json:"consecuentes"`
	OtroConsecuentes string    `json:"otro_consecuentes,omitempty"`
	FuncionaMedida   bool      `json:"funciona_medida"`
	PropuestaMejora  string    `json:"propuesta_mejora,omitempty"`

	NivelDEC              string `json:"nivel_dec,omitempty"`
	Establecimiento       string `json:"establecimiento,omitempty"`
	EstablecimientoNombre string `json:"establecimiento_nombre,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DECListResponse lista paginada de registros DEC.
type DECListResponse struct {
	Items []DECResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
