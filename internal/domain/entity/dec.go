package entity

import "time"

// Niveles de intensidad de un DEC. El nivel lo ingresa el operador; no se
// deriva de las conductas registradas.
const (
	NivelDEC1 = "Nivel 1"
	NivelDEC2 = "Nivel 2"
	NivelDEC3 = "Nivel 3"
)

// NivelDECValido indica si el nivel es uno de los tres tiers o está vacío.
func NivelDECValido(nivel string) bool {
	switch nivel {
	case "", NivelDEC1, NivelDEC2, NivelDEC3:
		return true
	}
	return false
}

// DEC es un Documento de Entrevista y Compromiso: el registro de un episodio
// conductual de un estudiante, con su análisis y las medidas acordadas.
//
// Los campos multi-selección (Antecedentes, Conductas, Consecuentes) se
// persisten siempre como conjunto de strings, nunca como string con comas.
// Las opciones centinela que terminan en "Otro:"/"Otra:" habilitan en el
// formulario los campos de texto libre asociados, que son opcionales.
type DEC struct {
	ID string

	// Datos generales
	Dia            time.Time // fecha y hora del episodio
	Hora           string    // bloque horario ("8:00 - 9:30", "Recreo 1", ...)
	HoraOtro       string
	Asignaturas    string
	AsignaturaOtra string

	// Estudiante y apoderado
	NombreEstudiante    string
	EdadEstudiante      int
	CursoEstudiante     string
	ProfeJefeEstudiante string
	NombreApoderado     string
	FonoApoderado       string

	// Personal interviniente
	EncargadoPI          string
	AcompananteInternoPI string
	AcompananteExternoPI string

	// Análisis del evento (gatillante)
	Antecedentes                       []string
	ConflictoConEstudianteAntecedentes string
	ConflictoConProfesorAntecedentes   string
	OtraAntecedentes                   string

	// Conductas observadas
	Conductas               []string
	AgresionFisicaConductas string
	OtroConductas           string
	DescripcionConductas    string
	DuracionConductas       string

	// Consecuentes y compromiso
	Consecuentes     []string
	OtroConsecuentes string
	FuncionaMedida   bool
	PropuestaMejora  string

	NivelDEC string // Nivel 1..3, ingresado por el operador

	EstablecimientoID     string
	EstablecimientoNombre string // resuelto por expansión en lecturas

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MesEfectivo devuelve la clave año-mes "YYYY-MM" del registro: el mes de Dia
// si está presente, si no el de creación.
func (d *DEC) MesEfectivo() string {
	if !d.Dia.IsZero() {
		return d.Dia.Format("2006-01")
	}
	return d.CreatedAt.Format("2006-01")
}
