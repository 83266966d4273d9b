package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daemlu/convivencia-api/internal/domain/entity"
)

func TestCampo_ValorVacioSeOmite(t *testing.T) {
	assert.Nil(t, campo("Otras medidas", ""),
		"nunca debe imprimirse una línea 'Etiqueta:' sin valor")
	assert.Len(t, campo("Otras medidas", "diálogo"), 1)
}

func TestCamposPar_OmisionPorMitades(t *testing.T) {
	assert.Nil(t, camposPar("Curso", "", "Edad", ""),
		"la fila entera se omite si ambos valores son vacíos")
	assert.Len(t, camposPar("Curso", "6°B", "Edad", ""), 1)
	assert.Len(t, camposPar("Curso", "", "Edad", "12 años"), 1)
}

func TestFechaLarga(t *testing.T) {
	assert.Equal(t, "sábado, 15 de agosto de 2026",
		fechaLarga(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", fechaLarga(time.Time{}))
}

func TestPrimeroNoVacio(t *testing.T) {
	assert.Equal(t, "b", primeroNoVacio("", "b", "c"))
	assert.Equal(t, "", primeroNoVacio("", ""))
}

func decMinimo() *entity.DEC {
	return &entity.DEC{
		ID:                  "dec-1",
		Dia:                 time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC),
		Hora:                "8:00 - 9:30",
		Asignaturas:         "Matemática",
		NombreEstudiante:    "Juan Soto",
		EdadEstudiante:      12,
		CursoEstudiante:     "6°B",
		ProfeJefeEstudiante: "Ana Muñoz",
		NombreApoderado:     "Pedro Soto",
		FonoApoderado:       "+56911112222",
		EncargadoPI:         "Encargada Convivencia",
	}
}

// Un registro con todos los opcionales vacíos debe generar documento igual:
// solo secciones/campos obligatorios más el bloque de firmas.
func TestGenerateDECPDF_SoloObligatorios(t *testing.T) {
	gen := NewDECPDFGenerator()

	out, err := gen.GenerateDECPDF(context.Background(), decMinimo(), time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "la salida debe ser un PDF válido")
}

func TestGenerateDECPDF_RegistroCompleto(t *testing.T) {
	gen := NewDECPDFGenerator()

	d := decMinimo()
	d.EstablecimientoNombre = "Escuela El Maitén"
	d.Antecedentes = []string{"Cambio de sala", "Conflicto con estudiante"}
	d.Conductas = []string{"Grito", "Portazo"}
	d.Consecuentes = []string{"Contención", "Llamado al apoderado"}
	d.DescripcionConductas = "Episodio prolongado durante el segundo bloque."
	d.DuracionConductas = "15 minutos"
	d.FuncionaMedida = true
	d.PropuestaMejora = "Plan de acompañamiento semanal."
	d.NivelDEC = entity.NivelDEC2
	d.AcompananteInternoPI = "Inspector"
	d.AcompananteExternoPI = "Dupla psicosocial"

	out, err := gen.GenerateDECPDF(context.Background(), d, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
