// Package pdf implementa la generación del documento imprimible de un DEC
// (Documento de Entrevista y Compromiso).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                       Membrete institucional + fecha (der)  │
//	│        DOCUMENTO DE ENTREVISTA Y COMPROMISO (DEC)           │
//	│                 NOMBRE DEL ESTABLECIMIENTO                  │
//	│  I.   IDENTIFICACIÓN Y DATOS GENERALES                      │
//	│  II.  ANTECEDENTES DEL ESTUDIANTE Y APODERADO               │
//	│  III. PERSONAL INTERVINIENTE                                │
//	│  IV.  ANÁLISIS DEL EVENTO (GATILLANTE)                      │
//	│  V.   CONDUCTAS OBSERVADAS Y DESCRIPCIÓN                    │
//	│  VI.  MEDIDAS Y COMPROMISO                                  │
//	│  ____________________           ____________________        │
//	│  Firma Profesional              Firma Apoderado              │
//	│  FOOTER: ID Seguimiento + timestamp de generación            │
//	└─────────────────────────────────────────────────────────────┘
//
// Los campos con valor vacío, falso o conjunto vacío se omiten por completo:
// nunca se imprime una línea "Etiqueta:" sin valor.
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/daemlu/convivencia-api/internal/domain/entity"
)

const membrete = "DAEM La Unión, Convivencia Escolar"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorTitulo = &props.Color{Red: 50, Green: 50, Blue: 50}
	colorGris   = &props.Color{Red: 120, Green: 120, Blue: 120}
	colorFondo  = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// DECPDFGenerator implementa usecase.DECPDFGenerator usando Maroto v2.
type DECPDFGenerator struct{}

// NewDECPDFGenerator construye el generador.
func NewDECPDFGenerator() *DECPDFGenerator { return &DECPDFGenerator{} }

// GenerateDECPDF genera el PDF y devuelve sus bytes. Maroto maneja el salto
// de página automático cuando una sección no cabe en el espacio restante.
func (g *DECPDFGenerator) GenerateDECPDF(_ context.Context, d *entity.DEC, generado time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Documento de Entrevista y Compromiso", true).
		Build()

	m := maroto.New(cfg)

	// Membrete institucional a la derecha
	m.AddRows(
		row.New(5).Add(col.New(12).Add(
			text.New(membrete, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New(generado.Format("02/01/2006"), props.Text{Size: 11, Align: align.Right}),
		)),
	)

	// Título centrado + establecimiento
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("DOCUMENTO DE ENTREVISTA Y COMPROMISO (DEC)", props.Text{
			Style: fontstyle.Bold, Size: 14, Align: align.Center,
		}),
	)))
	if d.EstablecimientoNombre != "" {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New(strings.ToUpper(d.EstablecimientoNombre), props.Text{
				Size: 11, Align: align.Center,
			}),
		)))
	}
	m.AddRows(row.New(3))

	// Sección I
	m.AddRows(tituloSeccion("I. IDENTIFICACIÓN Y DATOS GENERALES"))
	m.AddRows(campo("Fecha de Registro", fechaLarga(d.Dia))...)
	hora := d.Hora
	if hora == "Otro" {
		hora = d.HoraOtro
	}
	asignatura := d.Asignaturas
	if asignatura == "Otra:" {
		asignatura = d.AsignaturaOtra
	}
	m.AddRows(camposPar("Bloque/Hora", hora, "Asignatura", asignatura)...)
	m.AddRows(campo("Nivel de Intensidad", d.NivelDEC)...)

	// Sección II
	m.AddRows(tituloSeccion("II. ANTECEDENTES DEL ESTUDIANTE Y APODERADO"))
	m.AddRows(campo("Nombre Estudiante", d.NombreEstudiante)...)
	edad := ""
	if d.EdadEstudiante > 0 {
		edad = fmt.Sprintf("%d años", d.EdadEstudiante)
	}
	m.AddRows(camposPar("Curso", d.CursoEstudiante, "Edad", edad)...)
	m.AddRows(campo("Profesor(a) Jefe", d.ProfeJefeEstudiante)...)
	m.AddRows(camposPar("Apoderado", d.NombreApoderado, "Teléfono", d.FonoApoderado)...)

	// Sección III
	m.AddRows(tituloSeccion("III. PERSONAL INTERVINIENTE"))
	m.AddRows(campo("Encargado(a) del Procedimiento", d.EncargadoPI)...)
	m.AddRows(camposPar("Acompañante Interno", d.AcompananteInternoPI, "Acompañante Externo", d.AcompananteExternoPI)...)

	// Sección IV
	m.AddRows(tituloSeccion("IV. ANÁLISIS DEL EVENTO (GATILLANTE)"))
	m.AddRows(campo("Situación previa / ¿Qué estaba haciendo?", strings.Join(d.Antecedentes, ", "))...)
	m.AddRows(campo("Detalles adicionales", primeroNoVacio(
		d.OtraAntecedentes, d.ConflictoConEstudianteAntecedentes, d.ConflictoConProfesorAntecedentes,
	))...)

	// Sección V
	m.AddRows(tituloSeccion("V. CONDUCTAS OBSERVADAS Y DESCRIPCIÓN"))
	m.AddRows(campo("Conductas registradas", strings.Join(d.Conductas, ", "))...)
	m.AddRows(campo("Especificación/Otro", primeroNoVacio(d.OtroConductas, d.AgresionFisicaConductas))...)
	m.AddRows(camposPar("Duración estimada", d.DuracionConductas, "Nivel DEC", d.NivelDEC)...)
	m.AddRows(campo("Descripción detallada del episodio", d.DescripcionConductas)...)

	// Sección VI
	m.AddRows(tituloSeccion("VI. MEDIDAS Y COMPROMISO"))
	m.AddRows(campo("Acciones y medidas aplicadas", strings.Join(d.Consecuentes, ", "))...)
	m.AddRows(campo("Otras medidas", d.OtroConsecuentes)...)
	if d.FuncionaMedida {
		m.AddRows(campo("¿Se logró el objetivo de la medida inicial?", "Sí")...)
	}
	m.AddRows(campo("Propuesta de mejora institucional / formativa", d.PropuestaMejora)...)

	// Bloque de firmas
	m.AddRows(row.New(20))
	m.AddRows(
		row.New(1).Add(
			col.New(1),
			col.New(4).Add(line.New(props.Line{Thickness: 0.4})),
			col.New(2),
			col.New(4).Add(line.New(props.Line{Thickness: 0.4})),
			col.New(1),
		),
		row.New(4).Add(
			col.New(1),
			col.New(4).Add(text.New("Firma Profesional", props.Text{Size: 9, Align: align.Center, Top: 1})),
			col.New(2),
			col.New(4).Add(text.New("Firma Apoderado", props.Text{Size: 9, Align: align.Center, Top: 1})),
			col.New(1),
		),
		row.New(6).Add(
			col.New(1),
			col.New(4).Add(text.New("Responsable", props.Text{Size: 9, Align: align.Center})),
			col.New(2),
			col.New(4).Add(text.New("o Adulto Responsable", props.Text{Size: 9, Align: align.Center})),
			col.New(1),
		),
	)

	// Footer: id de seguimiento + timestamp de generación
	m.AddRows(row.New(6).Add(
		col.New(6).Add(text.New("ID Seguimiento: "+d.ID, props.Text{
			Size: 8, Color: colorGris, Top: 2,
		})),
		col.New(6).Add(text.New("Generado: "+generado.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Color: colorGris, Align: align.Right, Top: 2,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones y campos ────────────────────────────────────────────────────────

// tituloSeccion: banda gris con el título de la sección.
func tituloSeccion(titulo string) core.Row {
	return row.New(9).Add(
		col.New(12).Add(text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorTitulo, Top: 2, Left: 1,
		})).WithStyle(&props.Cell{BackgroundColor: colorFondo}),
	)
}

// campo: una línea "Etiqueta: valor". Omitida por completo si el valor es vacío.
func campo(etiqueta, valor string) []core.Row {
	if valor == "" {
		return nil
	}
	return []core.Row{row.New(6).Add(
		col.New(4).Add(text.New(etiqueta+":", props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 1,
		})),
		col.New(8).Add(text.New(valor, props.Text{Size: 10, Top: 1})),
	)}
}

// camposPar: dos campos cortos en una sola fila de dos columnas. Cada mitad se
// omite si su valor es vacío; la fila entera se omite si ambos lo son.
func camposPar(etiqueta1, valor1, etiqueta2, valor2 string) []core.Row {
	if valor1 == "" && valor2 == "" {
		return nil
	}
	mitad := func(etiqueta, valor string) []core.Col {
		if valor == "" {
			return []core.Col{col.New(6)}
		}
		return []core.Col{
			col.New(3).Add(text.New(etiqueta+":", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			})),
			col.New(3).Add(text.New(valor, props.Text{Size: 10, Top: 1})),
		}
	}
	cols := append(mitad(etiqueta1, valor1), mitad(etiqueta2, valor2)...)
	return []core.Row{row.New(6).Add(cols...)}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func primeroNoVacio(valores ...string) string {
	for _, v := range valores {
		if v != "" {
			return v
		}
	}
	return ""
}

var diasES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var mesesLargosES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// fechaLarga formatea una fecha en su forma larga localizada.
// Ej: "viernes, 15 de agosto de 2026". Vacío para fecha cero.
func fechaLarga(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s, %d de %s de %d",
		diasES[t.Weekday()], t.Day(), mesesLargosES[t.Month()-1], t.Year())
}
