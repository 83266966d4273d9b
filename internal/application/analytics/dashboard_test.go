package analytics_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daemlu/convivencia-api/internal/application/analytics"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
)

// Reloj fijo para todos los tests: 15 de agosto de 2026.
var ahora = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func decEnMes(anio int, mes time.Month, establecimiento string) *entity.DEC {
	dia := time.Date(anio, mes, 10, 9, 30, 0, 0, time.UTC)
	return &entity.DEC{
		Dia:                   dia,
		CreatedAt:             dia,
		EstablecimientoNombre: establecimiento,
	}
}

func activacion(meses string, cantidad int, protocolo, establecimiento string) *entity.ActivacionProtocolo {
	return &entity.ActivacionProtocolo{
		Meses:                 meses,
		Cantidad:              cantidad,
		ProtocoloNombre:       protocolo,
		EstablecimientoNombre: establecimiento,
		CreatedAt:             ahora,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tendencia mensual
// ──────────────────────────────────────────────────────────────────────────────

// prev=2, cur=3 → +50%.
func TestTendencia_TresContraDos(t *testing.T) {
	dec := []*entity.DEC{
		decEnMes(2026, time.August, "Escuela A"),
		decEnMes(2026, time.August, "Escuela A"),
		decEnMes(2026, time.August, "Escuela A"),
		decEnMes(2026, time.July, "Escuela A"),
		decEnMes(2026, time.July, "Escuela A"),
	}
	out := analytics.ComputeDashboard(dec, nil, "", false, ahora)

	require.NotNil(t, out.DECTrend, "con mes anterior > 0 debe haber tendencia")
	assert.Equal(t, 50, *out.DECTrend)
	assert.Equal(t, 3, out.DECEsteMes)
	assert.Equal(t, 5, out.TotalDEC)
}

// prev=10, cur=5 → -50%.
func TestTendencia_Negativa(t *testing.T) {
	var dec []*entity.DEC
	for i := 0; i < 10; i++ {
		dec = append(dec, decEnMes(2026, time.July, "Escuela A"))
	}
	for i := 0; i < 5; i++ {
		dec = append(dec, decEnMes(2026, time.August, "Escuela A"))
	}
	out := analytics.ComputeDashboard(dec, nil, "", false, ahora)

	require.NotNil(t, out.DECTrend)
	assert.Equal(t, -50, *out.DECTrend)
}

// Mes anterior en cero: la tendencia es indefinida (nil), nunca 0%.
func TestTendencia_SinBaseDeComparacion(t *testing.T) {
	dec := []*entity.DEC{decEnMes(2026, time.August, "Escuela A")}
	out := analytics.ComputeDashboard(dec, nil, "", false, ahora)

	assert.Nil(t, out.DECTrend, "prev=0 no admite porcentaje de variación")
}

// Colecciones vacías: agregados en cero, tendencias nil, efectividad 0%.
func TestColeccionesVacias(t *testing.T) {
	out := analytics.ComputeDashboard(nil, nil, "", false, ahora)

	assert.Equal(t, 0, out.TotalDEC)
	assert.Nil(t, out.DECTrend)
	assert.Nil(t, out.ProtocolosTrend)
	assert.Equal(t, 0, out.EfectividadPct, "universo vacío reporta 0%, no indefinido")
	assert.Len(t, out.DECPorMes, 6, "la serie siempre trae 6 meses")
	assert.Empty(t, out.UltimosDEC)
	assert.Empty(t, out.ConductasFrecuentes)
}

// La tendencia de protocolos suma cantidades, no filas.
func TestTendenciaProtocolos_SumaCantidades(t *testing.T) {
	acts := []*entity.ActivacionProtocolo{
		activacion("2026-07", 4, "Protocolo de Agresión", "Escuela A"),
		activacion("2026-08", 6, "Protocolo de Agresión", "Escuela A"),
	}
	out := analytics.ComputeDashboard(nil, acts, "", false, ahora)

	assert.Equal(t, 10, out.TotalProtocolos)
	assert.Equal(t, 6, out.ProtocolosEsteMes)
	require.NotNil(t, out.ProtocolosTrend)
	assert.Equal(t, 50, *out.ProtocolosTrend)
}

// ──────────────────────────────────────────────────────────────────────────────
// Serie de seis meses
// ──────────────────────────────────────────────────────────────────────────────

func TestSerieSeisMeses_OrdenYEtiquetas(t *testing.T) {
	out := analytics.ComputeDashboard(nil, nil, "", false, ahora)

	require.Len(t, out.DECPorMes, 6)
	esperadas := []string{"Mar 26", "Abr 26", "May 26", "Jun 26", "Jul 26", "Ago 26"}
	for i, punto := range out.DECPorMes {
		assert.Equal(t, esperadas[i], punto.Mes, "meses ascendentes terminando en el mes actual")
	}
}

// En enero la ventana cruza el año anterior sin desbordar.
func TestSerieSeisMeses_CruceDeAnio(t *testing.T) {
	enero := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	out := analytics.ComputeDashboard(nil, nil, "", false, enero)

	require.Len(t, out.DECPorMes, 6)
	esperadas := []string{"Ago 25", "Sep 25", "Oct 25", "Nov 25", "Dic 25", "Ene 26"}
	for i, punto := range out.DECPorMes {
		assert.Equal(t, esperadas[i], punto.Mes)
	}
}

// Vista global de admin: la serie abre una línea por establecimiento, con tope
// de 5 (los de mayor actividad), más el total corrido.
func TestSerieGlobal_LineasPorEstablecimiento(t *testing.T) {
	var dec []*entity.DEC
	// 6 establecimientos; "Escuela 6" es el de menor actividad y debe quedar fuera
	nombres := []string{"Escuela 1", "Escuela 2", "Escuela 3", "Escuela 4", "Escuela 5", "Escuela 6"}
	for i, nombre := range nombres {
		for j := 0; j < len(nombres)-i; j++ {
			dec = append(dec, decEnMes(2026, time.August, nombre))
		}
	}
	out := analytics.ComputeDashboard(dec, nil, "", true, ahora)

	ultimo := out.DECPorMes[5] // Ago 26
	require.Len(t, ultimo.PorEstablecimiento, 5, "máximo 5 líneas")
	assert.NotContains(t, ultimo.PorEstablecimiento, "Escuela 6")
	assert.Equal(t, 6, ultimo.PorEstablecimiento["Escuela 1"])

	// El total corrido suma solo las líneas incluidas
	suma := 0
	for _, v := range ultimo.PorEstablecimiento {
		suma += v
	}
	assert.Equal(t, suma, ultimo.Total)
}

// Vista con filtro o no-admin: serie de una sola línea total.
func TestSerieFiltrada_SoloTotal(t *testing.T) {
	dec := []*entity.DEC{
		decEnMes(2026, time.August, "Escuela A"),
		decEnMes(2026, time.August, "Escuela B"),
	}
	out := analytics.ComputeDashboard(dec, nil, "Escuela A", true, ahora)

	ultimo := out.DECPorMes[5]
	assert.Nil(t, ultimo.PorEstablecimiento)
	assert.Equal(t, 1, ultimo.Total, "el filtro deja fuera a Escuela B")
	assert.Equal(t, 1, out.TotalDEC)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rankings
// ──────────────────────────────────────────────────────────────────────────────

// Barajar la entrada no cambia totales ni la selección top-N.
func TestRankings_EstablesBajoReordenamiento(t *testing.T) {
	conductas := [][]string{
		{"Negativismo.", "Escupe."},
		{"Negativismo."},
		{"Autoagresión.", "Negativismo."},
		{"Escupe."},
		{"Se escapa o se corre."},
	}
	var dec []*entity.DEC
	for _, c := range conductas {
		d := decEnMes(2026, time.August, "Escuela A")
		d.Conductas = c
		dec = append(dec, d)
	}

	base := analytics.ComputeDashboard(dec, nil, "", false, ahora)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(dec), func(a, b int) { dec[a], dec[b] = dec[b], dec[a] })
		otra := analytics.ComputeDashboard(dec, nil, "", false, ahora)
		assert.Equal(t, base.ConductasFrecuentes, otra.ConductasFrecuentes,
			"agrupar y sumar es conmutativo: el orden de entrada no importa")
	}

	require.NotEmpty(t, base.ConductasFrecuentes)
	assert.Equal(t, "Negativismo.", base.ConductasFrecuentes[0].Nombre)
	assert.Equal(t, 3, base.ConductasFrecuentes[0].Total)
}

// Protocolos sin relación resuelta caen al nombre de reemplazo.
func TestProtocolosPorTipo_RelacionSinResolver(t *testing.T) {
	acts := []*entity.ActivacionProtocolo{
		activacion("2026-08", 2, "", "Escuela A"),
		activacion("2026-08", 3, "Protocolo de Fuga", "Escuela A"),
	}
	out := analytics.ComputeDashboard(nil, acts, "", false, ahora)

	require.Len(t, out.ProtocolosPorTipo, 2)
	assert.Equal(t, "Protocolo de Fuga", out.ProtocolosPorTipo[0].Nombre)
	assert.Equal(t, 3, out.ProtocolosPorTipo[0].Total)
	assert.Equal(t, "Sin nombre", out.ProtocolosPorTipo[1].Nombre)
	assert.Equal(t, 2, out.ProtocolosPorTipo[1].Total)
}

// Los rankings se truncan al límite de presentación de cada widget.
func TestRankings_Truncado(t *testing.T) {
	var dec []*entity.DEC
	for i := 0; i < 12; i++ {
		d := decEnMes(2026, time.August, "Escuela A")
		d.Conductas = []string{string(rune('A' + i))}
		d.Consecuentes = []string{string(rune('A' + i))}
		dec = append(dec, d)
	}
	out := analytics.ComputeDashboard(dec, nil, "", false, ahora)

	assert.Len(t, out.ConductasFrecuentes, 7)
	assert.Len(t, out.ConsecuentesFrecuentes, 8)
}

// ──────────────────────────────────────────────────────────────────────────────
// Efectividad y últimos registros
// ──────────────────────────────────────────────────────────────────────────────

// Un DEC sin conductas y con medida fallida cuenta para el total pero no
// aporta a ningún ranking ni a las medidas efectivas.
func TestDECVacio_NoAportaARankings(t *testing.T) {
	d := decEnMes(2026, time.August, "Escuela A")
	d.Conductas = []string{}
	d.FuncionaMedida = false

	out := analytics.ComputeDashboard([]*entity.DEC{d}, nil, "", false, ahora)

	assert.Equal(t, 1, out.TotalDEC)
	assert.Equal(t, 0, out.MedidasEfectivas)
	assert.Empty(t, out.ConductasFrecuentes)
}

func TestEfectividad_DentroDeRango(t *testing.T) {
	var dec []*entity.DEC
	for i := 0; i < 3; i++ {
		d := decEnMes(2026, time.August, "Escuela A")
		d.FuncionaMedida = i < 2
		dec = append(dec, d)
	}
	out := analytics.ComputeDashboard(dec, nil, "", false, ahora)

	assert.LessOrEqual(t, out.MedidasEfectivas, out.TotalDEC)
	assert.Equal(t, 67, out.EfectividadPct) // round(2/3*100)
	assert.GreaterOrEqual(t, out.EfectividadPct, 0)
	assert.LessOrEqual(t, out.EfectividadPct, 100)
}

func TestUltimosDEC_DiezMasRecientes(t *testing.T) {
	var dec []*entity.DEC
	for i := 0; i < 15; i++ {
		d := decEnMes(2026, time.August, "Escuela A")
		d.ID = string(rune('a' + i))
		d.CreatedAt = ahora.Add(-time.Duration(i) * time.Hour)
		d.NombreEstudiante = "Estudiante " + d.ID
		dec = append(dec, d)
	}
	// Entregar desordenado
	rand.New(rand.NewSource(3)).Shuffle(len(dec), func(a, b int) { dec[a], dec[b] = dec[b], dec[a] })

	out := analytics.ComputeDashboard(dec, nil, "", false, ahora)

	require.Len(t, out.UltimosDEC, 10)
	assert.Equal(t, "a", out.UltimosDEC[0].ID, "el más reciente primero")
	for i := 1; i < len(out.UltimosDEC); i++ {
		assert.True(t, out.UltimosDEC[i-1].Dia.After(out.UltimosDEC[i].Dia.Time) ||
			out.UltimosDEC[i-1].Dia.Equal(out.UltimosDEC[i].Dia.Time))
	}
}

// El mes efectivo de un DEC sin Dia es el mes de creación.
func TestMesEfectivo_FallbackACreacion(t *testing.T) {
	d := &entity.DEC{CreatedAt: time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC)}
	dec := []*entity.DEC{d}

	out := analytics.ComputeDashboard(dec, nil, "", false, ahora)
	assert.Equal(t, 1, out.DECEsteMes)
}

// El conjunto de establecimientos activos cruza ambas colecciones.
func TestEstablecimientosActivos(t *testing.T) {
	dec := []*entity.DEC{decEnMes(2026, time.August, "Escuela B")}
	acts := []*entity.ActivacionProtocolo{activacion("2026-08", 1, "P", "Escuela A")}

	out := analytics.ComputeDashboard(dec, acts, "", true, ahora)

	assert.Equal(t, 2, out.EstablecimientosActivos)
	assert.Equal(t, []string{"Escuela A", "Escuela B"}, out.Establecimientos, "ordenados alfabéticamente")
}
